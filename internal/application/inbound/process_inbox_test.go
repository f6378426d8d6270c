package inbound

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

func TestProcessInboxUseCase_Execute_ProcessesOldestFirst(t *testing.T) {
	f := newPipelineFixture()

	var created []string
	f.tickets.SaveFunc = func(ctx context.Context, tkt *ticket.Ticket) error {
		created = append(created, tkt.Title())
		return tkt.SetID(uint(len(created)))
	}
	f.tickets.GetByIDFunc = func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
		tkt, err := ticket.NewTicket("Printer on floor 3 is broken", "details", "medium", nil, nil)
		if err != nil {
			return nil, err
		}
		if err := tkt.SetID(ticketID); err != nil {
			return nil, err
		}
		return tkt, nil
	}

	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	opener := *testMessage()
	opener.ReceivedAt = base
	reply := *testMessage()
	reply.MessageID = "msg-2"
	reply.Subject = "Re: Printer on floor 3 is broken"
	reply.BodyText = "Any update on this?"
	reply.ReceivedAt = base.Add(time.Hour)
	unrelated := *testMessage()
	unrelated.MessageID = "msg-3"
	unrelated.ConversationID = "conv-2"
	unrelated.Subject = "Need VPN access"
	unrelated.BodyText = "Please grant me VPN access for remote work."
	unrelated.ReceivedAt = base.Add(2 * time.Hour)

	mailbox := &mockMailboxGateway{
		ListMessagesFunc: func(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error) {
			// Newest first, the way mail APIs page.
			return []inbound.Message{unrelated, reply, opener}, nil
		},
	}

	uc := NewProcessInboxUseCase(mailbox, f.pipeline, testIngestConfig(), logger.NewLogger())
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.TicketsCreated)
	assert.Equal(t, 1, result.CommentsAdded)
	assert.Zero(t, result.Failed)

	// The conversation opener owns the ticket, not the newer reply.
	owner, err := f.records.ConversationOwner(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", owner.MessageID())
}

func TestProcessInboxUseCase_Execute_MailboxFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()

	mailbox := &mockMailboxGateway{
		ListMessagesFunc: func(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error) {
			return nil, errors.New("graph api unreachable")
		},
	}

	uc := NewProcessInboxUseCase(mailbox, f.pipeline, testIngestConfig(), logger.NewLogger())
	result, err := uc.Execute(context.Background())

	assert.Nil(t, result)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
}

func TestProcessInboxUseCase_Execute_PerMessageFailuresDoNotAbort(t *testing.T) {
	f := newPipelineFixture()

	f.tickets.SaveFunc = func(ctx context.Context, tkt *ticket.Ticket) error {
		if tkt.Title() == "Need VPN access" {
			return errors.New("storage offline")
		}
		return tkt.SetID(1)
	}

	good := *testMessage()
	bad := *testMessage()
	bad.MessageID = "msg-2"
	bad.ConversationID = "conv-2"
	bad.Subject = "Need VPN access"
	bad.BodyText = "Please grant me VPN access."

	mailbox := &mockMailboxGateway{
		ListMessagesFunc: func(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error) {
			return []inbound.Message{bad, good}, nil
		},
	}

	uc := NewProcessInboxUseCase(mailbox, f.pipeline, testIngestConfig(), logger.NewLogger())
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.TicketsCreated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "msg-2")
}

func TestReprocessMessageUseCase_Execute_ResolvedIsIdempotent(t *testing.T) {
	f := newPipelineFixture()

	f.tickets.SaveFunc = func(ctx context.Context, tkt *ticket.Ticket) error {
		return tkt.SetID(42)
	}

	first := f.pipeline.ProcessMessage(context.Background(), testMessage())
	require.Equal(t, ActionCreated, first.Action)

	fetches := 0
	mailbox := &mockMailboxGateway{
		GetMessageFunc: func(ctx context.Context, messageID string) (*inbound.Message, error) {
			fetches++
			return testMessage(), nil
		},
	}

	uc := NewReprocessMessageUseCase(mailbox, f.records, f.pipeline, logger.NewLogger())
	outcome, err := uc.Execute(context.Background(), "msg-1")

	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, outcome.Action)
	assert.Equal(t, "already processed", outcome.Detail)
	assert.Equal(t, uint(42), outcome.TicketID)
	assert.Zero(t, fetches)
}

func TestReprocessMessageUseCase_Execute_ClearsStaleReservation(t *testing.T) {
	f := newPipelineFixture()

	// Leave an unresolved reservation behind, as a crashed run would.
	stale, err := inbound.NewReservation("msg-1", "conv-1", "dana@example.com", "Printer broken")
	require.NoError(t, err)
	require.NoError(t, f.records.Reserve(context.Background(), stale))

	f.tickets.SaveFunc = func(ctx context.Context, tkt *ticket.Ticket) error {
		return tkt.SetID(42)
	}
	mailbox := &mockMailboxGateway{
		GetMessageFunc: func(ctx context.Context, messageID string) (*inbound.Message, error) {
			require.Equal(t, "msg-1", messageID)
			return testMessage(), nil
		},
	}

	uc := NewReprocessMessageUseCase(mailbox, f.records, f.pipeline, logger.NewLogger())
	outcome, err := uc.Execute(context.Background(), "msg-1")

	require.NoError(t, err)
	assert.Equal(t, ActionCreated, outcome.Action)
	assert.Equal(t, uint(42), outcome.TicketID)

	stored, err := f.records.GetByMessageID(context.Background(), "msg-1")
	require.NoError(t, err)
	assert.True(t, stored.IsResolved())
}

func TestMissingTicketsUseCase_Execute(t *testing.T) {
	f := newPipelineFixture()

	stale, err := inbound.NewReservation("msg-lost", "conv-9", "dana@example.com", "Lost request")
	require.NoError(t, err)
	require.NoError(t, f.records.Reserve(context.Background(), stale))

	uc := NewMissingTicketsUseCase(f.records)
	missing, err := uc.Execute(context.Background(), 24)

	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "msg-lost", missing[0].MessageID)
	assert.Equal(t, "conv-9", missing[0].ConversationID)
}
