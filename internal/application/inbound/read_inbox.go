package inbound

import (
	"context"
	"errors"
	"time"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/shared/biztime"
)

// ReadInboxUseCase is the read-only mailbox listing: raw messages joined
// with their ledger state. Nothing is reserved or mutated.
type ReadInboxUseCase struct {
	mailbox MailboxGateway
	records inbound.RecordRepository
}

func NewReadInboxUseCase(mailbox MailboxGateway, records inbound.RecordRepository) *ReadInboxUseCase {
	return &ReadInboxUseCase{mailbox: mailbox, records: records}
}

func (uc *ReadInboxUseCase) Execute(ctx context.Context, limit, hours int) ([]AnnotatedMessage, error) {
	if hours <= 0 {
		hours = 24
	}
	since := biztime.NowUTC().Add(-time.Duration(hours) * time.Hour)

	messages, err := uc.mailbox.ListMessages(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	annotated := make([]AnnotatedMessage, 0, len(messages))
	for i := range messages {
		msg := &messages[i]
		entry := AnnotatedMessage{
			MessageID:      msg.MessageID,
			ConversationID: msg.ConversationID,
			Subject:        msg.Subject,
			SenderName:     msg.SenderName,
			SenderEmail:    msg.SenderEmail,
			ReceivedAt:     msg.ReceivedAt,
		}

		rec, err := uc.records.GetByMessageID(ctx, msg.MessageID)
		if err != nil && !errors.Is(err, inbound.ErrRecordNotFound) {
			return nil, err
		}
		if rec != nil {
			entry.Processed = rec.IsResolved()
			entry.TicketID = rec.LinkedTicketID()
			entry.IsFollowup = rec.IsFollowup()
			entry.Suppressed = rec.IsSuppressed()
		}
		annotated = append(annotated, entry)
	}
	return annotated, nil
}
