package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/infrastructure/persistence/models"
)

func setupInboundDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProcessedMessageModel{}))
	return db
}

func reserve(t *testing.T, repo *ProcessedMessageRepository, messageID, conversationID string) *inbound.Record {
	t.Helper()
	rec, err := inbound.NewReservation(messageID, conversationID, "dana@example.com", "Printer broken")
	require.NoError(t, err)
	require.NoError(t, repo.Reserve(context.Background(), rec))
	return rec
}

func TestProcessedMessageRepository_Reserve(t *testing.T) {
	repo := NewProcessedMessageRepository(setupInboundDB(t))
	ctx := context.Background()

	rec := reserve(t, repo, "msg-1", "conv-1")
	assert.NotZero(t, rec.ID())

	// Same message id again trips the unique index.
	dup, err := inbound.NewReservation("msg-1", "conv-1", "dana@example.com", "Printer broken")
	require.NoError(t, err)
	err = repo.Reserve(ctx, dup)
	assert.ErrorIs(t, err, inbound.ErrDuplicateMessage)

	// Other messages in the same conversation reserve fine.
	reserve(t, repo, "msg-2", "conv-1")
}

func TestProcessedMessageRepository_ConversationOwnership(t *testing.T) {
	repo := NewProcessedMessageRepository(setupInboundDB(t))
	ctx := context.Background()

	owner := reserve(t, repo, "msg-1", "conv-1")
	require.NoError(t, owner.ResolveAsTicket(42))
	require.NoError(t, repo.Update(ctx, owner))

	found, err := repo.ConversationOwner(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", found.MessageID())
	require.NotNil(t, found.LinkedTicketID())
	assert.Equal(t, uint(42), *found.LinkedTicketID())

	// A second record in the conversation cannot also become owner.
	rival := reserve(t, repo, "msg-2", "conv-1")
	require.NoError(t, rival.ResolveAsTicket(43))
	err = repo.Update(ctx, rival)
	assert.ErrorIs(t, err, inbound.ErrConversationOwned)

	// Resolving it as a follow-up is fine; the owner key stays null.
	rival2, err := repo.GetByMessageID(ctx, "msg-2")
	require.NoError(t, err)
	require.NoError(t, rival2.ResolveAsComment(42))
	require.NoError(t, repo.Update(ctx, rival2))

	_, err = repo.ConversationOwner(ctx, "conv-2")
	assert.ErrorIs(t, err, inbound.ErrRecordNotFound)
}

func TestProcessedMessageRepository_Delete(t *testing.T) {
	repo := NewProcessedMessageRepository(setupInboundDB(t))
	ctx := context.Background()

	reserve(t, repo, "msg-1", "conv-1")
	require.NoError(t, repo.Delete(ctx, "msg-1"))

	_, err := repo.GetByMessageID(ctx, "msg-1")
	assert.ErrorIs(t, err, inbound.ErrRecordNotFound)

	err = repo.Delete(ctx, "msg-1")
	assert.ErrorIs(t, err, inbound.ErrRecordNotFound)
}

func TestProcessedMessageRepository_ListUnresolved(t *testing.T) {
	repo := NewProcessedMessageRepository(setupInboundDB(t))
	ctx := context.Background()

	// conv-1 resolved through its owner; its stale sibling must not show up.
	owner := reserve(t, repo, "msg-1", "conv-1")
	require.NoError(t, owner.ResolveAsTicket(42))
	require.NoError(t, repo.Update(ctx, owner))
	reserve(t, repo, "msg-2", "conv-1")

	// conv-2 is genuinely stuck.
	reserve(t, repo, "msg-3", "conv-2")

	// conv-3 was suppressed.
	suppressed := reserve(t, repo, "msg-4", "conv-3")
	require.NoError(t, suppressed.Suppress())
	require.NoError(t, repo.Update(ctx, suppressed))

	records, err := repo.ListUnresolved(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "msg-3", records[0].MessageID())

	// Nothing within a window that starts in the future.
	records, err = repo.ListUnresolved(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProcessedMessageRepository_UpdateMissingRecord(t *testing.T) {
	repo := NewProcessedMessageRepository(setupInboundDB(t))

	rec, err := inbound.ReconstructRecord(999, "msg-x", "conv-x", "", "", nil, false, false, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, rec.Suppress())

	err = repo.Update(context.Background(), rec)
	assert.True(t, errors.Is(err, inbound.ErrRecordNotFound))
}
