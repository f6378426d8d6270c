package inbound

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateMessage signals the reservation insert hit the unique
	// message-id constraint: another run already claimed the message.
	ErrDuplicateMessage = errors.New("message already claimed")

	// ErrConversationOwned signals the owner-key unique index rejected a
	// resolve-as-ticket write: a ticket for the conversation appeared
	// between the first check and the commit.
	ErrConversationOwned = errors.New("conversation already owns a ticket")

	// ErrRecordNotFound is returned for lookups that match nothing.
	ErrRecordNotFound = errors.New("processed message record not found")
)

type RecordRepository interface {
	// Reserve atomically inserts a reservation row. Returns
	// ErrDuplicateMessage when the message id is already recorded.
	Reserve(ctx context.Context, r *Record) error

	// Update persists a resolution. Returns ErrConversationOwned when the
	// record resolves as a ticket but another record already owns the
	// conversation.
	Update(ctx context.Context, r *Record) error

	// Delete removes a reservation; used only for rollback of records that
	// never got a ticket attached.
	Delete(ctx context.Context, messageID string) error

	GetByMessageID(ctx context.Context, messageID string) (*Record, error)

	// ConversationOwner returns the record owning the conversation's ticket,
	// or ErrRecordNotFound.
	ConversationOwner(ctx context.Context, conversationID string) (*Record, error)

	// ListUnresolved returns non-suppressed records with no linked ticket
	// processed since the cutoff, excluding records whose conversation owns
	// a ticket elsewhere. This backs the missing-tickets diagnostic.
	ListUnresolved(ctx context.Context, since time.Time) ([]*Record, error)
}
