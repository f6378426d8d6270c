package inbound

import (
	"context"
	"time"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/domain/ticket"
)

// MailboxGateway reads the shared inbox. List failures are batch-fatal;
// everything downstream of a successful list degrades per message.
type MailboxGateway interface {
	ListMessages(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error)
	GetMessage(ctx context.Context, messageID string) (*inbound.Message, error)
}

// IdentityGateway resolves sender addresses to directory users. A failed
// lookup yields a nil user id, never an aborted message.
type IdentityGateway interface {
	ResolveByEmail(ctx context.Context, email string) (userID *uint, displayName string, err error)
}

// ChatCompleter is the LLM transport behind the refinement stages.
type ChatCompleter interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Notifier is the slice of notification fan-out the pipeline needs.
type Notifier interface {
	TicketCreated(ctx context.Context, t *ticket.Ticket, assigneeID *uint)
	NewComment(ctx context.Context, t *ticket.Ticket, c *ticket.Comment, recipientIDs []uint)
}

// TransactionManager runs a function inside a storage transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
