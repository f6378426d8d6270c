package usecases

import (
	"context"
	"io"

	"helpdesk/internal/domain/ticket"
)

// Notifier fans out in-app and email notifications for ticket events.
// Implementations are best-effort: they log failures and never propagate
// them into the calling use case.
type Notifier interface {
	TicketCreated(ctx context.Context, t *ticket.Ticket, assigneeID *uint)
	TicketAssigned(ctx context.Context, t *ticket.Ticket, assigneeID, actorID uint)
	StatusChanged(ctx context.Context, t *ticket.Ticket, oldStatus, newStatus string, recipientIDs []uint)
	NewComment(ctx context.Context, t *ticket.Ticket, c *ticket.Comment, recipientIDs []uint)
}

// TransactionManager runs a function inside a storage transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStore uploads ticket attachments and returns their public URL.
type FileStore interface {
	Upload(ctx context.Context, filename string, size int64, content io.Reader) (string, error)
}
