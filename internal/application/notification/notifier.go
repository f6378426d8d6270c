// Package notification implements in-app notification delivery plus the
// email fan-out used by the ticket use cases.
package notification

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

// Directory resolves user ids to email addresses for the email fan-out.
type Directory interface {
	EmailForUser(ctx context.Context, userID uint) (address string, name string, err error)
}

// Mailer queues an outbound email. Implementations never block on SMTP.
type Mailer interface {
	EnqueueTicketMail(ctx context.Context, to, heading string, ticketID uint, title, markdownBody string)
}

// Notifier writes in-app notification rows and queues the matching emails.
// All failures are logged and swallowed: notification delivery must never
// fail a ticket operation.
type Notifier struct {
	notifications notification.Repository
	directory     Directory
	mailer        Mailer
	log           logger.Interface
}

func NewNotifier(
	notifications notification.Repository,
	directory Directory,
	mailer Mailer,
	log logger.Interface,
) *Notifier {
	return &Notifier{
		notifications: notifications,
		directory:     directory,
		mailer:        mailer,
		log:           log.Named("notifier"),
	}
}

func (n *Notifier) TicketCreated(ctx context.Context, t *ticket.Ticket, assigneeID *uint) {
	if assigneeID == nil {
		return
	}
	title := fmt.Sprintf("New ticket: %s", t.Title())
	n.deliver(ctx, *assigneeID, notification.TypeTicketCreated, title, t.Details(), t)
}

func (n *Notifier) TicketAssigned(ctx context.Context, t *ticket.Ticket, assigneeID, actorID uint) {
	if assigneeID == actorID {
		return
	}
	title := fmt.Sprintf("Ticket assigned to you: %s", t.Title())
	n.deliver(ctx, assigneeID, notification.TypeTicketAssigned, title, t.Details(), t)
}

func (n *Notifier) StatusChanged(ctx context.Context, t *ticket.Ticket, oldStatus, newStatus string, recipientIDs []uint) {
	title := fmt.Sprintf("Ticket status changed: %s", t.Title())
	content := fmt.Sprintf("Status moved from %s to %s.", oldStatus, newStatus)
	for _, userID := range recipientIDs {
		n.deliver(ctx, userID, notification.TypeStatusChanged, title, content, t)
	}
}

func (n *Notifier) NewComment(ctx context.Context, t *ticket.Ticket, c *ticket.Comment, recipientIDs []uint) {
	title := fmt.Sprintf("New comment on: %s", t.Title())
	for _, userID := range recipientIDs {
		n.deliver(ctx, userID, notification.TypeNewComment, title, c.Body(), t)
	}
}

func (n *Notifier) deliver(ctx context.Context, userID uint, ntype notification.Type, title, content string, t *ticket.Ticket) {
	row, err := notification.NewNotification(userID, ntype, truncate(title, 200), content, ptr(t.ID()))
	if err != nil {
		n.log.Warnw("invalid notification", "user_id", userID, "type", ntype, "error", err)
		return
	}
	if err := n.notifications.Save(ctx, row); err != nil {
		n.log.Errorw("failed to save notification", "user_id", userID, "type", ntype, "error", err)
		return
	}

	address, _, err := n.directory.EmailForUser(ctx, userID)
	if err != nil || address == "" {
		n.log.Debugw("no email address for notification recipient", "user_id", userID, "error", err)
		return
	}
	n.mailer.EnqueueTicketMail(ctx, address, title, t.ID(), t.Title(), content)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func ptr(v uint) *uint { return &v }
