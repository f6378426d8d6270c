package http

import (
	"context"
	"fmt"

	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/identity"
	"helpdesk/internal/shared/logger"
)

// identityGatewayAdapter adapts the identity client to the tuple-shaped
// gateway the ingestion pipeline consumes.
type identityGatewayAdapter struct {
	client *identity.Client
}

func (a *identityGatewayAdapter) ResolveByEmail(ctx context.Context, address string) (*uint, string, error) {
	u, err := a.client.ResolveByEmail(ctx, address)
	if err != nil {
		return nil, "", err
	}
	return &u.ID, u.DisplayName, nil
}

// directoryAdapter resolves notification recipients to email addresses
// through the identity service.
type directoryAdapter struct {
	client *identity.Client
}

func (a *directoryAdapter) EmailForUser(ctx context.Context, userID uint) (string, string, error) {
	u, err := a.client.GetUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Email, u.DisplayName, nil
}

// mailerAdapter renders ticket mail and hands it to the dispatcher queue.
type mailerAdapter struct {
	dispatcher *email.Dispatcher
	log        logger.Interface
}

func (a *mailerAdapter) EnqueueTicketMail(ctx context.Context, to, heading string, ticketID uint, title, markdownBody string) {
	html, err := email.RenderTicketMail(heading, ticketID, title, markdownBody)
	if err != nil {
		a.log.Warnw("failed to render ticket mail", "ticket_id", ticketID, "error", err)
		return
	}
	a.dispatcher.Enqueue(ctx, email.Mail{
		To:       to,
		Subject:  fmt.Sprintf("[Ticket #%d] %s", ticketID, title),
		HTMLBody: html,
		TicketID: &ticketID,
	})
}
