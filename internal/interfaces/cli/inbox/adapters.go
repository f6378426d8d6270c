package inbox

import (
	"context"
	"fmt"

	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/identity"
	"helpdesk/internal/shared/logger"
)

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
