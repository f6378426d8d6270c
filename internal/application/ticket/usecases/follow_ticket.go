package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type FollowTicketUseCase struct {
	tickets   ticket.TicketRepository
	followups ticket.FollowUpRepository
	log       logger.Interface
}

func NewFollowTicketUseCase(
	tickets ticket.TicketRepository,
	followups ticket.FollowUpRepository,
	log logger.Interface,
) *FollowTicketUseCase {
	return &FollowTicketUseCase{
		tickets:   tickets,
		followups: followups,
		log:       log.Named("follow-ticket"),
	}
}

// Follow subscribes userID to the ticket. Following twice is a conflict.
func (uc *FollowTicketUseCase) Follow(ctx context.Context, ticketID, userID uint) error {
	if _, err := uc.tickets.GetByID(ctx, ticketID); err != nil {
		return err
	}

	followup, err := ticket.NewFollowUp(ticketID, userID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := uc.followups.Save(ctx, followup); err != nil {
		return err
	}

	uc.log.Infow("ticket followed", "ticket_id", ticketID, "user_id", userID)
	return nil
}

// Unfollow removes the subscription.
func (uc *FollowTicketUseCase) Unfollow(ctx context.Context, ticketID, userID uint) error {
	if err := uc.followups.Delete(ctx, ticketID, userID); err != nil {
		return err
	}
	uc.log.Infow("ticket unfollowed", "ticket_id", ticketID, "user_id", userID)
	return nil
}
