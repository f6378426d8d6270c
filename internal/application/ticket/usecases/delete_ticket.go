package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

type DeleteTicketUseCase struct {
	tickets     ticket.TicketRepository
	comments    ticket.CommentRepository
	assignments ticket.AssignmentRepository
	statusLogs  ticket.StatusLogRepository
	followups   ticket.FollowUpRepository
	txManager   TransactionManager
	log         logger.Interface
}

func NewDeleteTicketUseCase(
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	assignments ticket.AssignmentRepository,
	statusLogs ticket.StatusLogRepository,
	followups ticket.FollowUpRepository,
	txManager TransactionManager,
	log logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		tickets:     tickets,
		comments:    comments,
		assignments: assignments,
		statusLogs:  statusLogs,
		followups:   followups,
		txManager:   txManager,
		log:         log.Named("delete-ticket"),
	}
}

// Execute deletes a ticket and all child rows in one transaction. The
// schema carries no FK cascades, so the cascade is applied here.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, ticketID uint) error {
	if _, err := uc.tickets.GetByID(ctx, ticketID); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.comments.DeleteByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		if err := uc.assignments.DeleteByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		if err := uc.statusLogs.DeleteByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		if err := uc.followups.DeleteByTicketID(txCtx, ticketID); err != nil {
			return err
		}
		return uc.tickets.Delete(txCtx, ticketID)
	})
	if err != nil {
		return err
	}

	uc.log.Infow("ticket deleted", "ticket_id", ticketID)
	return nil
}
