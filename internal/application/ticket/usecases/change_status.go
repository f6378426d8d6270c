package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID uint
	Status   string
	ActorID  *uint
}

type ChangeStatusUseCase struct {
	tickets    ticket.TicketRepository
	statusLogs ticket.StatusLogRepository
	followups  ticket.FollowUpRepository
	notifier   Notifier
	txManager  TransactionManager
	log        logger.Interface
}

func NewChangeStatusUseCase(
	tickets ticket.TicketRepository,
	statusLogs ticket.StatusLogRepository,
	followups ticket.FollowUpRepository,
	notifier Notifier,
	txManager TransactionManager,
	log logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		tickets:    tickets,
		statusLogs: statusLogs,
		followups:  followups,
		notifier:   notifier,
		txManager:  txManager,
		log:        log.Named("change-status"),
	}
}

// Execute moves the ticket to a new status. A real transition writes exactly
// one status log row; a no-op change writes none and still succeeds.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*TicketResult, error) {
	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status()
	changed, err := t.ChangeStatus(newStatus)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !changed {
		return NewTicketResult(t), nil
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return err
		}
		return uc.statusLogs.Append(txCtx, &ticket.StatusLog{
			TicketID:  t.ID(),
			OldStatus: oldStatus.String(),
			NewStatus: newStatus.String(),
			ChangedBy: cmd.ActorID,
			ChangedAt: t.UpdatedAt(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infow("ticket status changed",
		"ticket_id", t.ID(),
		"from", oldStatus.String(),
		"to", newStatus.String(),
	)
	uc.notifier.StatusChanged(ctx, t, oldStatus.String(), newStatus.String(), uc.statusRecipients(ctx, t, cmd.ActorID))

	return NewTicketResult(t), nil
}

// statusRecipients is the follower set minus the actor.
func (uc *ChangeStatusUseCase) statusRecipients(ctx context.Context, t *ticket.Ticket, actorID *uint) []uint {
	followers, err := uc.followups.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.log.Warnw("failed to load followers for notification", "ticket_id", t.ID(), "error", err)
		return nil
	}

	recipients := make([]uint, 0, len(followers))
	for _, f := range followers {
		if actorID != nil && f.UserID() == *actorID {
			continue
		}
		recipients = append(recipients, f.UserID())
	}
	return recipients
}
