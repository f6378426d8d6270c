package usecases

import (
	"context"
	"errors"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	ActorID    uint
}

type AssignTicketUseCase struct {
	tickets     ticket.TicketRepository
	assignments ticket.AssignmentRepository
	notifier    Notifier
	txManager   TransactionManager
	log         logger.Interface
}

func NewAssignTicketUseCase(
	tickets ticket.TicketRepository,
	assignments ticket.AssignmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	log logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		tickets:     tickets,
		assignments: assignments,
		notifier:    notifier,
		txManager:   txManager,
		log:         log.Named("assign-ticket"),
	}
}

// Execute assigns or reassigns a ticket. Every real change of assignee
// writes exactly one assignment log row; assigning to the current assignee
// is a no-op.
func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) error {
	if cmd.AssigneeID == 0 {
		return apperrors.NewValidationError("assignee ID is required")
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	current, err := uc.assignments.GetByTicketID(ctx, cmd.TicketID)
	notFound := apperrors.IsNotFoundError(err)
	if err != nil && !notFound {
		return err
	}

	var logRow *ticket.AssignmentLog

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if notFound {
			assignment, err := ticket.NewAssignment(cmd.TicketID, cmd.AssigneeID, cmd.ActorID)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if err := uc.assignments.Save(txCtx, assignment); err != nil {
				return err
			}
			logRow = &ticket.AssignmentLog{
				TicketID:    cmd.TicketID,
				OldAssignee: nil,
				NewAssignee: cmd.AssigneeID,
				ChangedBy:   cmd.ActorID,
				ChangedAt:   assignment.UpdatedAt(),
			}
			return uc.assignments.AppendLog(txCtx, logRow)
		}

		previous, changed, err := current.Reassign(cmd.AssigneeID, cmd.ActorID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if !changed {
			return errNoChange
		}
		if err := uc.assignments.Update(txCtx, current); err != nil {
			return err
		}
		logRow = &ticket.AssignmentLog{
			TicketID:    cmd.TicketID,
			OldAssignee: &previous,
			NewAssignee: cmd.AssigneeID,
			ChangedBy:   cmd.ActorID,
			ChangedAt:   current.UpdatedAt(),
		}
		return uc.assignments.AppendLog(txCtx, logRow)
	})
	if errors.Is(err, errNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	uc.log.Infow("ticket assigned",
		"ticket_id", cmd.TicketID,
		"assignee_id", cmd.AssigneeID,
		"actor_id", cmd.ActorID,
	)
	uc.notifier.TicketAssigned(ctx, t, cmd.AssigneeID, cmd.ActorID)
	return nil
}

// errNoChange aborts the transaction without surfacing an error.
var errNoChange = errors.New("no change")
