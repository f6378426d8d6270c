package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title      string
	Details    string
	Priority   string
	CategoryID *uint
	CreatorID  *uint
	LocationID *uint
	DueDate    *time.Time
	Tags       []string
}

type CreateTicketUseCase struct {
	tickets     ticket.TicketRepository
	categories  category.Repository
	assignments ticket.AssignmentRepository
	notifier    Notifier
	txManager   TransactionManager
	log         logger.Interface
}

func NewCreateTicketUseCase(
	tickets ticket.TicketRepository,
	categories category.Repository,
	assignments ticket.AssignmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	log logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets:     tickets,
		categories:  categories,
		assignments: assignments,
		notifier:    notifier,
		txManager:   txManager,
		log:         log.Named("create-ticket"),
	}
}

// Execute creates a ticket. When the category carries a default assignee the
// ticket is auto-assigned and the assignment is logged as made by the
// creator (or the assignee itself for creator-less tickets).
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*TicketResult, error) {
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Details, priority, cmd.CreatorID, cmd.LocationID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var defaultAssignee *uint
	if cmd.CategoryID != nil {
		cat, err := uc.categories.GetByID(ctx, *cmd.CategoryID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return nil, apperrors.NewValidationError("category does not exist")
			}
			return nil, err
		}
		if !cat.IsActive() {
			return nil, apperrors.NewValidationError("category is not active")
		}
		newTicket.SetCategory(cmd.CategoryID)
		defaultAssignee = cat.DefaultAssigneeID()
	}
	if cmd.DueDate != nil {
		newTicket.SetDueDate(cmd.DueDate)
	}
	if len(cmd.Tags) > 0 {
		newTicket.SetTags(cmd.Tags)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tickets.Save(txCtx, newTicket); err != nil {
			return err
		}

		if defaultAssignee != nil {
			actor := *defaultAssignee
			if cmd.CreatorID != nil {
				actor = *cmd.CreatorID
			}
			assignment, err := ticket.NewAssignment(newTicket.ID(), *defaultAssignee, actor)
			if err != nil {
				return err
			}
			if err := uc.assignments.Save(txCtx, assignment); err != nil {
				return err
			}
			return uc.assignments.AppendLog(txCtx, &ticket.AssignmentLog{
				TicketID:    newTicket.ID(),
				OldAssignee: nil,
				NewAssignee: *defaultAssignee,
				ChangedBy:   actor,
				ChangedAt:   assignment.UpdatedAt(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infow("ticket created",
		"ticket_id", newTicket.ID(),
		"priority", newTicket.Priority().String(),
		"auto_assigned", defaultAssignee != nil,
	)
	uc.notifier.TicketCreated(ctx, newTicket, defaultAssignee)

	result := NewTicketResult(newTicket)
	result.AssigneeID = defaultAssignee
	return result, nil
}
