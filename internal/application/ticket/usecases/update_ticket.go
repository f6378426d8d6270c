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

// UpdateTicketCommand carries partial updates; nil pointer fields are left
// untouched.
type UpdateTicketCommand struct {
	TicketID      uint
	Title         *string
	Details       *string
	Priority      *string
	CategoryID    *uint
	ClearCategory bool
	DueDate       *time.Time
	ClearDueDate  bool
	Tags          []string
}

type UpdateTicketUseCase struct {
	tickets    ticket.TicketRepository
	categories category.Repository
	log        logger.Interface
}

func NewUpdateTicketUseCase(
	tickets ticket.TicketRepository,
	categories category.Repository,
	log logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		tickets:    tickets,
		categories: categories,
		log:        log.Named("update-ticket"),
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*TicketResult, error) {
	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil || cmd.Details != nil {
		title := t.Title()
		details := t.Details()
		if cmd.Title != nil {
			title = *cmd.Title
		}
		if cmd.Details != nil {
			details = *cmd.Details
		}
		if err := t.UpdateContent(title, details); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if _, err := t.ChangePriority(priority); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	switch {
	case cmd.ClearCategory:
		t.SetCategory(nil)
	case cmd.CategoryID != nil:
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
		t.SetCategory(cmd.CategoryID)
	}

	switch {
	case cmd.ClearDueDate:
		t.SetDueDate(nil)
	case cmd.DueDate != nil:
		t.SetDueDate(cmd.DueDate)
	}

	if cmd.Tags != nil {
		t.SetTags(cmd.Tags)
	}

	if err := uc.tickets.Update(ctx, t); err != nil {
		return nil, err
	}

	uc.log.Infow("ticket updated", "ticket_id", t.ID())
	return NewTicketResult(t), nil
}
