package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
)

type ListTicketsQuery struct {
	Status     string
	Priority   string
	CategoryID *uint
	CreatorID  *uint
	AssigneeID *uint
	LocationID *uint
	Search     string
	DueBefore  *time.Time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListTicketsResult struct {
	Tickets []*TicketResult `json:"tickets"`
	Total   int64           `json:"total"`
}

type ListTicketsUseCase struct {
	tickets ticket.TicketRepository
}

func NewListTicketsUseCase(tickets ticket.TicketRepository) *ListTicketsUseCase {
	return &ListTicketsUseCase{tickets: tickets}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter := ticket.TicketFilter{
		CategoryID: query.CategoryID,
		CreatorID:  query.CreatorID,
		AssigneeID: query.AssigneeID,
		LocationID: query.LocationID,
		Search:     query.Search,
		DueBefore:  query.DueBefore,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	tickets, total, err := uc.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*TicketResult, 0, len(tickets))
	for _, t := range tickets {
		results = append(results, NewTicketResult(t))
	}
	return &ListTicketsResult{Tickets: results, Total: total}, nil
}
