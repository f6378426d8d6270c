package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
)

type TicketStatsResult struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
	Total      int64 `json:"total"`
}

type TicketStatsUseCase struct {
	tickets ticket.TicketRepository
}

func NewTicketStatsUseCase(tickets ticket.TicketRepository) *TicketStatsUseCase {
	return &TicketStatsUseCase{tickets: tickets}
}

func (uc *TicketStatsUseCase) Execute(ctx context.Context, locationID *uint) (*TicketStatsResult, error) {
	counts, err := uc.tickets.CountByStatus(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return &TicketStatsResult{
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Completed:  counts.Completed,
		Overdue:    counts.Overdue,
		Total:      counts.Total,
	}, nil
}
