package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
)

type GetTicketUseCase struct {
	tickets     ticket.TicketRepository
	comments    ticket.CommentRepository
	assignments ticket.AssignmentRepository
	statusLogs  ticket.StatusLogRepository
	followups   ticket.FollowUpRepository
}

func NewGetTicketUseCase(
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	assignments ticket.AssignmentRepository,
	statusLogs ticket.StatusLogRepository,
	followups ticket.FollowUpRepository,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		tickets:     tickets,
		comments:    comments,
		assignments: assignments,
		statusLogs:  statusLogs,
		followups:   followups,
	}
}

// Execute loads the ticket with comments, followers and the full audit
// trail.
func (uc *GetTicketUseCase) Execute(ctx context.Context, ticketID uint) (*TicketDetailResult, error) {
	t, err := uc.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	result := &TicketDetailResult{
		Ticket:         NewTicketResult(t),
		Comments:       []*CommentResult{},
		Followers:      []uint{},
		AssignmentLogs: []AssignmentLogResult{},
		StatusLogs:     []StatusLogResult{},
	}

	assignment, err := uc.assignments.GetByTicketID(ctx, ticketID)
	if err != nil && !apperrors.IsNotFoundError(err) {
		return nil, err
	}
	if assignment != nil {
		assignee := assignment.AssignTo()
		result.Ticket.AssigneeID = &assignee
	}

	comments, err := uc.comments.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result.Comments = append(result.Comments, NewCommentResult(c))
	}

	followers, err := uc.followups.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	for _, f := range followers {
		result.Followers = append(result.Followers, f.UserID())
	}

	assignmentLogs, err := uc.assignments.LogsByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	for _, l := range assignmentLogs {
		result.AssignmentLogs = append(result.AssignmentLogs, AssignmentLogResult{
			OldAssignee: l.OldAssignee,
			NewAssignee: l.NewAssignee,
			ChangedBy:   l.ChangedBy,
			ChangedAt:   l.ChangedAt,
		})
	}

	statusLogs, err := uc.statusLogs.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	for _, l := range statusLogs {
		result.StatusLogs = append(result.StatusLogs, StatusLogResult{
			OldStatus: l.OldStatus,
			NewStatus: l.NewStatus,
			ChangedBy: l.ChangedBy,
			ChangedAt: l.ChangedAt,
		})
	}

	return result, nil
}
