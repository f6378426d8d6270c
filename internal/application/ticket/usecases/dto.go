package usecases

import (
	"time"

	"helpdesk/internal/domain/ticket"
)

// TicketResult is the read model returned by ticket use cases.
type TicketResult struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Details     string     `json:"details"`
	CategoryID  *uint      `json:"category_id,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatorID   *uint      `json:"creator_id,omitempty"`
	LocationID  *uint      `json:"location_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	AssigneeID  *uint      `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewTicketResult(t *ticket.Ticket) *TicketResult {
	return &TicketResult{
		ID:          t.ID(),
		Title:       t.Title(),
		Details:     t.Details(),
		CategoryID:  t.CategoryID(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		LocationID:  t.LocationID(),
		DueDate:     t.DueDate(),
		Tags:        t.Tags(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
	}
}

// CommentResult is the read model for a ticket comment.
type CommentResult struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	AuthorID   *uint     `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResult(c *ticket.Comment) *CommentResult {
	return &CommentResult{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Body:       c.Body(),
		CreatedAt:  c.CreatedAt(),
	}
}

// AssignmentLogResult is one reassignment audit row.
type AssignmentLogResult struct {
	OldAssignee *uint     `json:"old_assignee,omitempty"`
	NewAssignee uint      `json:"new_assignee"`
	ChangedBy   uint      `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
}

// StatusLogResult is one status transition audit row.
type StatusLogResult struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy *uint     `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// TicketDetailResult bundles a ticket with its children for the detail
// endpoint.
type TicketDetailResult struct {
	Ticket         *TicketResult         `json:"ticket"`
	Comments       []*CommentResult      `json:"comments"`
	Followers      []uint                `json:"followers"`
	AssignmentLogs []AssignmentLogResult `json:"assignment_logs"`
	StatusLogs     []StatusLogResult     `json:"status_logs"`
}
