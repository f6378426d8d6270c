package ticket

import (
	"context"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// TicketFilter narrows List queries. Nil fields are ignored.
type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
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

// StatusCounts aggregates tickets per status for the stats endpoint.
type StatusCounts struct {
	Pending    int64
	InProgress int64
	Completed  int64
	Overdue    int64
	Total      int64
}

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context, locationID *uint) (*StatusCounts, error)
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
	// Exists reports whether an identical (ticket, author, body) comment is
	// already stored; the ingestion pipeline uses it as a replay guard.
	Exists(ctx context.Context, ticketID uint, authorID *uint, body string) (bool, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type AssignmentRepository interface {
	Save(ctx context.Context, a *Assignment) error
	Update(ctx context.Context, a *Assignment) error
	GetByTicketID(ctx context.Context, ticketID uint) (*Assignment, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
	AppendLog(ctx context.Context, log *AssignmentLog) error
	LogsByTicketID(ctx context.Context, ticketID uint) ([]*AssignmentLog, error)
}

type StatusLogRepository interface {
	Append(ctx context.Context, log *StatusLog) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*StatusLog, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type FollowUpRepository interface {
	Save(ctx context.Context, f *FollowUp) error
	Delete(ctx context.Context, ticketID, userID uint) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*FollowUp, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}
