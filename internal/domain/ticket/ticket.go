package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Ticket is the unit of work tracked by the system. Mutated by the CRUD use
// cases and by the inbound email pipeline.
type Ticket struct {
	id          uint
	title       string
	details     string
	categoryID  *uint
	priority    vo.Priority
	status      vo.TicketStatus
	creatorID   *uint
	locationID  *uint
	dueDate     *time.Time
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

const (
	maxTitleLen   = 200
	maxDetailsLen = 10000
)

func NewTicket(
	title string,
	details string,
	priority vo.Priority,
	creatorID *uint,
	locationID *uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLen)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("details are required")
	}
	if len(details) > maxDetailsLen {
		return nil, fmt.Errorf("details exceed maximum length of %d characters", maxDetailsLen)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID != nil && *creatorID == 0 {
		return nil, fmt.Errorf("creator ID cannot be zero")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:      title,
		details:    details,
		priority:   priority,
		status:     vo.StatusPending,
		creatorID:  creatorID,
		locationID: locationID,
		tags:       []string{},
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	details string,
	categoryID *uint,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID *uint,
	locationID *uint,
	dueDate *time.Time,
	tags []string,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:          id,
		title:       title,
		details:     details,
		categoryID:  categoryID,
		priority:    priority,
		status:      status,
		creatorID:   creatorID,
		locationID:  locationID,
		dueDate:     dueDate,
		tags:        tags,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		completedAt: completedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Title() string           { return t.title }
func (t *Ticket) Details() string         { return t.details }
func (t *Ticket) CategoryID() *uint       { return t.categoryID }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) CreatorID() *uint        { return t.creatorID }
func (t *Ticket) LocationID() *uint       { return t.locationID }
func (t *Ticket) DueDate() *time.Time     { return t.dueDate }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Ticket) CompletedAt() *time.Time { return t.completedAt }

func (t *Ticket) Tags() []string {
	tags := make([]string, len(t.tags))
	copy(tags, t.tags)
	return tags
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// BackdateCreation sets the creation timestamp to the message's original
// receipt time. Tickets materialized from inbound email carry the receipt
// time so SLA and aging metrics stay accurate. Only valid before the ticket
// is persisted.
func (t *Ticket) BackdateCreation(receivedAt time.Time) error {
	if t.id != 0 {
		return fmt.Errorf("cannot backdate a persisted ticket")
	}
	if receivedAt.IsZero() {
		return fmt.Errorf("receipt time cannot be zero")
	}
	t.createdAt = receivedAt.UTC()
	return nil
}

// ChangeStatus moves the ticket to newStatus. Returns false when the status
// is unchanged; callers use the flag to decide whether to write an audit log
// row.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return false, nil
	}

	prev := t.status
	t.status = newStatus
	t.updatedAt = biztime.NowUTC()

	if newStatus.IsCompleted() {
		now := biztime.NowUTC()
		t.completedAt = &now
	} else if prev.IsCompleted() {
		t.completedAt = nil
	}

	return true, nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) (bool, error) {
	if !newPriority.IsValid() {
		return false, fmt.Errorf("invalid priority: %s", newPriority)
	}
	if t.priority == newPriority {
		return false, nil
	}
	t.priority = newPriority
	t.updatedAt = biztime.NowUTC()
	return true, nil
}

func (t *Ticket) SetCategory(categoryID *uint) {
	t.categoryID = categoryID
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) SetDueDate(due *time.Time) {
	t.dueDate = due
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	t.tags = tags
	t.updatedAt = biztime.NowUTC()
}

// UpdateContent replaces title and details, keeping the same validation as
// construction.
func (t *Ticket) UpdateContent(title, details string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLen)
	}
	if len(details) == 0 {
		return fmt.Errorf("details are required")
	}
	if len(details) > maxDetailsLen {
		return fmt.Errorf("details exceed maximum length of %d characters", maxDetailsLen)
	}
	t.title = title
	t.details = details
	t.updatedAt = biztime.NowUTC()
	return nil
}
