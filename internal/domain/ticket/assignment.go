package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// Assignment is the current single-assignee relationship for a ticket. It is
// mutated in place; every change of the assignee must produce exactly one
// AssignmentLog row.
type Assignment struct {
	id        uint
	ticketID  uint
	assignTo  uint
	assignBy  uint
	updatedAt time.Time
}

func NewAssignment(ticketID, assignTo, assignBy uint) (*Assignment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if assignTo == 0 {
		return nil, fmt.Errorf("assignee ID is required")
	}
	if assignBy == 0 {
		return nil, fmt.Errorf("assigner ID is required")
	}
	return &Assignment{
		ticketID:  ticketID,
		assignTo:  assignTo,
		assignBy:  assignBy,
		updatedAt: biztime.NowUTC(),
	}, nil
}

func ReconstructAssignment(id, ticketID, assignTo, assignBy uint, updatedAt time.Time) (*Assignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
	}
	return &Assignment{
		id:        id,
		ticketID:  ticketID,
		assignTo:  assignTo,
		assignBy:  assignBy,
		updatedAt: updatedAt,
	}, nil
}

func (a *Assignment) ID() uint             { return a.id }
func (a *Assignment) TicketID() uint       { return a.ticketID }
func (a *Assignment) AssignTo() uint       { return a.assignTo }
func (a *Assignment) AssignBy() uint       { return a.assignBy }
func (a *Assignment) UpdatedAt() time.Time { return a.updatedAt }

func (a *Assignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}

// Reassign changes the assignee. Returns the previous assignee and false
// when the new assignee equals the current one (no-op, no log row).
func (a *Assignment) Reassign(newAssignee, actor uint) (previous uint, changed bool, err error) {
	if newAssignee == 0 {
		return 0, false, fmt.Errorf("assignee ID is required")
	}
	if actor == 0 {
		return 0, false, fmt.Errorf("actor ID is required")
	}
	if a.assignTo == newAssignee {
		return a.assignTo, false, nil
	}
	previous = a.assignTo
	a.assignTo = newAssignee
	a.assignBy = actor
	a.updatedAt = biztime.NowUTC()
	return previous, true, nil
}

// AssignmentLog is the append-only audit trail of reassignments.
type AssignmentLog struct {
	ID         uint
	TicketID   uint
	OldAssignee *uint
	NewAssignee uint
	ChangedBy  uint
	ChangedAt  time.Time
}

// StatusLog is the append-only audit trail of status transitions.
type StatusLog struct {
	ID        uint
	TicketID  uint
	OldStatus string
	NewStatus string
	ChangedBy *uint
	ChangedAt time.Time
}
