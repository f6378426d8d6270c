package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// FollowUp subscribes a user to updates on a ticket. At most one row per
// (ticket, user) pair; the repository enforces the uniqueness.
type FollowUp struct {
	id        uint
	ticketID  uint
	userID    uint
	createdAt time.Time
}

func NewFollowUp(ticketID, userID uint) (*FollowUp, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &FollowUp{
		ticketID:  ticketID,
		userID:    userID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructFollowUp(id, ticketID, userID uint, createdAt time.Time) (*FollowUp, error) {
	if id == 0 {
		return nil, fmt.Errorf("follow-up ID cannot be zero")
	}
	return &FollowUp{id: id, ticketID: ticketID, userID: userID, createdAt: createdAt}, nil
}

func (f *FollowUp) ID() uint             { return f.id }
func (f *FollowUp) TicketID() uint       { return f.ticketID }
func (f *FollowUp) UserID() uint         { return f.userID }
func (f *FollowUp) CreatedAt() time.Time { return f.createdAt }

func (f *FollowUp) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("follow-up ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("follow-up ID cannot be zero")
	}
	f.id = id
	return nil
}
