// Package notification models per-user in-app notifications emitted on
// ticket lifecycle events.
package notification

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

type Type string

const (
	TypeTicketCreated  Type = "ticket_created"
	TypeTicketAssigned Type = "ticket_assigned"
	TypeStatusChanged  Type = "status_changed"
	TypeNewComment     Type = "new_comment"
)

var validTypes = map[Type]bool{
	TypeTicketCreated:  true,
	TypeTicketAssigned: true,
	TypeStatusChanged:  true,
	TypeNewComment:     true,
}

func (t Type) IsValid() bool {
	return validTypes[t]
}

type Notification struct {
	id        uint
	userID    uint
	ntype     Type
	title     string
	content   string
	ticketID  *uint
	readAt    *time.Time
	createdAt time.Time
}

func NewNotification(userID uint, ntype Type, title, content string, ticketID *uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !ntype.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", ntype)
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}

	return &Notification{
		userID:    userID,
		ntype:     ntype,
		title:     title,
		content:   content,
		ticketID:  ticketID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(
	id uint,
	userID uint,
	ntype Type,
	title, content string,
	ticketID *uint,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Notification{
		id:        id,
		userID:    userID,
		ntype:     ntype,
		title:     title,
		content:   content,
		ticketID:  ticketID,
		readAt:    readAt,
		createdAt: createdAt,
	}, nil
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) UserID() uint         { return n.userID }
func (n *Notification) NotificationType() Type { return n.ntype }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Content() string      { return n.content }
func (n *Notification) TicketID() *uint      { return n.ticketID }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) IsRead() bool         { return n.readAt != nil }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkRead is idempotent; the first read timestamp wins.
func (n *Notification) MarkRead() {
	if n.readAt == nil {
		now := biztime.NowUTC()
		n.readAt = &now
	}
}
