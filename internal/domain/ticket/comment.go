package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// Comment is an append-only child of a Ticket. authorID is nil when the
// author could not be resolved against the identity service; authorName then
// carries whatever the mail headers provided.
type Comment struct {
	id         uint
	ticketID   uint
	authorID   *uint
	authorName string
	body       string
	createdAt  time.Time
}

const maxCommentLen = 20000

func NewComment(ticketID uint, authorID *uint, authorName, body string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID != nil && *authorID == 0 {
		return nil, fmt.Errorf("author ID cannot be zero")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body cannot be empty")
	}
	if len(body) > maxCommentLen {
		return nil, fmt.Errorf("body exceeds maximum length of %d characters", maxCommentLen)
	}

	return &Comment{
		ticketID:   ticketID,
		authorID:   authorID,
		authorName: authorName,
		body:       body,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	authorID *uint,
	authorName string,
	body string,
	createdAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	return &Comment{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		authorName: authorName,
		body:       body,
		createdAt:  createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() *uint      { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Body() string         { return c.body }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
