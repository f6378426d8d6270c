package inbound

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// Record is one row of the processed-message ledger: every inbound message
// ever evaluated gets exactly one. It is created as a reservation (no ticket
// linked) before any expensive work starts, then resolved once.
//
// Invariants:
//   - at most one record per message id (unique constraint);
//   - at most one record per conversation may own a ticket (linked ticket
//     with isFollowup=false); all other records in the conversation are
//     follow-ups pointing at the same ticket.
type Record struct {
	id             uint
	messageID      string
	conversationID string
	senderEmail    string
	subject        string
	linkedTicketID *uint
	isFollowup     bool
	suppressed     bool
	processedAt    time.Time
}

// NewReservation claims a message for processing. The ticket link stays nil
// until processing resolves.
func NewReservation(messageID, conversationID, senderEmail, subject string) (*Record, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if conversationID == "" {
		return nil, fmt.Errorf("conversation ID is required")
	}
	return &Record{
		messageID:      messageID,
		conversationID: conversationID,
		senderEmail:    senderEmail,
		subject:        subject,
		processedAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructRecord(
	id uint,
	messageID, conversationID, senderEmail, subject string,
	linkedTicketID *uint,
	isFollowup bool,
	suppressed bool,
	processedAt time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	return &Record{
		id:             id,
		messageID:      messageID,
		conversationID: conversationID,
		senderEmail:    senderEmail,
		subject:        subject,
		linkedTicketID: linkedTicketID,
		isFollowup:     isFollowup,
		suppressed:     suppressed,
		processedAt:    processedAt,
	}, nil
}

func (r *Record) ID() uint                { return r.id }
func (r *Record) MessageID() string       { return r.messageID }
func (r *Record) ConversationID() string  { return r.conversationID }
func (r *Record) SenderEmail() string     { return r.senderEmail }
func (r *Record) Subject() string         { return r.subject }
func (r *Record) LinkedTicketID() *uint   { return r.linkedTicketID }
func (r *Record) IsFollowup() bool        { return r.isFollowup }
func (r *Record) IsSuppressed() bool      { return r.suppressed }
func (r *Record) ProcessedAt() time.Time  { return r.processedAt }

// IsResolved reports whether processing finished for this record: a ticket
// was linked or the message was suppressed.
func (r *Record) IsResolved() bool {
	return r.linkedTicketID != nil || r.suppressed
}

func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = id
	return nil
}

// ResolveAsTicket marks this record as the conversation owner: the message
// created the ticket.
func (r *Record) ResolveAsTicket(ticketID uint) error {
	if ticketID == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	if r.IsResolved() {
		return fmt.Errorf("record %s is already resolved", r.messageID)
	}
	r.linkedTicketID = &ticketID
	r.isFollowup = false
	r.processedAt = biztime.NowUTC()
	return nil
}

// ResolveAsComment marks this record as a follow-up appended to an existing
// ticket.
func (r *Record) ResolveAsComment(ticketID uint) error {
	if ticketID == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	if r.IsResolved() {
		return fmt.Errorf("record %s is already resolved", r.messageID)
	}
	r.linkedTicketID = &ticketID
	r.isFollowup = true
	r.processedAt = biztime.NowUTC()
	return nil
}

// Suppress resolves the record without a ticket: the message was one of our
// own outbound notifications and must never be re-ingested.
func (r *Record) Suppress() error {
	if r.IsResolved() {
		return fmt.Errorf("record %s is already resolved", r.messageID)
	}
	r.suppressed = true
	r.processedAt = biztime.NowUTC()
	return nil
}

// OwnerKey is the conversation-ownership sentinel persisted alongside the
// record: it equals the conversation id only on the row that owns the
// conversation's ticket, and is null everywhere else. A unique index on the
// column makes "at most one ticket per conversation" a store-enforced
// invariant.
func (r *Record) OwnerKey() *string {
	if r.linkedTicketID != nil && !r.isFollowup && !r.suppressed {
		key := r.conversationID
		return &key
	}
	return nil
}
