package inbound

import "time"

// BatchResult summarizes one ingestion run.
type BatchResult struct {
	Processed      int      `json:"processed"`
	TicketsCreated int      `json:"tickets_created"`
	CommentsAdded  int      `json:"comments_added"`
	Skipped        int      `json:"skipped"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitempty"`
}

// MessageOutcome describes how a single message resolved.
type MessageOutcome struct {
	MessageID string `json:"message_id"`
	TicketID  uint   `json:"ticket_id,omitempty"`
	Action    string `json:"action"` // created | commented | suppressed | skipped | failed
	Detail    string `json:"detail,omitempty"`
}

const (
	ActionCreated    = "created"
	ActionCommented  = "commented"
	ActionSuppressed = "suppressed"
	ActionSkipped    = "skipped"
	ActionFailed     = "failed"
)

// AnnotatedMessage is a mailbox message joined with its ledger state, for
// the read-only inbox listing.
type AnnotatedMessage struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	Subject        string    `json:"subject"`
	SenderName     string    `json:"sender_name,omitempty"`
	SenderEmail    string    `json:"sender_email,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
	Processed      bool      `json:"processed"`
	TicketID       *uint     `json:"ticket_id,omitempty"`
	IsFollowup     bool      `json:"is_followup,omitempty"`
	Suppressed     bool      `json:"suppressed,omitempty"`
}

// MissingTicket is one ledger row that never produced a ticket.
type MissingTicket struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderEmail    string    `json:"sender_email,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	ProcessedAt    time.Time `json:"processed_at"`
}
