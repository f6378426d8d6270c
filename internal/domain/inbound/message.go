// Package inbound models the email-to-ticket ingestion state: raw mailbox
// messages and the processed-message ledger that makes ingestion idempotent.
package inbound

import "time"

// Message is a raw mailbox message as returned by the mail provider. The
// provider assigns MessageID (globally unique) and ConversationID (groups a
// thread).
type Message struct {
	MessageID      string
	ConversationID string
	Subject        string
	SenderName     string
	SenderEmail    string
	BodyHTML       string
	BodyText       string
	ReceivedAt     time.Time
}

// Body returns the richest body available: HTML when present, else plain
// text.
func (m *Message) Body() string {
	if m.BodyHTML != "" {
		return m.BodyHTML
	}
	return m.BodyText
}
