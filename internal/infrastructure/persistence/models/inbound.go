package models

import "time"

// ProcessedMessageModel is the ingestion ledger. The unique index on
// MessageID makes the reservation insert the idempotency gate; the unique
// index on OwnerKey (null on every non-owning row, so ignored by MySQL)
// enforces at most one ticket per conversation.
type ProcessedMessageModel struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	MessageID      string     `gorm:"type:varchar(512);not null;uniqueIndex:uk_processed_message_id,length:191"`
	ConversationID string     `gorm:"type:varchar(512);not null;index:idx_processed_conversation,length:191"`
	OwnerKey       *string    `gorm:"type:varchar(512);uniqueIndex:uk_processed_owner_key,length:191"`
	SenderEmail    string     `gorm:"type:varchar(320)"`
	Subject        string     `gorm:"type:varchar(500)"`
	LinkedTicketID *uint      `gorm:"index"`
	IsFollowup     bool       `gorm:"not null;default:false"`
	Suppressed     bool       `gorm:"not null;default:false"`
	ProcessedAt    time.Time  `gorm:"not null;index"`
}

func (ProcessedMessageModel) TableName() string {
	return "processed_messages"
}
