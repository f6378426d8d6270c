package models

import "time"

// MailLogModel records every outbound email attempt so failed notification
// sends remain observable and retryable.
type MailLogModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Recipient string    `gorm:"type:varchar(320);not null;index"`
	Subject   string    `gorm:"type:varchar(500);not null"`
	TicketID  *uint     `gorm:"index"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	Error     string    `gorm:"type:text"`
	Attempts  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (MailLogModel) TableName() string {
	return "mail_logs"
}
