package models

import "time"

type NotificationModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    uint       `gorm:"not null;index:idx_notification_user"`
	Type      string     `gorm:"type:varchar(40);not null"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Content   string     `gorm:"type:text"`
	TicketID  *uint      `gorm:"index"`
	ReadAt    *time.Time `gorm:"index:idx_notification_user"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
