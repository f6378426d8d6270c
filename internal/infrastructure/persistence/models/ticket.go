package models

import (
	"time"

	"gorm.io/datatypes"
)

type TicketModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Details     string         `gorm:"type:text;not null"`
	CategoryID  *uint          `gorm:"index"`
	Priority    string         `gorm:"type:varchar(20);not null;default:'medium';index"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatorID   *uint          `gorm:"index"`
	LocationID  *uint          `gorm:"index"`
	DueDate     *time.Time     `gorm:"index"`
	Tags        datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
	CompletedAt *time.Time
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketCommentModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	TicketID   uint      `gorm:"not null;index"`
	AuthorID   *uint     `gorm:"index"`
	AuthorName string    `gorm:"type:varchar(200)"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (TicketCommentModel) TableName() string {
	return "ticket_comments"
}

type TicketAssignmentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	TicketID  uint      `gorm:"not null;uniqueIndex"`
	AssignTo  uint      `gorm:"not null;index"`
	AssignBy  uint      `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (TicketAssignmentModel) TableName() string {
	return "ticket_assignments"
}

type TicketAssignmentLogModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	TicketID    uint      `gorm:"not null;index"`
	OldAssignee *uint     `gorm:""`
	NewAssignee uint      `gorm:"not null"`
	ChangedBy   uint      `gorm:"not null"`
	ChangedAt   time.Time `gorm:"not null"`
}

func (TicketAssignmentLogModel) TableName() string {
	return "ticket_assignment_logs"
}

type TicketStatusLogModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	TicketID  uint      `gorm:"not null;index"`
	OldStatus string    `gorm:"type:varchar(20);not null"`
	NewStatus string    `gorm:"type:varchar(20);not null"`
	ChangedBy *uint     `gorm:""`
	ChangedAt time.Time `gorm:"not null"`
}

func (TicketStatusLogModel) TableName() string {
	return "ticket_status_logs"
}

type TicketFollowUpModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	TicketID  uint      `gorm:"not null;uniqueIndex:uk_followup_ticket_user"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_followup_ticket_user;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (TicketFollowUpModel) TableName() string {
	return "ticket_followups"
}
