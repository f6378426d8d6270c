package models

import "time"

type ProjectModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	OwnerID     uint      `gorm:"not null;index"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

type ProjectMembershipModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_member"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_project_member;index"`
	AddedBy   uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectMembershipModel) TableName() string {
	return "project_memberships"
}

type ProjectTagModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_tag"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_project_tag"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectTagModel) TableName() string {
	return "project_tags"
}

type ProjectTicketLinkModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_ticket"`
	TicketID  uint      `gorm:"not null;uniqueIndex:uk_project_ticket;index"`
	LinkedBy  uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectTicketLinkModel) TableName() string {
	return "project_ticket_links"
}
