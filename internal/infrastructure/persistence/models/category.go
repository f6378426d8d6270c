package models

import "time"

type CategoryModel struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	Name              string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	DefaultAssigneeID *uint     `gorm:""`
	Active            bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
