// Package category models ticket categories. A category can carry a default
// assignee; the ingestion pipeline uses it to auto-assign tickets created
// from email.
package category

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

type Category struct {
	id                uint
	name              string
	defaultAssigneeID *uint
	active            bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewCategory(name string, defaultAssigneeID *uint) (*Category, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if defaultAssigneeID != nil && *defaultAssigneeID == 0 {
		return nil, fmt.Errorf("default assignee ID cannot be zero")
	}

	now := biztime.NowUTC()
	return &Category{
		name:              name,
		defaultAssigneeID: defaultAssigneeID,
		active:            true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructCategory(
	id uint,
	name string,
	defaultAssigneeID *uint,
	active bool,
	createdAt, updatedAt time.Time,
) (*Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	return &Category{
		id:                id,
		name:              name,
		defaultAssigneeID: defaultAssigneeID,
		active:            active,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (c *Category) ID() uint                 { return c.id }
func (c *Category) Name() string             { return c.name }
func (c *Category) DefaultAssigneeID() *uint { return c.defaultAssigneeID }
func (c *Category) IsActive() bool           { return c.active }
func (c *Category) CreatedAt() time.Time     { return c.createdAt }
func (c *Category) UpdatedAt() time.Time     { return c.updatedAt }

func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("category ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("category ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Category) Rename(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	c.name = name
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) SetDefaultAssignee(userID *uint) error {
	if userID != nil && *userID == 0 {
		return fmt.Errorf("default assignee ID cannot be zero")
	}
	c.defaultAssigneeID = userID
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) Activate() {
	c.active = true
	c.updatedAt = biztime.NowUTC()
}

func (c *Category) Deactivate() {
	c.active = false
	c.updatedAt = biztime.NowUTC()
}
