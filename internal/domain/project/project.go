// Package project models the project grouping concept: projects have their
// own team and tags, and tickets are linked to projects through explicit
// link rows.
package project

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

type Project struct {
	id          uint
	name        string
	description string
	ownerID     uint
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProject(name, description string, ownerID uint) (*Project, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 200 {
		return nil, fmt.Errorf("name exceeds maximum length of 200 characters")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	now := biztime.NowUTC()
	return &Project{
		name:        name,
		description: description,
		ownerID:     ownerID,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructProject(
	id uint,
	name, description string,
	ownerID uint,
	active bool,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	return &Project{
		id:          id,
		name:        name,
		description: description,
		ownerID:     ownerID,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Project) ID() uint             { return p.id }
func (p *Project) Name() string         { return p.name }
func (p *Project) Description() string  { return p.description }
func (p *Project) OwnerID() uint        { return p.ownerID }
func (p *Project) IsActive() bool       { return p.active }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }

func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Project) Update(name, description string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 200 {
		return fmt.Errorf("name exceeds maximum length of 200 characters")
	}
	p.name = name
	p.description = description
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Project) Archive() {
	p.active = false
	p.updatedAt = biztime.NowUTC()
}

// Membership links a user to a project team.
type Membership struct {
	ID        uint
	ProjectID uint
	UserID    uint
	AddedBy   uint
	CreatedAt time.Time
}

// Tag labels a project.
type Tag struct {
	ID        uint
	ProjectID uint
	Name      string
	CreatedAt time.Time
}

// TicketLink attaches a ticket to a project. A ticket may appear in zero or
// more projects.
type TicketLink struct {
	ID        uint
	ProjectID uint
	TicketID  uint
	LinkedBy  uint
	CreatedAt time.Time
}
