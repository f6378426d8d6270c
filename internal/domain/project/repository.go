package project

import "context"

type Repository interface {
	Save(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*Project, int64, error)

	AddMember(ctx context.Context, m *Membership) error
	RemoveMember(ctx context.Context, projectID, userID uint) error
	Members(ctx context.Context, projectID uint) ([]*Membership, error)

	AddTag(ctx context.Context, t *Tag) error
	RemoveTag(ctx context.Context, projectID uint, name string) error
	Tags(ctx context.Context, projectID uint) ([]*Tag, error)

	LinkTicket(ctx context.Context, l *TicketLink) error
	UnlinkTicket(ctx context.Context, projectID, ticketID uint) error
	TicketLinks(ctx context.Context, projectID uint) ([]*TicketLink, error)
}
