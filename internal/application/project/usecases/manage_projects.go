package usecases

import (
	"context"
	"strings"
	"time"

	"helpdesk/internal/domain/project"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/biztime"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ProjectResult struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     uint      `json:"owner_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProjectResult(p *project.Project) *ProjectResult {
	return &ProjectResult{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		OwnerID:     p.OwnerID(),
		Active:      p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

type ListProjectsResult struct {
	Projects []*ProjectResult `json:"projects"`
	Total    int64            `json:"total"`
}

type ProjectDetailResult struct {
	Project   *ProjectResult `json:"project"`
	MemberIDs []uint         `json:"member_ids"`
	Tags      []string       `json:"tags"`
	TicketIDs []uint         `json:"ticket_ids"`
}

type ManageProjectsUseCase struct {
	projects project.Repository
	tickets  ticket.TicketRepository
	log      logger.Interface
}

func NewManageProjectsUseCase(
	projects project.Repository,
	tickets ticket.TicketRepository,
	log logger.Interface,
) *ManageProjectsUseCase {
	return &ManageProjectsUseCase{
		projects: projects,
		tickets:  tickets,
		log:      log.Named("projects"),
	}
}

func (uc *ManageProjectsUseCase) Create(ctx context.Context, name, description string, ownerID uint) (*ProjectResult, error) {
	p, err := project.NewProject(name, description, ownerID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.projects.Save(ctx, p); err != nil {
		return nil, err
	}

	// The owner is implicitly on the team.
	membership := &project.Membership{
		ProjectID: p.ID(),
		UserID:    ownerID,
		AddedBy:   ownerID,
		CreatedAt: biztime.NowUTC(),
	}
	if err := uc.projects.AddMember(ctx, membership); err != nil && !apperrors.IsConflictError(err) {
		uc.log.Warnw("failed to add owner as project member", "project_id", p.ID(), "error", err)
	}

	uc.log.Infow("project created", "project_id", p.ID(), "name", p.Name())
	return newProjectResult(p), nil
}

func (uc *ManageProjectsUseCase) Update(ctx context.Context, projectID uint, name, description string) (*ProjectResult, error) {
	p, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := p.Update(name, description); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return newProjectResult(p), nil
}

func (uc *ManageProjectsUseCase) Archive(ctx context.Context, projectID uint) error {
	p, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	p.Archive()
	if err := uc.projects.Update(ctx, p); err != nil {
		return err
	}
	uc.log.Infow("project archived", "project_id", projectID)
	return nil
}

func (uc *ManageProjectsUseCase) Delete(ctx context.Context, projectID uint) error {
	if err := uc.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	uc.log.Infow("project deleted", "project_id", projectID)
	return nil
}

func (uc *ManageProjectsUseCase) Get(ctx context.Context, projectID uint) (*ProjectDetailResult, error) {
	p, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := &ProjectDetailResult{
		Project:   newProjectResult(p),
		MemberIDs: []uint{},
		Tags:      []string{},
		TicketIDs: []uint{},
	}

	members, err := uc.projects.Members(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		result.MemberIDs = append(result.MemberIDs, m.UserID)
	}

	tags, err := uc.projects.Tags(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		result.Tags = append(result.Tags, t.Name)
	}

	links, err := uc.projects.TicketLinks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		result.TicketIDs = append(result.TicketIDs, l.TicketID)
	}

	return result, nil
}

func (uc *ManageProjectsUseCase) List(ctx context.Context, activeOnly bool, page, pageSize int) (*ListProjectsResult, error) {
	projects, total, err := uc.projects.List(ctx, activeOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]*ProjectResult, 0, len(projects))
	for _, p := range projects {
		results = append(results, newProjectResult(p))
	}
	return &ListProjectsResult{Projects: results, Total: total}, nil
}

func (uc *ManageProjectsUseCase) AddMember(ctx context.Context, projectID, userID, actorID uint) error {
	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	if userID == 0 {
		return apperrors.NewValidationError("user ID is required")
	}
	return uc.projects.AddMember(ctx, &project.Membership{
		ProjectID: projectID,
		UserID:    userID,
		AddedBy:   actorID,
		CreatedAt: biztime.NowUTC(),
	})
}

func (uc *ManageProjectsUseCase) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return uc.projects.RemoveMember(ctx, projectID, userID)
}

func (uc *ManageProjectsUseCase) AddTag(ctx context.Context, projectID uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("tag name is required")
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("tag name exceeds maximum length of 100 characters")
	}
	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	return uc.projects.AddTag(ctx, &project.Tag{
		ProjectID: projectID,
		Name:      name,
		CreatedAt: biztime.NowUTC(),
	})
}

func (uc *ManageProjectsUseCase) RemoveTag(ctx context.Context, projectID uint, name string) error {
	return uc.projects.RemoveTag(ctx, projectID, name)
}

func (uc *ManageProjectsUseCase) LinkTicket(ctx context.Context, projectID, ticketID, actorID uint) error {
	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	if _, err := uc.tickets.GetByID(ctx, ticketID); err != nil {
		return err
	}
	return uc.projects.LinkTicket(ctx, &project.TicketLink{
		ProjectID: projectID,
		TicketID:  ticketID,
		LinkedBy:  actorID,
		CreatedAt: biztime.NowUTC(),
	})
}

func (uc *ManageProjectsUseCase) UnlinkTicket(ctx context.Context, projectID, ticketID uint) error {
	return uc.projects.UnlinkTicket(ctx, projectID, ticketID)
}
