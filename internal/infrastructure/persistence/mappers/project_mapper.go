package mappers

import (
	"helpdesk/internal/domain/project"
	"helpdesk/internal/infrastructure/persistence/models"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToModel(p *project.Project) *models.ProjectModel {
	return &models.ProjectModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		OwnerID:     p.OwnerID(),
		Active:      p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (m *ProjectMapper) ToDomain(model *models.ProjectModel) (*project.Project, error) {
	return project.ReconstructProject(
		model.ID,
		model.Name,
		model.Description,
		model.OwnerID,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ProjectMapper) MembershipToModel(mb *project.Membership) *models.ProjectMembershipModel {
	return &models.ProjectMembershipModel{
		ID:        mb.ID,
		ProjectID: mb.ProjectID,
		UserID:    mb.UserID,
		AddedBy:   mb.AddedBy,
		CreatedAt: mb.CreatedAt,
	}
}

func (m *ProjectMapper) MembershipToDomain(model *models.ProjectMembershipModel) *project.Membership {
	return &project.Membership{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		UserID:    model.UserID,
		AddedBy:   model.AddedBy,
		CreatedAt: model.CreatedAt,
	}
}

func (m *ProjectMapper) TagToModel(t *project.Tag) *models.ProjectTagModel {
	return &models.ProjectTagModel{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ProjectMapper) TagToDomain(model *models.ProjectTagModel) *project.Tag {
	return &project.Tag{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}

func (m *ProjectMapper) TicketLinkToModel(l *project.TicketLink) *models.ProjectTicketLinkModel {
	return &models.ProjectTicketLinkModel{
		ID:        l.ID,
		ProjectID: l.ProjectID,
		TicketID:  l.TicketID,
		LinkedBy:  l.LinkedBy,
		CreatedAt: l.CreatedAt,
	}
}

func (m *ProjectMapper) TicketLinkToDomain(model *models.ProjectTicketLinkModel) *project.TicketLink {
	return &project.TicketLink{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		TicketID:  model.TicketID,
		LinkedBy:  model.LinkedBy,
		CreatedAt: model.CreatedAt,
	}
}
