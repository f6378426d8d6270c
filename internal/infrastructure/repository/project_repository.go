package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/project"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type ProjectRepository struct {
	db     *gorm.DB
	mapper *mappers.ProjectMapper
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:     database,
		mapper: mappers.NewProjectMapper(),
	}
}

func (r *ProjectRepository) Save(ctx context.Context, p *project.Project) error {
	model := r.mapper.ToModel(p)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := r.mapper.ToModel(p)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.ProjectModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"active":      model.Active,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update project %d: %w", model.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Delete(&models.ProjectModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete project %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.ProjectModel
	if err := conn.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ProjectRepository) List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*project.Project, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	query := conn.Model(&models.ProjectModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	pagination := utils.ValidatePagination(page, pageSize)

	var rows []models.ProjectModel
	err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]*project.Project, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, m *project.Membership) error {
	model := r.mapper.MembershipToModel(m)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewConflictError("user is already a project member")
		}
		return fmt.Errorf("add project member: %w", err)
	}
	m.ID = model.ID
	return nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMembershipModel{})
	if result.Error != nil {
		return fmt.Errorf("remove project member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("project member not found")
	}
	return nil
}

func (r *ProjectRepository) Members(ctx context.Context, projectID uint) ([]*project.Membership, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProjectMembershipModel
	err := conn.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}

	members := make([]*project.Membership, 0, len(rows))
	for i := range rows {
		members = append(members, r.mapper.MembershipToDomain(&rows[i]))
	}
	return members, nil
}

func (r *ProjectRepository) AddTag(ctx context.Context, t *project.Tag) error {
	model := r.mapper.TagToModel(t)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewConflictError("tag already exists on this project")
		}
		return fmt.Errorf("add project tag: %w", err)
	}
	t.ID = model.ID
	return nil
}

func (r *ProjectRepository) RemoveTag(ctx context.Context, projectID uint, name string) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Where("project_id = ? AND name = ?", projectID, name).
		Delete(&models.ProjectTagModel{})
	if result.Error != nil {
		return fmt.Errorf("remove project tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("project tag not found")
	}
	return nil
}

func (r *ProjectRepository) Tags(ctx context.Context, projectID uint) ([]*project.Tag, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProjectTagModel
	err := conn.Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list project tags: %w", err)
	}

	tags := make([]*project.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, r.mapper.TagToDomain(&rows[i]))
	}
	return tags, nil
}

func (r *ProjectRepository) LinkTicket(ctx context.Context, l *project.TicketLink) error {
	model := r.mapper.TicketLinkToModel(l)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewConflictError("ticket is already linked to this project")
		}
		return fmt.Errorf("link ticket to project: %w", err)
	}
	l.ID = model.ID
	return nil
}

func (r *ProjectRepository) UnlinkTicket(ctx context.Context, projectID, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Where("project_id = ? AND ticket_id = ?", projectID, ticketID).
		Delete(&models.ProjectTicketLinkModel{})
	if result.Error != nil {
		return fmt.Errorf("unlink ticket from project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket link not found")
	}
	return nil
}

func (r *ProjectRepository) TicketLinks(ctx context.Context, projectID uint) ([]*project.TicketLink, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProjectTicketLinkModel
	err := conn.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list ticket links: %w", err)
	}

	links := make([]*project.TicketLink, 0, len(rows))
	for i := range rows {
		links = append(links, r.mapper.TicketLinkToDomain(&rows[i]))
	}
	return links, nil
}
