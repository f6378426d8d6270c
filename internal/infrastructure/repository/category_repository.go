package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/category"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

type CategoryRepository struct {
	db     *gorm.DB
	mapper *mappers.CategoryMapper
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		db:     database,
		mapper: mappers.NewCategoryMapper(),
	}
}

func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	model := r.mapper.ToModel(c)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewConflictError("category name already exists")
		}
		return fmt.Errorf("save category: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := r.mapper.ToModel(c)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                model.Name,
			"default_assignee_id": model.DefaultAssigneeID,
			"active":              model.Active,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return apperrors.NewConflictError("category name already exists")
		}
		return fmt.Errorf("update category %d: %w", model.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Delete(&models.CategoryModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.CategoryModel
	if err := conn.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.CategoryModel
	if err := conn.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]*category.Category, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	query := conn.Model(&models.CategoryModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.CategoryModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]*category.Category, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}
