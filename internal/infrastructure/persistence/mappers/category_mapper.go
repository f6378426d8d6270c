package mappers

import (
	"helpdesk/internal/domain/category"
	"helpdesk/internal/infrastructure/persistence/models"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToModel(c *category.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:                c.ID(),
		Name:              c.Name(),
		DefaultAssigneeID: c.DefaultAssigneeID(),
		Active:            c.IsActive(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

func (m *CategoryMapper) ToDomain(model *models.CategoryModel) (*category.Category, error) {
	return category.ReconstructCategory(
		model.ID,
		model.Name,
		model.DefaultAssigneeID,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
