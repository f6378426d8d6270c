package category

import "context"

type Repository interface {
	Save(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
}
