package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper *mappers.CommentMapper
}

func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     database,
		mapper: mappers.NewCommentMapper(),
	}
}

func (r *CommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.ToModel(c)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("save comment: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketCommentModel
	err := conn.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments for ticket %d: %w", ticketID, err)
	}

	comments := make([]*ticket.Comment, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *CommentRepository) Exists(ctx context.Context, ticketID uint, authorID *uint, body string) (bool, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	query := conn.Model(&models.TicketCommentModel{}).
		Where("ticket_id = ? AND body = ?", ticketID, body)
	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	} else {
		query = query.Where("author_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check comment existence: %w", err)
	}
	return count > 0, nil
}

func (r *CommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Where("ticket_id = ?", ticketID).Delete(&models.TicketCommentModel{}).Error; err != nil {
		return fmt.Errorf("delete comments for ticket %d: %w", ticketID, err)
	}
	return nil
}
