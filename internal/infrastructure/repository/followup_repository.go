package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

type FollowUpRepository struct {
	db *gorm.DB
}

func NewFollowUpRepository(database *gorm.DB) *FollowUpRepository {
	return &FollowUpRepository{db: database}
}

func (r *FollowUpRepository) Save(ctx context.Context, f *ticket.FollowUp) error {
	model := &models.TicketFollowUpModel{
		TicketID:  f.TicketID(),
		UserID:    f.UserID(),
		CreatedAt: f.CreatedAt(),
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewConflictError("user already follows this ticket")
		}
		return fmt.Errorf("save follow-up: %w", err)
	}
	return f.SetID(model.ID)
}

func (r *FollowUpRepository) Delete(ctx context.Context, ticketID, userID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Delete(&models.TicketFollowUpModel{})
	if result.Error != nil {
		return fmt.Errorf("delete follow-up: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("follow-up not found")
	}
	return nil
}

func (r *FollowUpRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketFollowUpModel
	err := conn.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list follow-ups for ticket %d: %w", ticketID, err)
	}

	followups := make([]*ticket.FollowUp, 0, len(rows))
	for i := range rows {
		f, err := ticket.ReconstructFollowUp(rows[i].ID, rows[i].TicketID, rows[i].UserID, rows[i].CreatedAt)
		if err != nil {
			return nil, err
		}
		followups = append(followups, f)
	}
	return followups, nil
}

func (r *FollowUpRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Where("ticket_id = ?", ticketID).Delete(&models.TicketFollowUpModel{}).Error; err != nil {
		return fmt.Errorf("delete follow-ups for ticket %d: %w", ticketID, err)
	}
	return nil
}

// isDuplicateEntry detects a MySQL unique-constraint violation (error 1062).
func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Error 1062") ||
		strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
