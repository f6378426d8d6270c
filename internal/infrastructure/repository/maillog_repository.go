package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
)

const (
	MailStatusPending = "pending"
	MailStatusSent    = "sent"
	MailStatusFailed  = "failed"
)

// MailLogRepository tracks outbound email attempts. The dispatcher writes a
// pending row before handing the message to a worker and finalizes it after
// the SMTP attempt.
type MailLogRepository struct {
	db *gorm.DB
}

func NewMailLogRepository(database *gorm.DB) *MailLogRepository {
	return &MailLogRepository{db: database}
}

func (r *MailLogRepository) Create(ctx context.Context, recipient, subject string, ticketID *uint) (uint, error) {
	now := biztime.NowUTC()
	model := &models.MailLogModel{
		Recipient: recipient,
		Subject:   subject,
		TicketID:  ticketID,
		Status:    MailStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return 0, fmt.Errorf("create mail log: %w", err)
	}
	return model.ID, nil
}

func (r *MailLogRepository) MarkSent(ctx context.Context, id uint, attempts int) error {
	return r.finalize(ctx, id, MailStatusSent, "", attempts)
}

func (r *MailLogRepository) MarkFailed(ctx context.Context, id uint, sendErr error, attempts int) error {
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	return r.finalize(ctx, id, MailStatusFailed, msg, attempts)
}

func (r *MailLogRepository) finalize(ctx context.Context, id uint, status, errMsg string, attempts int) error {
	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Model(&models.MailLogModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"error":      errMsg,
			"attempts":   attempts,
			"updated_at": biztime.NowUTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("finalize mail log %d: %w", id, err)
	}
	return nil
}

// ListFailed returns failed sends for operator inspection.
func (r *MailLogRepository) ListFailed(ctx context.Context, limit int) ([]models.MailLogModel, error) {
	if limit <= 0 {
		limit = 50
	}
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.MailLogModel
	err := conn.Where("status = ?", MailStatusFailed).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list failed mail logs: %w", err)
	}
	return rows, nil
}
