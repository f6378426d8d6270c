package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
)

type StatusLogRepository struct {
	db *gorm.DB
}

func NewStatusLogRepository(database *gorm.DB) *StatusLogRepository {
	return &StatusLogRepository{db: database}
}

func (r *StatusLogRepository) Append(ctx context.Context, log *ticket.StatusLog) error {
	model := &models.TicketStatusLogModel{
		TicketID:  log.TicketID,
		OldStatus: log.OldStatus,
		NewStatus: log.NewStatus,
		ChangedBy: log.ChangedBy,
		ChangedAt: log.ChangedAt,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("append status log: %w", err)
	}
	log.ID = model.ID
	return nil
}

func (r *StatusLogRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.StatusLog, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketStatusLogModel
	err := conn.Where("ticket_id = ?", ticketID).
		Order("changed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list status logs for ticket %d: %w", ticketID, err)
	}

	logs := make([]*ticket.StatusLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, &ticket.StatusLog{
			ID:        rows[i].ID,
			TicketID:  rows[i].TicketID,
			OldStatus: rows[i].OldStatus,
			NewStatus: rows[i].NewStatus,
			ChangedBy: rows[i].ChangedBy,
			ChangedAt: rows[i].ChangedAt,
		})
	}
	return logs, nil
}

func (r *StatusLogRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Where("ticket_id = ?", ticketID).Delete(&models.TicketStatusLogModel{}).Error; err != nil {
		return fmt.Errorf("delete status logs for ticket %d: %w", ticketID, err)
	}
	return nil
}
