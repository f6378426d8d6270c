package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

type AssignmentRepository struct {
	db     *gorm.DB
	mapper *mappers.AssignmentMapper
}

func NewAssignmentRepository(database *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:     database,
		mapper: mappers.NewAssignmentMapper(),
	}
}

func (r *AssignmentRepository) Save(ctx context.Context, a *ticket.Assignment) error {
	model := r.mapper.ToModel(a)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AssignmentRepository) Update(ctx context.Context, a *ticket.Assignment) error {
	model := r.mapper.ToModel(a)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.TicketAssignmentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"assign_to":  model.AssignTo,
			"assign_by":  model.AssignBy,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update assignment %d: %w", model.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("assignment not found")
	}
	return nil
}

func (r *AssignmentRepository) GetByTicketID(ctx context.Context, ticketID uint) (*ticket.Assignment, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.TicketAssignmentModel
	if err := conn.Where("ticket_id = ?", ticketID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("assignment not found")
		}
		return nil, fmt.Errorf("get assignment for ticket %d: %w", ticketID, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *AssignmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Where("ticket_id = ?", ticketID).Delete(&models.TicketAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("delete assignment for ticket %d: %w", ticketID, err)
	}
	return nil
}

func (r *AssignmentRepository) AppendLog(ctx context.Context, log *ticket.AssignmentLog) error {
	model := &models.TicketAssignmentLogModel{
		TicketID:    log.TicketID,
		OldAssignee: log.OldAssignee,
		NewAssignee: log.NewAssignee,
		ChangedBy:   log.ChangedBy,
		ChangedAt:   log.ChangedAt,
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("append assignment log: %w", err)
	}
	log.ID = model.ID
	return nil
}

func (r *AssignmentRepository) LogsByTicketID(ctx context.Context, ticketID uint) ([]*ticket.AssignmentLog, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketAssignmentLogModel
	err := conn.Where("ticket_id = ?", ticketID).
		Order("changed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list assignment logs for ticket %d: %w", ticketID, err)
	}

	logs := make([]*ticket.AssignmentLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, &ticket.AssignmentLog{
			ID:          rows[i].ID,
			TicketID:    rows[i].TicketID,
			OldAssignee: rows[i].OldAssignee,
			NewAssignee: rows[i].NewAssignee,
			ChangedBy:   rows[i].ChangedBy,
			ChangedAt:   rows[i].ChangedAt,
		})
	}
	return logs, nil
}
