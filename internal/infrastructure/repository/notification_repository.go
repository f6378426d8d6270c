package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper *mappers.NotificationMapper
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     database,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return n.SetID(model.ID)
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.NotificationModel{}).
		Where("id = ?", model.ID).
		Update("read_at", model.ReadAt)
	if result.Error != nil {
		return fmt.Errorf("update notification %d: %w", model.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("notification not found")
	}
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.NotificationModel
	if err := conn.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("notification not found")
		}
		return nil, fmt.Errorf("get notification %d: %w", id, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, pageSize int) ([]*notification.Notification, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	query := conn.Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	pagination := utils.ValidatePagination(page, pageSize)

	var rows []models.NotificationModel
	err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	notifications := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		n, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := conn.Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", biztime.NowUTC())
	if result.Error != nil {
		return 0, fmt.Errorf("mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}
