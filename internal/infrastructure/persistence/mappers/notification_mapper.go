package mappers

import (
	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/persistence/models"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.NotificationType()),
		Title:     n.Title(),
		Content:   n.Content(),
		TicketID:  n.TicketID(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

func (m *NotificationMapper) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		notification.Type(model.Type),
		model.Title,
		model.Content,
		model.TicketID,
		model.ReadAt,
		model.CreatedAt,
	)
}
