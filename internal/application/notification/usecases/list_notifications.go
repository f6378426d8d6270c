package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/notification"
)

type NotificationResult struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	TicketID  *uint      `json:"ticket_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListNotificationsResult struct {
	Notifications []*NotificationResult `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
}

type ListNotificationsUseCase struct {
	notifications notification.Repository
}

func NewListNotificationsUseCase(notifications notification.Repository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notifications: notifications}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uint, unreadOnly bool, page, pageSize int) (*ListNotificationsResult, error) {
	rows, total, err := uc.notifications.ListByUser(ctx, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]*NotificationResult, 0, len(rows))
	for _, n := range rows {
		results = append(results, &NotificationResult{
			ID:        n.ID(),
			Type:      string(n.NotificationType()),
			Title:     n.Title(),
			Content:   n.Content(),
			TicketID:  n.TicketID(),
			ReadAt:    n.ReadAt(),
			CreatedAt: n.CreatedAt(),
		})
	}
	return &ListNotificationsResult{Notifications: results, Total: total, Unread: unread}, nil
}
