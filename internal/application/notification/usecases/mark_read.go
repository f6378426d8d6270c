package usecases

import (
	"context"

	"helpdesk/internal/domain/notification"
	apperrors "helpdesk/internal/shared/errors"
)

type MarkReadUseCase struct {
	notifications notification.Repository
}

func NewMarkReadUseCase(notifications notification.Repository) *MarkReadUseCase {
	return &MarkReadUseCase{notifications: notifications}
}

// Execute marks one notification read. Only the owner may mark it; marking
// an already-read notification is a no-op.
func (uc *MarkReadUseCase) Execute(ctx context.Context, notificationID, userID uint) error {
	n, err := uc.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID() != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	if n.IsRead() {
		return nil
	}

	n.MarkRead()
	return uc.notifications.Update(ctx, n)
}

// ExecuteAll marks every unread notification for the user read and returns
// the number affected.
func (uc *MarkReadUseCase) ExecuteAll(ctx context.Context, userID uint) (int64, error) {
	return uc.notifications.MarkAllRead(ctx, userID)
}
