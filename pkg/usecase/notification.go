package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

type NotificationUseCase struct {
	repo interfaces.Repository
}

// List retrieves a user's notifications, newest first
func (uc *NotificationUseCase) List(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	items, err := uc.repo.Notification().ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications")
	}
	return items, nil
}

// MarkRead marks one of the user's notifications as read
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID types.UserID, id types.NotificationID) error {
	if err := uc.repo.Notification().MarkRead(ctx, userID, id); err != nil {
		return wrapNotFound(err, ErrNotificationNotFound, "notification_id", id)
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID types.UserID) error {
	if err := uc.repo.Notification().MarkAllRead(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to mark notifications read")
	}
	return nil
}

// CountUnread counts the user's unread notifications
func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID types.UserID) (int, error) {
	count, err := uc.repo.Notification().CountUnread(ctx, userID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}
