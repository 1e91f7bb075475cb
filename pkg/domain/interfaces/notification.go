package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// NotificationRepository defines the interface for the durable notification
// log
type NotificationRepository interface {
	// Create stores a new notification
	Create(ctx context.Context, n *model.Notification) error

	// ListByUser retrieves a user's notifications, newest first. When
	// unreadOnly is true, read notifications are filtered out.
	ListByUser(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*model.Notification, error)

	// MarkRead marks one notification as read. The notification must
	// belong to the user.
	MarkRead(ctx context.Context, userID types.UserID, id types.NotificationID) error

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(ctx context.Context, userID types.UserID) error

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, userID types.UserID) (int, error)
}
