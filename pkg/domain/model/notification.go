package model

import (
	"time"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// Notification is a durable per-user record of a lifecycle event. Delivery
// over the realtime channel is best effort; the record itself always persists.
type Notification struct {
	ID      types.NotificationID
	UserID  types.UserID
	Type    types.NotificationType
	Title   string
	Message string

	CaseID    types.CaseID
	RequestID types.RequestID

	Read      bool
	CreatedAt time.Time
}
