package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// RealtimePublisher pushes events to connected clients. Both methods are
// best effort: a user who is not connected is silently skipped, and a
// failing connection never fails the caller.
type RealtimePublisher interface {
	// SendToUser delivers an event to every connection of one user
	SendToUser(ctx context.Context, userID types.UserID, event any)

	// BroadcastToConversation delivers an event to every connection
	// subscribed to a conversation
	BroadcastToConversation(ctx context.Context, conversationID types.ConversationID, event any)
}
