package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	// Create stores a new conversation
	Create(ctx context.Context, conv *model.Conversation) error

	// Get retrieves a conversation by ID
	Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error)

	// ListByClient retrieves all conversations owned by a client, newest
	// first
	ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Conversation, error)

	// Update replaces an existing conversation
	Update(ctx context.Context, conv *model.Conversation) error
}

// MessageRepository defines the interface for the append-only message log
type MessageRepository interface {
	// Append stores a new message
	Append(ctx context.Context, msg *model.Message) error

	// ListByConversation retrieves messages in chronological order. When
	// visibleToAdvocateOnly is true, messages hidden from advocates are
	// filtered out.
	ListByConversation(ctx context.Context, conversationID types.ConversationID, visibleToAdvocateOnly bool) ([]*model.Message, error)
}
