package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// CaseRepository defines the interface for case data access
type CaseRepository interface {
	// Create stores a new case
	Create(ctx context.Context, c *model.Case) error

	// Get retrieves a case by ID
	Get(ctx context.Context, id types.CaseID) (*model.Case, error)

	// GetByConversation retrieves the case linked to a conversation.
	// Returns nil, nil when the conversation has no case yet.
	GetByConversation(ctx context.Context, conversationID types.ConversationID) (*model.Case, error)

	// ListByClient retrieves all cases owned by a client
	ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Case, error)

	// ListByAdvocate retrieves all cases assigned to an advocate
	ListByAdvocate(ctx context.Context, advocateID types.UserID) ([]*model.Case, error)

	// Update replaces an existing case
	Update(ctx context.Context, c *model.Case) error
}
