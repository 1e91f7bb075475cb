package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
)

// Assistant generates the AI side of a conversation. Respond takes the
// conversation, the prior message history, and the client's new message, and
// returns the reply text plus any case facts extracted from the exchange.
type Assistant interface {
	Respond(ctx context.Context, conv *model.Conversation, history []*model.Message, message string) (*model.AssistantReply, error)

	// Greeting returns the opening AI message for a new conversation
	Greeting(ctx context.Context) string
}
