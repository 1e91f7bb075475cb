package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

type conversationRepository struct {
	mu            sync.RWMutex
	conversations map[types.ConversationID]*model.Conversation
}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		conversations: make(map[types.ConversationID]*model.Conversation),
	}
}

func copyConversation(conv *model.Conversation) *model.Conversation {
	copied := *conv
	return &copied
}

func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyConversation(conv)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.conversations[created.ID] = created
	conv.CreatedAt = now
	conv.UpdatedAt = now
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, exists := r.conversations[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "conversation not found", goerr.V("id", id))
	}

	return copyConversation(conv), nil
}

func (r *conversationRepository) ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Conversation{}
	for _, conv := range r.conversations {
		if conv.ClientID == clientID {
			result = append(result, copyConversation(conv))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *conversationRepository) Update(ctx context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.conversations[conv.ID]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "conversation not found", goerr.V("id", conv.ID))
	}

	updated := copyConversation(conv)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.conversations[conv.ID] = updated
	return nil
}

type messageRepository struct {
	mu       sync.RWMutex
	messages map[types.ConversationID][]*model.Message
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[types.ConversationID][]*model.Message),
	}
}

func copyMessage(msg *model.Message) *model.Message {
	copied := *msg
	return &copied
}

func (r *messageRepository) Append(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyMessage(msg)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.messages[stored.ConversationID] = append(r.messages[stored.ConversationID], stored)
	msg.CreatedAt = stored.CreatedAt
	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID types.ConversationID, visibleToAdvocateOnly bool) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Message{}
	for _, msg := range r.messages[conversationID] {
		if visibleToAdvocateOnly && !msg.VisibleToAdvocate {
			continue
		}
		result = append(result, copyMessage(msg))
	}
	return result, nil
}
