package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/async"
)

type ConversationUseCase struct {
	repo      interfaces.Repository
	assistant interfaces.Assistant
	notifier  *notify.Service
	cases     *CaseUseCase
}

// SendMessageResult carries both sides of one AI exchange plus what the
// exchange did to the case profile.
type SendMessageResult struct {
	ClientMessage            *model.Message
	AIMessage                *model.Message
	ProfileUpdated           bool
	RecommendationsAvailable bool
	CaseID                   types.CaseID
}

// Start opens a new AI conversation for a client and posts the greeting
func (uc *ConversationUseCase) Start(ctx context.Context, clientID types.UserID) (*model.Conversation, error) {
	if err := clientID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "client ID is required")
	}

	now := time.Now().UTC()
	conv := &model.Conversation{
		ID:        types.NewConversationID(),
		ClientID:  clientID,
		Phase:     types.PhaseAIInterview,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Conversation().Create(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to create conversation")
	}

	if uc.assistant != nil {
		greeting := &model.Message{
			ID:                types.NewMessageID(),
			ConversationID:    conv.ID,
			Sender:            types.SenderAI,
			Type:              types.MessageText,
			Content:           uc.assistant.Greeting(ctx),
			VisibleToAdvocate: true,
			CreatedAt:         now,
		}
		if err := uc.repo.Message().Append(ctx, greeting); err != nil {
			return nil, goerr.Wrap(err, "failed to post greeting message",
				goerr.V(ConversationIDKey, conv.ID))
		}
	}

	return conv, nil
}

// Get retrieves one of the client's conversations
func (uc *ConversationUseCase) Get(ctx context.Context, clientID types.UserID, id types.ConversationID) (*model.Conversation, error) {
	return uc.getOwned(ctx, clientID, id)
}

// List retrieves all conversations of a client, newest first
func (uc *ConversationUseCase) List(ctx context.Context, clientID types.UserID) ([]*model.Conversation, error) {
	convs, err := uc.repo.Conversation().ListByClient(ctx, clientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations")
	}
	return convs, nil
}

// Messages retrieves the full message log of one of the client's
// conversations
func (uc *ConversationUseCase) Messages(ctx context.Context, clientID types.UserID, id types.ConversationID) ([]*model.Message, error) {
	if _, err := uc.getOwned(ctx, clientID, id); err != nil {
		return nil, err
	}
	msgs, err := uc.repo.Message().ListByConversation(ctx, id, false)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list messages",
			goerr.V(ConversationIDKey, id))
	}
	return msgs, nil
}

// SendMessage posts a client message to an AI-phase conversation, obtains
// the AI reply, and folds any extracted case facts into the case profile.
func (uc *ConversationUseCase) SendMessage(ctx context.Context, clientID types.UserID, id types.ConversationID, content string) (*SendMessageResult, error) {
	if content == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "message content is required")
	}
	if uc.assistant == nil {
		return nil, goerr.New("assistant is not configured")
	}

	conv, err := uc.getOwned(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if !conv.Phase.IsAIPhase() {
		return nil, goerr.Wrap(ErrConversationWithAdvocate, "cannot send AI message",
			goerr.V(ConversationIDKey, id),
			goerr.V("phase", conv.Phase))
	}

	history, err := uc.repo.Message().ListByConversation(ctx, id, false)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load conversation history",
			goerr.V(ConversationIDKey, id))
	}

	now := time.Now().UTC()
	clientMsg := &model.Message{
		ID:                types.NewMessageID(),
		ConversationID:    id,
		SenderID:          clientID,
		Sender:            types.SenderClient,
		Type:              types.MessageText,
		Content:           content,
		VisibleToAdvocate: true,
		CreatedAt:         now,
	}
	if err := uc.repo.Message().Append(ctx, clientMsg); err != nil {
		return nil, goerr.Wrap(err, "failed to store client message",
			goerr.V(ConversationIDKey, id))
	}

	reply, err := uc.assistant.Respond(ctx, conv, history, content)
	if err != nil {
		return nil, goerr.Wrap(err, "assistant failed",
			goerr.V(ConversationIDKey, id))
	}

	aiMsg := &model.Message{
		ID:                types.NewMessageID(),
		ConversationID:    id,
		Sender:            types.SenderAI,
		Type:              types.MessageText,
		Content:           reply.Text,
		VisibleToAdvocate: true,
		CreatedAt:         time.Now().UTC(),
	}
	if err := uc.repo.Message().Append(ctx, aiMsg); err != nil {
		return nil, goerr.Wrap(err, "failed to store AI message",
			goerr.V(ConversationIDKey, id))
	}

	conv.SessionToken = reply.SessionToken
	conv.UpdatedAt = time.Now().UTC()

	result := &SendMessageResult{
		ClientMessage: clientMsg,
		AIMessage:     aiMsg,
	}

	if reply.Fragment != nil {
		c, err := uc.cases.Ingest(ctx, conv, *reply.Fragment)
		if err != nil {
			return nil, err
		}
		result.ProfileUpdated = true
		if c != nil {
			conv.CaseID = c.ID
			result.CaseID = c.ID
			result.RecommendationsAvailable = c.Profile.HasMinimum()
		}
	}

	if err := uc.repo.Conversation().Update(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to update conversation",
			goerr.V(ConversationIDKey, id))
	}

	if uc.notifier != nil {
		notifier := uc.notifier
		async.Dispatch(ctx, func(ctx context.Context) error {
			notifier.BroadcastMessage(ctx, id, clientMsg)
			notifier.BroadcastMessage(ctx, id, aiMsg)
			return nil
		})
	}

	return result, nil
}

// PostAdvocateMessage posts a message from the assigned advocate into the
// case conversation and notifies the client.
func (uc *ConversationUseCase) PostAdvocateMessage(ctx context.Context, advocateID types.UserID, caseID types.CaseID, content string) (*model.Message, error) {
	if content == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "message content is required")
	}

	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, caseID)
	}
	if c.AdvocateID != advocateID {
		return nil, goerr.Wrap(ErrCaseNotFound, "case is not assigned to advocate",
			goerr.V(CaseIDKey, caseID))
	}

	conv, err := uc.repo.Conversation().Get(ctx, c.ConversationID)
	if err != nil {
		return nil, wrapNotFound(err, ErrConversationNotFound, ConversationIDKey, c.ConversationID)
	}

	msg := &model.Message{
		ID:                types.NewMessageID(),
		ConversationID:    conv.ID,
		SenderID:          advocateID,
		Sender:            types.SenderAdvocate,
		Type:              types.MessageText,
		Content:           content,
		VisibleToAdvocate: true,
		CreatedAt:         time.Now().UTC(),
	}
	if err := uc.repo.Message().Append(ctx, msg); err != nil {
		return nil, goerr.Wrap(err, "failed to store advocate message",
			goerr.V(ConversationIDKey, conv.ID))
	}

	conv.UpdatedAt = msg.CreatedAt
	if err := uc.repo.Conversation().Update(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to update conversation",
			goerr.V(ConversationIDKey, conv.ID))
	}

	if uc.notifier != nil {
		senderName := "Your advocate"
		if adv, err := uc.repo.Advocate().Get(ctx, advocateID); err == nil {
			senderName = adv.Name
		}

		notifier := uc.notifier
		clientID := c.ClientID
		async.Dispatch(ctx, func(ctx context.Context) error {
			notifier.BroadcastMessage(ctx, conv.ID, msg)
			return notifier.NewMessage(ctx, clientID, caseID, senderName, content)
		})
	}

	return msg, nil
}

// Authorize checks that the user participates in the conversation, either
// as the client or as the advocate it was handed over to.
func (uc *ConversationUseCase) Authorize(ctx context.Context, userID types.UserID, id types.ConversationID) (*model.Conversation, error) {
	conv, err := uc.repo.Conversation().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrConversationNotFound, ConversationIDKey, id)
	}
	if conv.ClientID != userID && conv.AdvocateID != userID {
		return nil, goerr.Wrap(ErrConversationNotFound, "user is not a participant",
			goerr.V(ConversationIDKey, id))
	}
	return conv, nil
}

func (uc *ConversationUseCase) getOwned(ctx context.Context, clientID types.UserID, id types.ConversationID) (*model.Conversation, error) {
	conv, err := uc.repo.Conversation().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrConversationNotFound, ConversationIDKey, id)
	}
	if conv.ClientID != clientID {
		return nil, goerr.Wrap(ErrConversationNotFound, "conversation does not belong to client",
			goerr.V(ConversationIDKey, id))
	}
	return conv, nil
}
