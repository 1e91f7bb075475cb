package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
)

func strPtr(s string) *string { return &s }

func TestStartConversation(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCases(t, &scriptedAssistant{})
	clientID := types.NewUserID()

	conv, err := uc.Conversation.Start(ctx, clientID)
	gt.NoError(t, err).Required()
	gt.Value(t, conv.ClientID).Equal(clientID)
	gt.Value(t, conv.Phase).Equal(types.PhaseAIInterview)

	msgs, err := repo.Message().ListByConversation(ctx, conv.ID, false)
	gt.NoError(t, err)
	gt.A(t, msgs).Length(1)
	gt.Value(t, msgs[0].Sender).Equal(types.SenderAI)
	gt.S(t, msgs[0].Content).Contains("Welcome")
}

func TestSendMessageCreatesCaseOnMinimumProfile(t *testing.T) {
	ctx := context.Background()

	matter := types.MatterCivil
	assistant := &scriptedAssistant{
		replies: []*model.AssistantReply{
			{
				Text:         "Could you tell me which district?",
				SessionToken: "s1",
				Fragment: &model.ProfileFragment{
					MatterType: &matter,
				},
			},
			{
				Text:         "Thank you, noted.",
				SessionToken: "s2",
				Fragment: &model.ProfileFragment{
					State:    strPtr("Delhi"),
					District: strPtr("South Delhi"),
				},
			},
		},
	}
	uc, repo := newUseCases(t, assistant)
	clientID := types.NewUserID()

	conv, err := uc.Conversation.Start(ctx, clientID)
	gt.NoError(t, err).Required()

	// Matter type alone is below the creation threshold
	res, err := uc.Conversation.SendMessage(ctx, clientID, conv.ID, "I have a civil dispute")
	gt.NoError(t, err).Required()
	gt.B(t, res.ProfileUpdated).True()
	gt.Value(t, res.CaseID).Equal(types.CaseID(""))

	// State arrives; fragments so far do not accumulate without a case,
	// but this fragment alone still lacks a matter type
	res, err = uc.Conversation.SendMessage(ctx, clientID, conv.ID, "In Delhi, South Delhi district")
	gt.NoError(t, err).Required()
	gt.Value(t, res.CaseID).Equal(types.CaseID(""))

	c, err := repo.Case().GetByConversation(ctx, conv.ID)
	gt.NoError(t, err)
	gt.B(t, c == nil).True()
}

func TestSendMessageCreatesCaseWhenFragmentComplete(t *testing.T) {
	ctx := context.Background()

	matter := types.MatterProperty
	assistant := &scriptedAssistant{
		replies: []*model.AssistantReply{
			{
				Text:         "I have enough to recommend advocates.",
				SessionToken: "s1",
				Fragment: &model.ProfileFragment{
					MatterType: &matter,
					State:      strPtr("Maharashtra"),
					District:   strPtr("Pune"),
				},
			},
			{
				Text:         "Updated the urgency.",
				SessionToken: "s2",
				Fragment: &model.ProfileFragment{
					Urgency: urgencyPtr(types.UrgencyUrgent),
				},
			},
		},
	}
	uc, repo := newUseCases(t, assistant)
	clientID := types.NewUserID()

	conv, err := uc.Conversation.Start(ctx, clientID)
	gt.NoError(t, err).Required()

	res, err := uc.Conversation.SendMessage(ctx, clientID, conv.ID, "Property dispute in Pune")
	gt.NoError(t, err).Required()
	gt.B(t, res.ProfileUpdated).True()
	gt.B(t, res.RecommendationsAvailable).True()
	gt.B(t, res.CaseID != "").True()

	c, err := repo.Case().Get(ctx, res.CaseID)
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.CaseStatusAIConversation)
	gt.Value(t, c.Profile.MatterType).Equal(types.MatterProperty)
	gt.Value(t, c.Profile.State).Equal("Maharashtra")

	// Second fragment merges into the same case without clearing fields
	res2, err := uc.Conversation.SendMessage(ctx, clientID, conv.ID, "It is urgent")
	gt.NoError(t, err).Required()
	gt.Value(t, res2.CaseID).Equal(res.CaseID)

	c, err = repo.Case().Get(ctx, res.CaseID)
	gt.NoError(t, err).Required()
	gt.Value(t, c.Profile.Urgency).Equal(types.UrgencyUrgent)
	gt.Value(t, c.Profile.State).Equal("Maharashtra")
	gt.Value(t, c.Profile.District).Equal("Pune")

	// Conversation log holds greeting + 2 exchanges
	msgs, err := repo.Message().ListByConversation(ctx, conv.ID, false)
	gt.NoError(t, err)
	gt.A(t, msgs).Length(5)
}

func TestSendMessageRejectedOutsideAIPhase(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCases(t, &scriptedAssistant{})
	clientID := types.NewUserID()

	conv, err := uc.Conversation.Start(ctx, clientID)
	gt.NoError(t, err).Required()

	conv.Phase = types.PhaseAdvocateActive
	gt.NoError(t, repo.Conversation().Update(ctx, conv))

	_, err = uc.Conversation.SendMessage(ctx, clientID, conv.ID, "hello?")
	gt.B(t, errors.Is(err, usecase.ErrConversationWithAdvocate)).True()
}

func TestConversationOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t, &scriptedAssistant{})

	conv, err := uc.Conversation.Start(ctx, types.NewUserID())
	gt.NoError(t, err).Required()

	stranger := types.NewUserID()
	_, err = uc.Conversation.Get(ctx, stranger, conv.ID)
	gt.B(t, errors.Is(err, usecase.ErrConversationNotFound)).True()

	_, err = uc.Conversation.Messages(ctx, stranger, conv.ID)
	gt.B(t, errors.Is(err, usecase.ErrConversationNotFound)).True()
}

func TestPostAdvocateMessage(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCases(t, nil)
	clientID := types.NewUserID()
	advocateID := types.NewUserID()

	conv, c := seedCase(t, repo, clientID)

	adv := testAdvocate(advocateID, "Adv. Mehta")
	gt.NoError(t, repo.Advocate().Put(ctx, adv)).Required()

	c.AdvocateID = advocateID
	c.Status = types.CaseStatusAdvocateAssigned
	gt.NoError(t, repo.Case().Update(ctx, c)).Required()

	msg, err := uc.Conversation.PostAdvocateMessage(ctx, advocateID, c.ID, "Please share the sale deed.")
	gt.NoError(t, err).Required()
	gt.Value(t, msg.Sender).Equal(types.SenderAdvocate)
	gt.Value(t, msg.ConversationID).Equal(conv.ID)

	// Client gets a durable notification with the message preview
	waitFor(t, func() bool {
		n, err := repo.Notification().CountUnread(ctx, clientID)
		return err == nil && n == 1
	})
	items, err := repo.Notification().ListByUser(ctx, clientID, true)
	gt.NoError(t, err)
	gt.A(t, items).Length(1)
	gt.Value(t, items[0].Type).Equal(types.NotifyNewMessage)
	gt.S(t, items[0].Title).Contains("Adv. Mehta")

	// A stranger cannot post into the case
	_, err = uc.Conversation.PostAdvocateMessage(ctx, types.NewUserID(), c.ID, "hello")
	gt.B(t, errors.Is(err, usecase.ErrCaseNotFound)).True()
}

func urgencyPtr(u types.Urgency) *types.Urgency { return &u }
