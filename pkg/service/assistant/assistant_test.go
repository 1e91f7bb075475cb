package assistant_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/assistant"
)

func TestBuildTranscript(t *testing.T) {
	history := []*model.Message{
		{Sender: types.SenderAI, Content: "What type of matter is this?"},
		{Sender: types.SenderClient, Content: "A property dispute in Pune"},
	}

	got := assistant.BuildTranscript(history, "My neighbour built on my plot")
	gt.S(t, got).
		Contains("Assistant: What type of matter is this?").
		Contains("Client: A property dispute in Pune").
		Contains("Client: My neighbour built on my plot")
}

func TestExtractedProfile_ToFragment(t *testing.T) {
	t.Run("valid values carry over", func(t *testing.T) {
		senior := true
		e := assistant.ExtractedProfile{
			MatterType:            "property",
			SubCategory:           "boundary dispute",
			State:                 "Maharashtra",
			District:              "Pune",
			CourtLevel:            "district",
			Complexity:            "moderate",
			Urgency:               "normal",
			BudgetTier:            "affordable",
			RequiresSeniorCounsel: &senior,
			ExpertiseTags:         []string{"land records"},
			Summary:               "Encroachment on residential plot.",
		}

		f := e.ToFragment()
		gt.Value(t, *f.MatterType).Equal(types.MatterProperty)
		gt.Value(t, *f.State).Equal("Maharashtra")
		gt.Value(t, *f.CourtLevel).Equal(types.CourtDistrict)
		gt.Value(t, *f.BudgetTier).Equal(types.FeeAffordable)
		gt.B(t, *f.RequiresSeniorCounsel).True()
		gt.A(t, f.ExpertiseTags).Length(1)
	})

	t.Run("invalid enum values are dropped", func(t *testing.T) {
		e := assistant.ExtractedProfile{
			MatterType: "maritime",
			State:      "Kerala",
			CourtLevel: "magistrate",
			Complexity: "trivial",
		}

		f := e.ToFragment()
		gt.B(t, f.MatterType == nil).True()
		gt.B(t, f.CourtLevel == nil).True()
		gt.B(t, f.Complexity == nil).True()
		gt.Value(t, *f.State).Equal("Kerala")
	})

	t.Run("empty extraction yields empty fragment", func(t *testing.T) {
		f := assistant.ExtractedProfile{}.ToFragment()
		gt.B(t, f.IsEmpty()).True()
	})
}

func TestRespondIntegration(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT_ID not set")
	}
	location := os.Getenv("TEST_GEMINI_LOCATION")
	if location == "" {
		location = "us-central1"
	}

	ctx := context.Background()
	llm, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	svc, err := assistant.New(llm)
	gt.NoError(t, err).Required()

	conv := &model.Conversation{
		ID:       types.NewConversationID(),
		ClientID: types.NewUserID(),
		Phase:    types.PhaseAIInterview,
	}

	reply, err := svc.Respond(ctx, conv, nil,
		"I want to file for divorce in Delhi. It is urgent.")
	gt.NoError(t, err).Required()
	gt.B(t, reply.Text != "").True()
	gt.B(t, reply.SessionToken != "").True()
}
