package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/repository/memory"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
)

// scriptedAssistant replays canned replies in order, then falls back to a
// plain acknowledgement.
type scriptedAssistant struct {
	mu      sync.Mutex
	replies []*model.AssistantReply
}

func (a *scriptedAssistant) Respond(ctx context.Context, conv *model.Conversation, history []*model.Message, message string) (*model.AssistantReply, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.replies) == 0 {
		return &model.AssistantReply{Text: "Understood.", SessionToken: "session-test"}, nil
	}
	r := a.replies[0]
	a.replies = a.replies[1:]
	return r, nil
}

func (a *scriptedAssistant) Greeting(ctx context.Context) string {
	return "Welcome! How can I help you today?"
}

var _ interfaces.Assistant = &scriptedAssistant{}

func newUseCases(t *testing.T, assistant *scriptedAssistant) (*usecase.UseCases, interfaces.Repository) {
	t.Helper()
	repo := memory.New()

	opts := []usecase.Option{
		usecase.WithNotifier(notify.New(repo.Notification(), nil)),
	}
	if assistant != nil {
		opts = append(opts, usecase.WithAssistant(assistant))
	}
	return usecase.New(repo, opts...), repo
}

func testAdvocate(id types.UserID, name string) *model.Advocate {
	return &model.Advocate{
		ID:                     id,
		Name:                   name,
		States:                 []string{"Delhi"},
		Districts:              []string{"South Delhi"},
		PrimarySpecializations: []types.MatterType{types.MatterCivil},
		ExperienceYears:        19,
		MaxCaseCapacity:        40,
		FeeTier:                types.FeePremium,
		Rating:                 4.8,
		ReviewCount:            120,
		IsAvailable:            true,
	}
}

func testProfile() model.CaseProfile {
	return model.CaseProfile{
		MatterType: types.MatterCivil,
		State:      "Delhi",
		District:   "South Delhi",
		CourtLevel: types.CourtDistrict,
		Complexity: types.ComplexityModerate,
		BudgetTier: types.FeePremium,
	}
}

// seedCase stores a conversation and its case directly, skipping the AI
// exchange.
func seedCase(t *testing.T, repo interfaces.Repository, clientID types.UserID) (*model.Conversation, *model.Case) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	conv := &model.Conversation{
		ID:        types.NewConversationID(),
		ClientID:  clientID,
		Phase:     types.PhaseAIInterview,
		CreatedAt: now,
		UpdatedAt: now,
	}
	gt.NoError(t, repo.Conversation().Create(ctx, conv)).Required()

	c := &model.Case{
		ID:             types.NewCaseID(),
		ClientID:       clientID,
		ConversationID: conv.ID,
		Status:         types.CaseStatusAIConversation,
		Profile:        testProfile(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	gt.NoError(t, repo.Case().Create(ctx, c)).Required()

	conv.CaseID = c.ID
	gt.NoError(t, repo.Conversation().Update(ctx, conv)).Required()
	return conv, c
}

// waitFor polls for an asynchronous side effect
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for async side effect")
}
