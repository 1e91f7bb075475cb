package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
)

// historyWindow caps how much of the conversation is replayed to the model.
const historyWindow = 30

// apologyText is returned when the model call fails. The conversation keeps
// going; only the extraction is lost.
const apologyText = "I apologize, but I encountered an error. Please try again."

// Service drives the AI side of client conversations: replies to messages
// and extracts case profile facts from the exchange.
type Service struct {
	llm gollem.LLMClient
}

var _ interfaces.Assistant = &Service{}

// New creates a new assistant service with the provided LLM client
func New(llm gollem.LLMClient) (*Service, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &Service{llm: llm}, nil
}

// Greeting returns the opening AI message for a new conversation
func (s *Service) Greeting(ctx context.Context) string {
	return greetingText
}

// Respond generates the reply to a client message and extracts any case
// facts mentioned so far. A model failure degrades to an apology reply with
// no extraction; it never returns an error for that case.
func (s *Service) Respond(ctx context.Context, conv *model.Conversation, history []*model.Message, message string) (*model.AssistantReply, error) {
	logger := logging.From(ctx)

	token := conv.SessionToken
	if token == "" {
		token = uuid.New().String()
	}

	transcript := buildTranscript(history, message)

	replyText, err := s.generateReply(ctx, transcript)
	if err != nil {
		logger.Warn("assistant reply generation failed", "error", err,
			"conversation_id", conv.ID)
		return &model.AssistantReply{
			Text:         apologyText,
			SessionToken: token,
		}, nil
	}

	fragment, err := s.extractProfile(ctx, transcript)
	if err != nil {
		logger.Warn("case profile extraction failed", "error", err,
			"conversation_id", conv.ID)
		fragment = nil
	}

	return &model.AssistantReply{
		Text:         replyText,
		SessionToken: token,
		Fragment:     fragment,
	}, nil
}

func (s *Service) generateReply(ctx context.Context, transcript string) (string, error) {
	session, err := s.llm.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(transcript))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate reply")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("empty reply from LLM")
	}
	return resp.Texts[0], nil
}

func (s *Service) extractProfile(ctx context.Context, transcript string) (*model.ProfileFragment, error) {
	session, err := s.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(extractionSchema()),
		gollem.WithSessionSystemPrompt(extractionPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create extraction session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(transcript))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract case profile")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty extraction response")
	}

	var extracted extractedProfile
	if err := json.Unmarshal([]byte(resp.Texts[0]), &extracted); err != nil {
		return nil, goerr.Wrap(err, "failed to parse extraction response",
			goerr.V("response", resp.Texts[0]))
	}

	fragment := extracted.toFragment()
	if fragment.IsEmpty() {
		return nil, nil
	}
	return &fragment, nil
}

// buildTranscript renders the recent history plus the new message as one
// prompt.
func buildTranscript(history []*model.Message, message string) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var sb strings.Builder
	for _, msg := range history {
		var label string
		switch msg.Sender {
		case types.SenderClient:
			label = "Client"
		case types.SenderAdvocate:
			label = "Advocate"
		default:
			label = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, msg.Content)
	}
	fmt.Fprintf(&sb, "Client: %s\n", message)
	return sb.String()
}

// extractedProfile is the raw JSON shape the model returns. Fields come
// back as free strings and are validated into the fragment.
type extractedProfile struct {
	MatterType            string   `json:"matter_type"`
	SubCategory           string   `json:"sub_category"`
	State                 string   `json:"state"`
	District              string   `json:"district"`
	CourtLevel            string   `json:"court_level"`
	Complexity            string   `json:"complexity"`
	Urgency               string   `json:"urgency"`
	PreferredLanguages    []string `json:"preferred_languages"`
	BudgetTier            string   `json:"budget_category"`
	RequiresSeniorCounsel *bool    `json:"requires_senior_counsel"`
	ExpertiseTags         []string `json:"specific_expertise_needed"`
	Summary               string   `json:"case_summary"`
}

// toFragment validates the raw extraction. Invalid enum values are dropped
// rather than propagated; a bad field never blocks the good ones.
func (e extractedProfile) toFragment() model.ProfileFragment {
	var f model.ProfileFragment

	if mt, err := types.ParseMatterType(e.MatterType); err == nil {
		f.MatterType = &mt
	}
	if e.SubCategory != "" {
		f.SubCategory = &e.SubCategory
	}
	if e.State != "" {
		f.State = &e.State
	}
	if e.District != "" {
		f.District = &e.District
	}
	if cl, err := types.ParseCourtLevel(e.CourtLevel); err == nil {
		f.CourtLevel = &cl
	}
	if c, err := types.ParseComplexity(e.Complexity); err == nil {
		f.Complexity = &c
	}
	if u, err := types.ParseUrgency(e.Urgency); err == nil {
		f.Urgency = &u
	}
	if len(e.PreferredLanguages) > 0 {
		f.PreferredLanguages = e.PreferredLanguages
	}
	if bt, err := types.ParseFeeTier(e.BudgetTier); err == nil {
		f.BudgetTier = &bt
	}
	if e.RequiresSeniorCounsel != nil {
		f.RequiresSeniorCounsel = e.RequiresSeniorCounsel
	}
	if len(e.ExpertiseTags) > 0 {
		f.ExpertiseTags = e.ExpertiseTags
	}
	if e.Summary != "" {
		f.Summary = &e.Summary
	}
	return f
}
