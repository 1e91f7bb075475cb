package types

import "fmt"

// ConversationPhase represents who owns the conversational turn. The three
// AI phases are interchangeable sub-phases; once an advocate takes over the
// conversation never returns to an AI phase.
type ConversationPhase string

const (
	PhaseAIInterview    ConversationPhase = "ai_interview"
	PhaseAICounselling  ConversationPhase = "ai_counselling"
	PhaseAIDrafting     ConversationPhase = "ai_drafting"
	PhaseAdvocateReview ConversationPhase = "advocate_review"
	PhaseAdvocateActive ConversationPhase = "advocate_active"
)

// AllConversationPhases returns all valid conversation phases
func AllConversationPhases() []ConversationPhase {
	return []ConversationPhase{
		PhaseAIInterview,
		PhaseAICounselling,
		PhaseAIDrafting,
		PhaseAdvocateReview,
		PhaseAdvocateActive,
	}
}

// IsValid checks if the conversation phase is valid
func (p ConversationPhase) IsValid() bool {
	switch p {
	case PhaseAIInterview, PhaseAICounselling, PhaseAIDrafting,
		PhaseAdvocateReview, PhaseAdvocateActive:
		return true
	default:
		return false
	}
}

// IsAIPhase reports whether the AI assistant owns the conversational turn.
func (p ConversationPhase) IsAIPhase() bool {
	switch p {
	case PhaseAIInterview, PhaseAICounselling, PhaseAIDrafting:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from p to next is legal. AI phases
// may switch freely among themselves and forward to the advocate phases;
// advocate phases never go back.
func (p ConversationPhase) CanTransitionTo(next ConversationPhase) bool {
	if !next.IsValid() {
		return false
	}
	switch {
	case p.IsAIPhase():
		return next.IsAIPhase() || next == PhaseAdvocateReview || next == PhaseAdvocateActive
	case p == PhaseAdvocateReview:
		return next == PhaseAdvocateActive
	default:
		return false
	}
}

// String returns the string representation of the conversation phase
func (p ConversationPhase) String() string {
	return string(p)
}

// ParseConversationPhase parses a string into a ConversationPhase
func ParseConversationPhase(s string) (ConversationPhase, error) {
	p := ConversationPhase(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid conversation phase: %s", s)
	}
	return p, nil
}
