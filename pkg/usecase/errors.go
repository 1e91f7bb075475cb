package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrCaseNotFound         = errors.New("case not found")
	ErrRequestNotFound      = errors.New("case request not found")
	ErrAdvocateNotFound     = errors.New("advocate not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Conflict errors
	ErrPendingRequestExists    = errors.New("there is already a pending request for this case")
	ErrRequestAlreadyProcessed = errors.New("this request has already been processed")
	ErrCaseAlreadyAssigned     = errors.New("an advocate has already been assigned to this case")
	ErrIllegalTransition       = errors.New("the case is not in a state that allows this operation")

	// Validation errors
	ErrInvalidInput             = errors.New("invalid input")
	ErrConversationWithAdvocate = errors.New("this conversation is now with an advocate, AI responses are disabled")
)

// Context keys for error values
const (
	CaseIDKey         = "case_id"
	RequestIDKey      = "request_id"
	ConversationIDKey = "conversation_id"
	AdvocateIDKey     = "advocate_id"
)

// wrapNotFound maps a repository miss to the layer's sentinel, preserving
// anything else as an internal error.
func wrapNotFound(err error, sentinel error, key string, id any) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(sentinel, "not found", goerr.V(key, id))
	}
	return goerr.Wrap(err, "repository access failed", goerr.V(key, id))
}

// transitionCase applies a case lifecycle edge after validating it.
// Re-asserting the current status is permitted so retried writes stay
// idempotent.
func transitionCase(c *model.Case, next types.CaseStatus) error {
	cur := c.Status.Normalize()
	if cur != next && !cur.CanTransitionTo(next) {
		return goerr.Wrap(ErrIllegalTransition, "illegal case status transition",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("from", cur),
			goerr.V("to", next))
	}
	c.Status = next
	return nil
}

// transitionConversation applies a conversation phase edge after
// validating it, with the same idempotency rule as transitionCase.
func transitionConversation(conv *model.Conversation, next types.ConversationPhase) error {
	if conv.Phase != next && !conv.Phase.CanTransitionTo(next) {
		return goerr.Wrap(ErrIllegalTransition, "illegal conversation phase transition",
			goerr.V(ConversationIDKey, conv.ID),
			goerr.V("from", conv.Phase),
			goerr.V("to", next))
	}
	conv.Phase = next
	return nil
}
