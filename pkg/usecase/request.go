package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/async"
)

type RequestUseCase struct {
	repo     interfaces.Repository
	notifier *notify.Service
	locks    *caseLocker
}

// RequestDetail pairs a case request with the case and the
// advocate-visible slice of the conversation history.
type RequestDetail struct {
	Request *model.CaseRequest
	Case    *model.Case
	History []*model.Message
}

// List retrieves the requests offered to an advocate, optionally filtered
// by status
func (uc *RequestUseCase) List(ctx context.Context, advocateID types.UserID, opts ...interfaces.ListRequestOption) ([]*model.CaseRequest, error) {
	reqs, err := uc.repo.CaseRequest().ListByAdvocate(ctx, advocateID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list case requests",
			goerr.V(AdvocateIDKey, advocateID))
	}
	return reqs, nil
}

// Get retrieves one request offered to the advocate, together with the
// case and the conversation messages visible to advocates.
func (uc *RequestUseCase) Get(ctx context.Context, advocateID types.UserID, id types.RequestID) (*RequestDetail, error) {
	req, err := uc.getOwned(ctx, advocateID, id)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, req.CaseID)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, req.CaseID)
	}

	var history []*model.Message
	if c.ConversationID != "" {
		history, err = uc.repo.Message().ListByConversation(ctx, c.ConversationID, true)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load conversation history",
				goerr.V(ConversationIDKey, c.ConversationID))
		}
	}

	return &RequestDetail{Request: req, Case: c, History: history}, nil
}

// Accept takes the case for the advocate: the request moves to accepted,
// the case is assigned, the conversation hands over to the advocate, and
// the advocate's case load grows by one. The conditional request
// transition is the serialization point; a concurrent accept or reject
// loses with ErrRequestAlreadyProcessed.
func (uc *RequestUseCase) Accept(ctx context.Context, advocateID types.UserID, id types.RequestID) (*model.Case, error) {
	req, err := uc.getOwned(ctx, advocateID, id)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(req.CaseID)
	defer unlock()

	now := time.Now().UTC()
	req, err = uc.repo.CaseRequest().Transition(ctx, id, types.RequestPending, types.RequestAccepted, now, "")
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			return nil, goerr.Wrap(ErrRequestAlreadyProcessed, "cannot accept request",
				goerr.V(RequestIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to accept request",
			goerr.V(RequestIDKey, id))
	}

	c, err := uc.repo.Case().Get(ctx, req.CaseID)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, req.CaseID)
	}

	if err := transitionCase(c, types.CaseStatusAdvocateAssigned); err != nil {
		return nil, err
	}
	c.AdvocateID = advocateID
	c.AdvocateResponse = types.RequestAccepted
	c.UpdatedAt = now
	if err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to assign case",
			goerr.V(CaseIDKey, c.ID))
	}

	adv, err := uc.repo.Advocate().Get(ctx, advocateID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAdvocateNotFound, AdvocateIDKey, advocateID)
	}

	if c.ConversationID != "" {
		if err := uc.handOverConversation(ctx, c, adv, now); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Advocate().IncrementCaseLoad(ctx, advocateID, 1); err != nil {
		return nil, goerr.Wrap(err, "failed to increment advocate case load",
			goerr.V(AdvocateIDKey, advocateID))
	}

	if uc.notifier != nil {
		notifier := uc.notifier
		clientID := c.ClientID
		caseID := c.ID
		name := adv.Name
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.AdvocateAccepted(ctx, clientID, caseID, id, name)
		})
	}

	return c, nil
}

// Reject declines the case request. The case returns to the client for
// re-selection and the advocate lands on the case's exclusion list.
func (uc *RequestUseCase) Reject(ctx context.Context, advocateID types.UserID, id types.RequestID, reason string) (*model.Case, error) {
	req, err := uc.getOwned(ctx, advocateID, id)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(req.CaseID)
	defer unlock()

	now := time.Now().UTC()
	req, err = uc.repo.CaseRequest().Transition(ctx, id, types.RequestPending, types.RequestRejected, now, reason)
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			return nil, goerr.Wrap(ErrRequestAlreadyProcessed, "cannot reject request",
				goerr.V(RequestIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to reject request",
			goerr.V(RequestIDKey, id))
	}

	c, err := uc.repo.Case().Get(ctx, req.CaseID)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, req.CaseID)
	}

	if err := transitionCase(c, types.CaseStatusAdvocateRejected); err != nil {
		return nil, err
	}
	c.AdvocateResponse = types.RequestRejected
	c.RejectionReason = reason
	if !c.HasRejected(advocateID) {
		c.RejectedAdvocateIDs = append(c.RejectedAdvocateIDs, advocateID)
	}
	c.UpdatedAt = now
	if err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to update case after rejection",
			goerr.V(CaseIDKey, c.ID))
	}

	if uc.notifier != nil {
		name := ""
		if adv, err := uc.repo.Advocate().Get(ctx, advocateID); err == nil {
			name = adv.Name
		}

		notifier := uc.notifier
		clientID := c.ClientID
		caseID := c.ID
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.AdvocateRejected(ctx, clientID, caseID, id, name, reason)
		})
	}

	return c, nil
}

// handOverConversation moves the conversation to the advocate and posts
// the takeover system message.
func (uc *RequestUseCase) handOverConversation(ctx context.Context, c *model.Case, adv *model.Advocate, now time.Time) error {
	conv, err := uc.repo.Conversation().Get(ctx, c.ConversationID)
	if err != nil {
		return wrapNotFound(err, ErrConversationNotFound, ConversationIDKey, c.ConversationID)
	}

	if err := transitionConversation(conv, types.PhaseAdvocateActive); err != nil {
		return err
	}
	conv.AdvocateID = adv.ID
	conv.CaseID = c.ID
	conv.UpdatedAt = now
	if err := uc.repo.Conversation().Update(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to hand conversation to advocate",
			goerr.V(ConversationIDKey, conv.ID))
	}

	msg := &model.Message{
		ID:             types.NewMessageID(),
		ConversationID: conv.ID,
		SenderID:       adv.ID,
		Sender:         types.SenderAdvocate,
		Type:           types.MessageSystem,
		Content: fmt.Sprintf("Hello! I'm %s, and I'll be assisting you with your case from now on. "+
			"I've reviewed our AI assistant's conversation with you and am ready to help. "+
			"Please feel free to ask any questions or share additional information.", adv.Name),
		VisibleToAdvocate: true,
		CreatedAt:         now,
	}
	if err := uc.repo.Message().Append(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to post takeover message",
			goerr.V(ConversationIDKey, conv.ID))
	}

	if uc.notifier != nil {
		uc.notifier.BroadcastMessage(ctx, conv.ID, msg)
	}
	return nil
}

func (uc *RequestUseCase) getOwned(ctx context.Context, advocateID types.UserID, id types.RequestID) (*model.CaseRequest, error) {
	req, err := uc.repo.CaseRequest().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrRequestNotFound, RequestIDKey, id)
	}
	if req.AdvocateID != advocateID {
		return nil, goerr.Wrap(ErrRequestNotFound, "request is not addressed to advocate",
			goerr.V(RequestIDKey, id))
	}
	return req, nil
}
