package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/service/matching"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/async"
)

type CaseUseCase struct {
	repo     interfaces.Repository
	engine   *matching.Engine
	notifier *notify.Service
	locks    *caseLocker
}

// Ingest folds an extracted profile fragment into the conversation's case.
// A case is created once the merged profile has at least a matter type and
// a state; until then fragments accumulate nothing and nil is returned.
// Re-applying the same fragment is a no-op.
func (uc *CaseUseCase) Ingest(ctx context.Context, conv *model.Conversation, frag model.ProfileFragment) (*model.Case, error) {
	if frag.IsEmpty() {
		c, err := uc.repo.Case().GetByConversation(ctx, conv.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to look up case for conversation",
				goerr.V(ConversationIDKey, conv.ID))
		}
		return c, nil
	}

	c, err := uc.repo.Case().GetByConversation(ctx, conv.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up case for conversation",
			goerr.V(ConversationIDKey, conv.ID))
	}

	now := time.Now().UTC()

	if c == nil {
		var profile model.CaseProfile
		frag.ApplyTo(&profile)
		if !profile.HasMinimum() {
			return nil, nil
		}

		c = &model.Case{
			ID:             types.NewCaseID(),
			ClientID:       conv.ClientID,
			ConversationID: conv.ID,
			Status:         types.CaseStatusAIConversation,
			Profile:        profile,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.repo.Case().Create(ctx, c); err != nil {
			return nil, goerr.Wrap(err, "failed to create case",
				goerr.V(ConversationIDKey, conv.ID))
		}
		return c, nil
	}

	frag.ApplyTo(&c.Profile)
	c.UpdatedAt = now
	if err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to update case profile",
			goerr.V(CaseIDKey, c.ID))
	}
	return c, nil
}

// Get retrieves one of the client's cases
func (uc *CaseUseCase) Get(ctx context.Context, clientID types.UserID, id types.CaseID) (*model.Case, error) {
	return uc.getOwned(ctx, clientID, id)
}

// ListByClient retrieves all cases of a client, newest first
func (uc *CaseUseCase) ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Case, error) {
	cases, err := uc.repo.Case().ListByClient(ctx, clientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

// ListByAdvocate retrieves the cases assigned to an advocate
func (uc *CaseUseCase) ListByAdvocate(ctx context.Context, advocateID types.UserID) ([]*model.Case, error) {
	cases, err := uc.repo.Case().ListByAdvocate(ctx, advocateID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assigned cases")
	}
	return cases, nil
}

// GetForAdvocate retrieves a case assigned to the advocate
func (uc *CaseUseCase) GetForAdvocate(ctx context.Context, advocateID types.UserID, id types.CaseID) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, id)
	}
	if c.AdvocateID != advocateID {
		return nil, goerr.Wrap(ErrCaseNotFound, "case is not assigned to advocate",
			goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// Recommendations scores the advocate directory against the case profile.
// Advocates who previously rejected this case are excluded before ranking.
func (uc *CaseUseCase) Recommendations(ctx context.Context, clientID types.UserID, id types.CaseID, limit int) ([]*model.Candidate, error) {
	c, err := uc.getOwned(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	advocates, err := uc.repo.Advocate().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load advocate directory")
	}

	eligible := make([]*model.Advocate, 0, len(advocates))
	for _, adv := range advocates {
		if c.HasRejected(adv.ID) {
			continue
		}
		eligible = append(eligible, adv)
	}

	return uc.engine.Recommend(eligible, c.Profile, limit), nil
}

// Preview scores an ad-hoc profile against the directory without touching
// any case
func (uc *CaseUseCase) Preview(ctx context.Context, profile model.CaseProfile, limit int) ([]*model.Candidate, error) {
	advocates, err := uc.repo.Advocate().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load advocate directory")
	}
	return uc.engine.Recommend(advocates, profile, limit), nil
}

// SelectAdvocate sends a case request to the chosen advocate. The match
// score and reasons are computed now and frozen on the request. Fails when
// the case is already assigned or already has a pending request.
func (uc *CaseUseCase) SelectAdvocate(ctx context.Context, clientID types.UserID, id types.CaseID, advocateID types.UserID) (*model.CaseRequest, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	c, err := uc.getOwned(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if c.Status.IsAssigned() || c.AdvocateID != "" {
		return nil, goerr.Wrap(ErrCaseAlreadyAssigned, "cannot select advocate",
			goerr.V(CaseIDKey, id))
	}

	pending, err := uc.repo.CaseRequest().FindPendingByCase(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check pending requests",
			goerr.V(CaseIDKey, id))
	}
	if pending != nil {
		return nil, goerr.Wrap(ErrPendingRequestExists, "cannot select advocate",
			goerr.V(CaseIDKey, id),
			goerr.V(RequestIDKey, pending.ID))
	}

	adv, err := uc.repo.Advocate().Get(ctx, advocateID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAdvocateNotFound, AdvocateIDKey, advocateID)
	}

	score, reasons := uc.engine.Score(adv, c.Profile)
	if score <= 0 {
		// Client picked someone outside the ranked recommendations
		score, reasons = model.FallbackMatch()
	}

	now := time.Now().UTC()
	req := &model.CaseRequest{
		ID:           types.NewRequestID(),
		CaseID:       id,
		ClientID:     clientID,
		AdvocateID:   advocateID,
		Status:       types.RequestPending,
		MatchScore:   score,
		MatchReasons: reasons,
		CreatedAt:    now,
	}
	if err := uc.repo.CaseRequest().Create(ctx, req); err != nil {
		return nil, goerr.Wrap(err, "failed to create case request",
			goerr.V(CaseIDKey, id))
	}

	if err := transitionCase(c, types.CaseStatusPendingAdvocate); err != nil {
		return nil, err
	}
	c.SelectedAdvocateID = advocateID
	c.AdvocateResponse = types.RequestPending
	c.RejectionReason = ""
	c.UpdatedAt = now
	if err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to update case after selection",
			goerr.V(CaseIDKey, id))
	}

	if uc.notifier != nil {
		notifier := uc.notifier
		matter := c.Profile.MatterType
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.CaseRequested(ctx, advocateID, id, req.ID, matter, req.MatchScore)
		})
	}

	return req, nil
}

func (uc *CaseUseCase) getOwned(ctx context.Context, clientID types.UserID, id types.CaseID) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrCaseNotFound, CaseIDKey, id)
	}
	if c.ClientID != clientID {
		return nil, goerr.Wrap(ErrCaseNotFound, "case does not belong to client",
			goerr.V(CaseIDKey, id))
	}
	return c, nil
}
