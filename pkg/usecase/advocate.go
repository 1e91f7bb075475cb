package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

type AdvocateUseCase struct {
	repo interfaces.Repository
}

// GetProfile retrieves an advocate's directory profile
func (uc *AdvocateUseCase) GetProfile(ctx context.Context, advocateID types.UserID) (*model.Advocate, error) {
	adv, err := uc.repo.Advocate().Get(ctx, advocateID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAdvocateNotFound, AdvocateIDKey, advocateID)
	}
	return adv, nil
}

// PutProfile creates or updates an advocate's directory profile. The case
// load counter is never taken from the input: a new profile starts at
// zero and an update keeps the stored value, since the load only moves
// through accept.
func (uc *AdvocateUseCase) PutProfile(ctx context.Context, adv *model.Advocate) (*model.Advocate, error) {
	if adv == nil {
		return nil, goerr.Wrap(ErrInvalidInput, "advocate profile is required")
	}
	if err := adv.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	existing, err := uc.repo.Advocate().Get(ctx, adv.ID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to look up advocate profile",
			goerr.V(AdvocateIDKey, adv.ID))
	}

	if existing != nil {
		adv.CurrentCaseLoad = existing.CurrentCaseLoad
		adv.CreatedAt = existing.CreatedAt
	} else {
		adv.CurrentCaseLoad = 0
		adv.CreatedAt = time.Now().UTC()
	}
	adv.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Advocate().Put(ctx, adv); err != nil {
		return nil, goerr.Wrap(err, "failed to store advocate profile",
			goerr.V(AdvocateIDKey, adv.ID))
	}
	return adv, nil
}

// SetAvailability toggles whether the advocate accepts new cases
func (uc *AdvocateUseCase) SetAvailability(ctx context.Context, advocateID types.UserID, available bool) (*model.Advocate, error) {
	adv, err := uc.repo.Advocate().Get(ctx, advocateID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAdvocateNotFound, AdvocateIDKey, advocateID)
	}

	adv.IsAvailable = available
	adv.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Advocate().Put(ctx, adv); err != nil {
		return nil, goerr.Wrap(err, "failed to update availability",
			goerr.V(AdvocateIDKey, advocateID))
	}
	return adv, nil
}
