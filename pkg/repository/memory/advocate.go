package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

type advocateRepository struct {
	mu        sync.RWMutex
	advocates map[types.UserID]*model.Advocate
}

func newAdvocateRepository() *advocateRepository {
	return &advocateRepository{
		advocates: make(map[types.UserID]*model.Advocate),
	}
}

// copyAdvocate creates a deep copy of an advocate
func copyAdvocate(a *model.Advocate) *model.Advocate {
	copied := *a
	copied.States = append([]string{}, a.States...)
	copied.Districts = append([]string{}, a.Districts...)
	copied.PrimarySpecializations = append([]types.MatterType{}, a.PrimarySpecializations...)
	copied.SubSpecializations = append([]string{}, a.SubSpecializations...)
	copied.Languages = append([]string{}, a.Languages...)
	if a.ConsultationFee != nil {
		fee := *a.ConsultationFee
		copied.ConsultationFee = &fee
	}
	return &copied
}

func (r *advocateRepository) Put(ctx context.Context, advocate *model.Advocate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyAdvocate(advocate)
	if existing, ok := r.advocates[advocate.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.advocates[advocate.ID] = stored
	return nil
}

func (r *advocateRepository) Get(ctx context.Context, id types.UserID) (*model.Advocate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.advocates[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "advocate not found", goerr.V("id", id))
	}

	return copyAdvocate(a), nil
}

func (r *advocateRepository) List(ctx context.Context) ([]*model.Advocate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Advocate, 0, len(r.advocates))
	for _, a := range r.advocates {
		result = append(result, copyAdvocate(a))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *advocateRepository) IncrementCaseLoad(ctx context.Context, id types.UserID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.advocates[id]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "advocate not found", goerr.V("id", id))
	}

	a.CurrentCaseLoad += delta
	if a.CurrentCaseLoad < 0 {
		a.CurrentCaseLoad = 0
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}
