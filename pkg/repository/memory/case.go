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

type caseRepository struct {
	mu    sync.RWMutex
	cases map[types.CaseID]*model.Case
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases: make(map[types.CaseID]*model.Case),
	}
}

// copyCase creates a deep copy of a case
func copyCase(c *model.Case) *model.Case {
	copied := *c
	copied.RejectedAdvocateIDs = append([]types.UserID{}, c.RejectedAdvocateIDs...)
	copied.Profile.PreferredLanguages = append([]string{}, c.Profile.PreferredLanguages...)
	copied.Profile.ExpertiseTags = append([]string{}, c.Profile.ExpertiseTags...)
	if c.Profile.AmountInDispute != nil {
		amount := *c.Profile.AmountInDispute
		copied.Profile.AmountInDispute = &amount
	}
	return &copied
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCase(c)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.cases[created.ID] = created
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) GetByConversation(ctx context.Context, conversationID types.ConversationID) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cases {
		if c.ConversationID == conversationID {
			return copyCase(c), nil
		}
	}
	return nil, nil
}

func (r *caseRepository) ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Case{}
	for _, c := range r.cases {
		if c.ClientID == clientID {
			result = append(result, copyCase(c))
		}
	}
	sortCasesNewestFirst(result)
	return result, nil
}

func (r *caseRepository) ListByAdvocate(ctx context.Context, advocateID types.UserID) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Case{}
	for _, c := range r.cases {
		if c.AdvocateID == advocateID {
			result = append(result, copyCase(c))
		}
	}
	sortCasesNewestFirst(result)
	return result, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	updated := copyCase(c)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.cases[c.ID] = updated
	return nil
}

func sortCasesNewestFirst(cases []*model.Case) {
	sort.Slice(cases, func(i, j int) bool {
		if cases[i].CreatedAt.Equal(cases[j].CreatedAt) {
			return cases[i].ID < cases[j].ID
		}
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})
}
