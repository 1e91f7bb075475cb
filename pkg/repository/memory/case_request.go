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

type caseRequestRepository struct {
	mu       sync.Mutex
	requests map[types.RequestID]*model.CaseRequest
}

func newCaseRequestRepository() *caseRequestRepository {
	return &caseRequestRepository{
		requests: make(map[types.RequestID]*model.CaseRequest),
	}
}

// copyRequest creates a deep copy of a case request
func copyRequest(req *model.CaseRequest) *model.CaseRequest {
	copied := *req
	copied.MatchReasons = append([]string{}, req.MatchReasons...)
	if req.RespondedAt != nil {
		at := *req.RespondedAt
		copied.RespondedAt = &at
	}
	return &copied
}

func (r *caseRequestRepository) Create(ctx context.Context, req *model.CaseRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRequest(req)
	created.CreatedAt = now

	r.requests[created.ID] = created
	req.CreatedAt = now
	return nil
}

func (r *caseRequestRepository) Get(ctx context.Context, id types.RequestID) (*model.CaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case request not found", goerr.V("id", id))
	}

	return copyRequest(req), nil
}

func (r *caseRequestRepository) FindPendingByCase(ctx context.Context, caseID types.CaseID) (*model.CaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.CaseID == caseID && req.Status == types.RequestPending {
			return copyRequest(req), nil
		}
	}
	return nil, nil
}

func (r *caseRequestRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*model.CaseRequest{}
	for _, req := range r.requests {
		if req.CaseID == caseID {
			result = append(result, copyRequest(req))
		}
	}
	sortRequestsNewestFirst(result)
	return result, nil
}

func (r *caseRequestRepository) ListByAdvocate(ctx context.Context, advocateID types.UserID, opts ...interfaces.ListRequestOption) ([]*model.CaseRequest, error) {
	cfg := interfaces.BuildListRequestConfig(opts...)

	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*model.CaseRequest{}
	for _, req := range r.requests {
		if req.AdvocateID != advocateID {
			continue
		}
		if cfg.Status() != nil && req.Status != *cfg.Status() {
			continue
		}
		result = append(result, copyRequest(req))
	}
	sortRequestsNewestFirst(result)
	return result, nil
}

func (r *caseRequestRepository) Transition(ctx context.Context, id types.RequestID, from, to types.RequestStatus, respondedAt time.Time, rejectReason string) (*model.CaseRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case request not found", goerr.V("id", id))
	}

	if req.Status != from {
		return nil, goerr.Wrap(interfaces.ErrConflict, "request status changed",
			goerr.V("id", id), goerr.V("expected", from), goerr.V("actual", req.Status))
	}

	req.Status = to
	at := respondedAt.UTC()
	req.RespondedAt = &at
	req.RejectReason = rejectReason
	return copyRequest(req), nil
}

func sortRequestsNewestFirst(reqs []*model.CaseRequest) {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID < reqs[j].ID
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}
