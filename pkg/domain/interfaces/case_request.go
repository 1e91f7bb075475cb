package interfaces

import (
	"context"
	"time"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// CaseRequestRepository defines the interface for case request data access
type CaseRequestRepository interface {
	// Create stores a new case request
	Create(ctx context.Context, req *model.CaseRequest) error

	// Get retrieves a request by ID
	Get(ctx context.Context, id types.RequestID) (*model.CaseRequest, error)

	// FindPendingByCase retrieves the pending request for a case.
	// Returns nil, nil when the case has no pending request.
	FindPendingByCase(ctx context.Context, caseID types.CaseID) (*model.CaseRequest, error)

	// ListByCase retrieves all requests for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseRequest, error)

	// ListByAdvocate retrieves requests offered to an advocate, newest
	// first, optionally filtered by status
	ListByAdvocate(ctx context.Context, advocateID types.UserID, opts ...ListRequestOption) ([]*model.CaseRequest, error)

	// Transition conditionally moves a request from one status to another.
	// It fails with ErrConflict when the stored status differs from `from`,
	// which makes it the serialization point for accept/reject races.
	// respondedAt and rejectReason are recorded on success.
	Transition(ctx context.Context, id types.RequestID, from, to types.RequestStatus, respondedAt time.Time, rejectReason string) (*model.CaseRequest, error)
}

// ListRequestOption is a functional option for filtering requests in
// ListByAdvocate
type ListRequestOption func(*listRequestConfig)

type listRequestConfig struct {
	status *types.RequestStatus
}

// WithRequestStatus filters requests by status
func WithRequestStatus(status types.RequestStatus) ListRequestOption {
	return func(c *listRequestConfig) {
		c.status = &status
	}
}

// BuildListRequestConfig builds a listRequestConfig from options
func BuildListRequestConfig(opts ...ListRequestOption) *listRequestConfig {
	cfg := &listRequestConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Status returns the status filter value, or nil if not set
func (c *listRequestConfig) Status() *types.RequestStatus {
	return c.status
}
