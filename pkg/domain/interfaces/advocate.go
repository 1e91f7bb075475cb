package interfaces

import (
	"context"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// AdvocateRepository defines the interface for advocate directory access
type AdvocateRepository interface {
	// Put creates or replaces an advocate profile
	Put(ctx context.Context, advocate *model.Advocate) error

	// Get retrieves an advocate by ID
	Get(ctx context.Context, id types.UserID) (*model.Advocate, error)

	// List retrieves all advocate profiles
	List(ctx context.Context) ([]*model.Advocate, error)

	// IncrementCaseLoad atomically adjusts the advocate's current case load
	// by delta. The result is clamped at zero.
	IncrementCaseLoad(ctx context.Context, id types.UserID, delta int) error
}
