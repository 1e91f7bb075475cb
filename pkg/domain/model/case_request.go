package model

import (
	"time"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// CaseRequest is an offer of a case to a specific advocate. The match score
// and reasons are frozen at creation time and never recomputed.
type CaseRequest struct {
	ID         types.RequestID
	CaseID     types.CaseID
	ClientID   types.UserID
	AdvocateID types.UserID
	Status     types.RequestStatus

	MatchScore   float64
	MatchReasons []string

	RejectReason string

	CreatedAt   time.Time
	RespondedAt *time.Time
}
