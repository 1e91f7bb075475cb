package model

import (
	"time"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// Case represents a client's legal matter moving through the lifecycle from
// AI conversation to advocate representation.
type Case struct {
	ID             types.CaseID
	ClientID       types.UserID
	ConversationID types.ConversationID
	Status         types.CaseStatus
	Profile        CaseProfile

	// AdvocateID is set only once a request has been accepted and stays set
	// through the rest of the lifecycle.
	AdvocateID types.UserID

	// SelectedAdvocateID records the client's latest pick. It survives a
	// rejection so the client can see who declined.
	SelectedAdvocateID types.UserID

	// AdvocateResponse mirrors the status of the latest case request.
	AdvocateResponse types.RequestStatus

	// RejectionReason carries the explanation from the most recent
	// rejection. Cleared when the client selects another advocate.
	RejectionReason string

	// RejectedAdvocateIDs lists advocates who declined this case. They are
	// excluded from later recommendations.
	RejectedAdvocateIDs []types.UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRejected reports whether the advocate has already declined this case.
func (c *Case) HasRejected(advocateID types.UserID) bool {
	for _, id := range c.RejectedAdvocateIDs {
		if id == advocateID {
			return true
		}
	}
	return false
}
