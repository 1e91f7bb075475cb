package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// DefaultMaxCaseCapacity is assumed when an advocate has not set a capacity.
const DefaultMaxCaseCapacity = 20

// Advocate represents an entry in the advocate directory. Read-mostly:
// mutated only by profile edits and the case-load increment on acceptance.
type Advocate struct {
	ID               types.UserID
	Name             string
	EnrollmentNumber string

	// Jurisdictions. An empty States list means no jurisdiction restriction.
	States    []string
	Districts []string
	HomeCourt string

	PrimarySpecializations []types.MatterType
	SubSpecializations     []string

	ExperienceYears int
	// LandmarkCases is free text, comma separated.
	LandmarkCases string
	SuccessRate   float64

	CurrentCaseLoad int
	MaxCaseCapacity int

	FeeTier         types.FeeTier
	ConsultationFee *float64

	Languages     []string
	OfficeAddress string

	Rating      float64
	ReviewCount int

	IsVerified  bool
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants an advocate profile must hold before it is
// stored.
func (a *Advocate) Validate() error {
	if a.ID == "" {
		return goerr.New("advocate ID is required")
	}
	if a.Name == "" {
		return goerr.New("advocate name is required", goerr.V("id", a.ID))
	}
	for _, s := range a.PrimarySpecializations {
		if !s.IsValid() {
			return goerr.New("invalid specialization", goerr.V("id", a.ID), goerr.V("specialization", s))
		}
	}
	if a.FeeTier != "" && !a.FeeTier.IsValid() {
		return goerr.New("invalid fee tier", goerr.V("id", a.ID), goerr.V("fee_tier", a.FeeTier))
	}
	if a.ExperienceYears < 0 {
		return goerr.New("experience years must be non-negative", goerr.V("id", a.ID))
	}
	if a.CurrentCaseLoad < 0 || a.MaxCaseCapacity < 0 {
		return goerr.New("case load must be non-negative", goerr.V("id", a.ID))
	}
	if a.Rating < 0 || a.Rating > 5 {
		return goerr.New("rating must be between 0 and 5", goerr.V("id", a.ID), goerr.V("rating", a.Rating))
	}
	return nil
}

// PracticesIn reports whether the advocate practices in the given state.
// An advocate with no listed states practices everywhere.
func (a *Advocate) PracticesIn(state string) bool {
	if len(a.States) == 0 {
		return true
	}
	for _, s := range a.States {
		if s == state {
			return true
		}
	}
	return false
}

// Specializes reports whether the matter type is among the advocate's
// primary specializations.
func (a *Advocate) Specializes(matter types.MatterType) bool {
	for _, s := range a.PrimarySpecializations {
		if s == matter {
			return true
		}
	}
	return false
}

// LandmarkCaseCount counts the comma separated entries in LandmarkCases.
func (a *Advocate) LandmarkCaseCount() int {
	if strings.TrimSpace(a.LandmarkCases) == "" {
		return 0
	}
	count := 0
	for _, part := range strings.Split(a.LandmarkCases, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// LoadRatio returns current load over capacity, assuming
// DefaultMaxCaseCapacity when no capacity is set.
func (a *Advocate) LoadRatio() float64 {
	capacity := a.MaxCaseCapacity
	if capacity == 0 {
		capacity = DefaultMaxCaseCapacity
	}
	return float64(a.CurrentCaseLoad) / float64(capacity)
}
