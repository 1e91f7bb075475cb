package model

import (
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// CaseProfile is the structured description of a legal matter used as
// matching input. Fields are optional by zero value; the profile is filled
// in incrementally as facts are extracted from the conversation.
type CaseProfile struct {
	MatterType            types.MatterType
	SubCategory           string
	State                 string
	District              string
	CourtLevel            types.CourtLevel
	Complexity            types.Complexity
	Urgency               types.Urgency
	AmountInDispute       *float64
	PreferredLanguages    []string
	BudgetTier            types.FeeTier
	RequiresSeniorCounsel bool
	ExpertiseTags         []string
	Summary               string
}

// HasMinimum reports whether the profile carries enough facts to open a
// case: a valid matter type and a filing state.
func (p CaseProfile) HasMinimum() bool {
	return p.MatterType.IsValid() && p.State != ""
}

// ProfileFragment is a partial update to a CaseProfile. Nil fields are
// absent, not clearing; slices replace only when non-nil.
type ProfileFragment struct {
	MatterType            *types.MatterType
	SubCategory           *string
	State                 *string
	District              *string
	CourtLevel            *types.CourtLevel
	Complexity            *types.Complexity
	Urgency               *types.Urgency
	AmountInDispute       *float64
	PreferredLanguages    []string
	BudgetTier            *types.FeeTier
	RequiresSeniorCounsel *bool
	ExpertiseTags         []string
	Summary               *string
}

// IsEmpty reports whether the fragment carries no fields at all.
func (f ProfileFragment) IsEmpty() bool {
	return f.MatterType == nil &&
		f.SubCategory == nil &&
		f.State == nil &&
		f.District == nil &&
		f.CourtLevel == nil &&
		f.Complexity == nil &&
		f.Urgency == nil &&
		f.AmountInDispute == nil &&
		f.PreferredLanguages == nil &&
		f.BudgetTier == nil &&
		f.RequiresSeniorCounsel == nil &&
		f.ExpertiseTags == nil &&
		f.Summary == nil
}

// ApplyTo merges the fragment into a profile. Present fields overwrite,
// absent fields leave the profile untouched.
func (f ProfileFragment) ApplyTo(p *CaseProfile) {
	if f.MatterType != nil {
		p.MatterType = *f.MatterType
	}
	if f.SubCategory != nil {
		p.SubCategory = *f.SubCategory
	}
	if f.State != nil {
		p.State = *f.State
	}
	if f.District != nil {
		p.District = *f.District
	}
	if f.CourtLevel != nil {
		p.CourtLevel = *f.CourtLevel
	}
	if f.Complexity != nil {
		p.Complexity = *f.Complexity
	}
	if f.Urgency != nil {
		p.Urgency = *f.Urgency
	}
	if f.AmountInDispute != nil {
		p.AmountInDispute = f.AmountInDispute
	}
	if f.PreferredLanguages != nil {
		p.PreferredLanguages = append([]string{}, f.PreferredLanguages...)
	}
	if f.BudgetTier != nil {
		p.BudgetTier = *f.BudgetTier
	}
	if f.RequiresSeniorCounsel != nil {
		p.RequiresSeniorCounsel = *f.RequiresSeniorCounsel
	}
	if f.ExpertiseTags != nil {
		p.ExpertiseTags = append([]string{}, f.ExpertiseTags...)
	}
	if f.Summary != nil {
		p.Summary = *f.Summary
	}
}
