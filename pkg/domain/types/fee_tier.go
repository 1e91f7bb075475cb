package types

import "fmt"

// FeeTier represents an advocate's fee category. The same values are used
// for a client's budget tier when describing what they can afford.
type FeeTier string

const (
	FeePremium    FeeTier = "premium"
	FeeStandard   FeeTier = "standard"
	FeeAffordable FeeTier = "affordable"
	FeeProBono    FeeTier = "pro_bono"
)

// AllFeeTiers returns all valid fee tiers
func AllFeeTiers() []FeeTier {
	return []FeeTier{FeePremium, FeeStandard, FeeAffordable, FeeProBono}
}

// IsValid checks if the fee tier is valid
func (f FeeTier) IsValid() bool {
	switch f {
	case FeePremium, FeeStandard, FeeAffordable, FeeProBono:
		return true
	default:
		return false
	}
}

// Normalize returns the fee tier, treating empty as FeeStandard.
func (f FeeTier) Normalize() FeeTier {
	if f == "" {
		return FeeStandard
	}
	return f
}

// String returns the string representation of the fee tier
func (f FeeTier) String() string {
	return string(f)
}

// ParseFeeTier parses a string into a FeeTier
func ParseFeeTier(s string) (FeeTier, error) {
	f := FeeTier(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid fee tier: %s", s)
	}
	return f, nil
}
