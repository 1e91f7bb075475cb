package types

import "fmt"

// Complexity represents the estimated complexity tier of a case
type Complexity string

const (
	ComplexitySimple        Complexity = "simple"
	ComplexityModerate      Complexity = "moderate"
	ComplexityComplex       Complexity = "complex"
	ComplexityHighlyComplex Complexity = "highly_complex"
)

// AllComplexities returns all valid complexity tiers
func AllComplexities() []Complexity {
	return []Complexity{
		ComplexitySimple,
		ComplexityModerate,
		ComplexityComplex,
		ComplexityHighlyComplex,
	}
}

// IsValid checks if the complexity tier is valid
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex, ComplexityHighlyComplex:
		return true
	default:
		return false
	}
}

// Normalize returns the complexity, treating empty as ComplexityModerate.
func (c Complexity) Normalize() Complexity {
	if c == "" {
		return ComplexityModerate
	}
	return c
}

// MinimumYears returns the minimum years of practice expected for the
// complexity tier. Unknown tiers fall back to the moderate requirement.
func (c Complexity) MinimumYears() int {
	switch c {
	case ComplexitySimple:
		return 3
	case ComplexityModerate:
		return 5
	case ComplexityComplex:
		return 10
	case ComplexityHighlyComplex:
		return 15
	default:
		return 5
	}
}

// String returns the string representation of the complexity tier
func (c Complexity) String() string {
	return string(c)
}

// ParseComplexity parses a string into a Complexity
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid complexity: %s", s)
	}
	return c, nil
}
