package types

import "fmt"

// CourtLevel represents the level of court where a case will be filed
type CourtLevel string

const (
	CourtDistrict CourtLevel = "district"
	CourtHigh     CourtLevel = "high_court"
	CourtSupreme  CourtLevel = "supreme_court"
	CourtTribunal CourtLevel = "tribunal"
)

// AllCourtLevels returns all valid court levels
func AllCourtLevels() []CourtLevel {
	return []CourtLevel{
		CourtDistrict,
		CourtHigh,
		CourtSupreme,
		CourtTribunal,
	}
}

// IsValid checks if the court level is valid
func (c CourtLevel) IsValid() bool {
	switch c {
	case CourtDistrict, CourtHigh, CourtSupreme, CourtTribunal:
		return true
	default:
		return false
	}
}

// Normalize returns the court level, treating empty as CourtDistrict.
func (c CourtLevel) Normalize() CourtLevel {
	if c == "" {
		return CourtDistrict
	}
	return c
}

// String returns the string representation of the court level
func (c CourtLevel) String() string {
	return string(c)
}

// ParseCourtLevel parses a string into a CourtLevel
func ParseCourtLevel(s string) (CourtLevel, error) {
	c := CourtLevel(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid court level: %s", s)
	}
	return c, nil
}
