package types

import "fmt"

// MatterType represents the primary category of a legal matter
type MatterType string

const (
	MatterCivil          MatterType = "civil"
	MatterMatrimonial    MatterType = "matrimonial"
	MatterCriminal       MatterType = "criminal"
	MatterProperty       MatterType = "property"
	MatterConstitutional MatterType = "constitutional"
	MatterConveyancing   MatterType = "conveyancing"
	MatterNotice         MatterType = "notice"
)

// AllMatterTypes returns all valid matter types
func AllMatterTypes() []MatterType {
	return []MatterType{
		MatterCivil,
		MatterMatrimonial,
		MatterCriminal,
		MatterProperty,
		MatterConstitutional,
		MatterConveyancing,
		MatterNotice,
	}
}

// IsValid checks if the matter type is valid
func (m MatterType) IsValid() bool {
	switch m {
	case MatterCivil,
		MatterMatrimonial,
		MatterCriminal,
		MatterProperty,
		MatterConstitutional,
		MatterConveyancing,
		MatterNotice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the matter type
func (m MatterType) String() string {
	return string(m)
}

// ParseMatterType parses a string into a MatterType
func ParseMatterType(s string) (MatterType, error) {
	m := MatterType(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid matter type: %s", s)
	}
	return m, nil
}
