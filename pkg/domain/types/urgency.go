package types

import "fmt"

// Urgency represents how quickly a case needs attention
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyNormal  Urgency = "normal"
	UrgencyCanWait Urgency = "can_wait"
)

// AllUrgencies returns all valid urgency tiers
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyUrgent, UrgencyNormal, UrgencyCanWait}
}

// IsValid checks if the urgency tier is valid
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyUrgent, UrgencyNormal, UrgencyCanWait:
		return true
	default:
		return false
	}
}

// Normalize returns the urgency, treating empty as UrgencyNormal.
func (u Urgency) Normalize() Urgency {
	if u == "" {
		return UrgencyNormal
	}
	return u
}

// String returns the string representation of the urgency tier
func (u Urgency) String() string {
	return string(u)
}

// ParseUrgency parses a string into an Urgency
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}
