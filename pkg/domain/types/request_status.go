package types

import "fmt"

// RequestStatus represents the status of an advocate case request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// AllRequestStatuses returns all valid request statuses
func AllRequestStatuses() []RequestStatus {
	return []RequestStatus{RequestPending, RequestAccepted, RequestRejected}
}

// IsValid checks if the request status is valid
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the request has been responded to. Accepted and
// rejected requests never change status again.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// String returns the string representation of the request status
func (s RequestStatus) String() string {
	return string(s)
}

// ParseRequestStatus parses a string into a RequestStatus
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return status, nil
}
