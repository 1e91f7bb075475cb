package types

import "fmt"

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusAIConversation   CaseStatus = "ai_conversation"
	CaseStatusPendingAdvocate  CaseStatus = "pending_advocate"
	CaseStatusAdvocateAssigned CaseStatus = "advocate_assigned"
	CaseStatusAdvocateRejected CaseStatus = "advocate_rejected"
	CaseStatusInProgress       CaseStatus = "in_progress"
	CaseStatusCompleted        CaseStatus = "completed"
	CaseStatusClosed           CaseStatus = "closed"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusAIConversation,
		CaseStatusPendingAdvocate,
		CaseStatusAdvocateAssigned,
		CaseStatusAdvocateRejected,
		CaseStatusInProgress,
		CaseStatusCompleted,
		CaseStatusClosed,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusAIConversation,
		CaseStatusPendingAdvocate,
		CaseStatusAdvocateAssigned,
		CaseStatusAdvocateRejected,
		CaseStatusInProgress,
		CaseStatusCompleted,
		CaseStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as CaseStatusAIConversation.
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusAIConversation
	}
	return s
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. The only backward edge is advocate_rejected to pending_advocate,
// which lets the client pick a different advocate after a rejection.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	switch s {
	case CaseStatusAIConversation:
		return next == CaseStatusPendingAdvocate
	case CaseStatusPendingAdvocate:
		return next == CaseStatusAdvocateAssigned || next == CaseStatusAdvocateRejected
	case CaseStatusAdvocateRejected:
		return next == CaseStatusPendingAdvocate
	case CaseStatusAdvocateAssigned:
		return next == CaseStatusInProgress
	case CaseStatusInProgress:
		return next == CaseStatusCompleted
	case CaseStatusCompleted:
		return next == CaseStatusClosed
	default:
		return false
	}
}

// IsAssigned reports whether the status is advocate_assigned or any later
// stage of active representation.
func (s CaseStatus) IsAssigned() bool {
	switch s {
	case CaseStatusAdvocateAssigned, CaseStatusInProgress, CaseStatusCompleted, CaseStatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
