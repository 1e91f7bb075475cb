package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies a client or advocate account. Authentication is out of
// scope; the ID is an opaque token issued elsewhere.
type UserID string

// CaseID identifies a legal case
type CaseID string

// ConversationID identifies a client conversation
type ConversationID string

// RequestID identifies an advocate case request
type RequestID string

// MessageID identifies a conversation message
type MessageID string

// NotificationID identifies a notification log entry
type NotificationID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// NewCaseID generates a new UUID v4 CaseID
func NewCaseID() CaseID {
	return CaseID(uuid.New().String())
}

// NewConversationID generates a new UUID v4 ConversationID
func NewConversationID() ConversationID {
	return ConversationID(uuid.New().String())
}

// NewRequestID generates a new UUID v4 RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// NewNotificationID generates a new UUID v4 NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

func (id UserID) String() string         { return string(id) }
func (id CaseID) String() string         { return string(id) }
func (id ConversationID) String() string { return string(id) }
func (id RequestID) String() string      { return string(id) }
func (id MessageID) String() string      { return string(id) }
func (id NotificationID) String() string { return string(id) }

// Validate checks if the UserID is non-empty
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// Validate checks if the CaseID is non-empty
func (id CaseID) Validate() error {
	if id == "" {
		return goerr.New("case ID cannot be empty")
	}
	return nil
}

// Validate checks if the ConversationID is non-empty
func (id ConversationID) Validate() error {
	if id == "" {
		return goerr.New("conversation ID cannot be empty")
	}
	return nil
}

// Validate checks if the RequestID is non-empty
func (id RequestID) Validate() error {
	if id == "" {
		return goerr.New("request ID cannot be empty")
	}
	return nil
}
