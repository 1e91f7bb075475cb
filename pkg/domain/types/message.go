package types

// SenderType represents who authored a conversation message
type SenderType string

const (
	SenderClient   SenderType = "client"
	SenderAI       SenderType = "ai"
	SenderAdvocate SenderType = "advocate"
)

// IsValid checks if the sender type is valid
func (s SenderType) IsValid() bool {
	switch s {
	case SenderClient, SenderAI, SenderAdvocate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sender type
func (s SenderType) String() string {
	return string(s)
}

// MessageType represents the kind of content carried by a message
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageFile     MessageType = "file"
	MessageDocument MessageType = "document"
	MessageSystem   MessageType = "system"
)

// IsValid checks if the message type is valid
func (t MessageType) IsValid() bool {
	switch t {
	case MessageText, MessageFile, MessageDocument, MessageSystem:
		return true
	default:
		return false
	}
}

// Normalize returns the message type, treating empty as MessageText.
func (t MessageType) Normalize() MessageType {
	if t == "" {
		return MessageText
	}
	return t
}

// String returns the string representation of the message type
func (t MessageType) String() string {
	return string(t)
}
