package model

import (
	"time"

	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// Conversation is the message thread for a case, owned by the AI assistant
// until an advocate takes over.
type Conversation struct {
	ID       types.ConversationID
	ClientID types.UserID
	// CaseID is empty until enough profile facts arrive to open a case.
	CaseID     types.CaseID
	AdvocateID types.UserID
	Phase      types.ConversationPhase

	// SessionToken carries the assistant's session continuity across turns.
	SessionToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one entry in a conversation's append-only log.
type Message struct {
	ID             types.MessageID
	ConversationID types.ConversationID
	// SenderID is empty for AI and system messages.
	SenderID types.UserID
	Sender   types.SenderType
	Type     types.MessageType
	Content  string

	// VisibleToAdvocate controls whether the message appears in the
	// advocate's view of the conversation history.
	VisibleToAdvocate bool

	CreatedAt time.Time
}
