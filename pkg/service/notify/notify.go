package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

// previewLimit caps the message preview embedded in a notification
const previewLimit = 100

// NotificationPayload is the wire shape of a stored notification
type NotificationPayload struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	CaseID    string    `json:"case_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Read      bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationPayload converts a notification to its wire shape
func NewNotificationPayload(n *model.Notification) NotificationPayload {
	return NotificationPayload{
		ID:        n.ID.String(),
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		CaseID:    n.CaseID.String(),
		RequestID: n.RequestID.String(),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// MessagePayload is the wire shape of a conversation message
type MessagePayload struct {
	ID                string    `json:"id"`
	ConversationID    string    `json:"conversation_id"`
	SenderID          string    `json:"sender_id,omitempty"`
	SenderType        string    `json:"sender_type"`
	MessageType       string    `json:"message_type"`
	Content           string    `json:"content"`
	VisibleToAdvocate bool      `json:"visible_to_advocate"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewMessagePayload converts a message to its wire shape
func NewMessagePayload(m *model.Message) MessagePayload {
	return MessagePayload{
		ID:                m.ID.String(),
		ConversationID:    m.ConversationID.String(),
		SenderID:          m.SenderID.String(),
		SenderType:        m.Sender.String(),
		MessageType:       m.Type.String(),
		Content:           m.Content,
		VisibleToAdvocate: m.VisibleToAdvocate,
		CreatedAt:         m.CreatedAt,
	}
}

// NotificationEvent is the realtime wire shape for a stored notification
type NotificationEvent struct {
	Type         string              `json:"type"`
	Notification NotificationPayload `json:"notification"`
}

// MessageEvent is the realtime wire shape for a conversation message
type MessageEvent struct {
	Type    string         `json:"type"`
	Message MessagePayload `json:"message"`
}

// Service writes durable notifications and pushes them to connected users.
// The realtime leg is best effort; only the durable write can fail.
type Service struct {
	repo interfaces.NotificationRepository
	rt   interfaces.RealtimePublisher
}

// New creates a notification service. rt may be nil when no realtime hub
// is wired (e.g. one-shot commands).
func New(repo interfaces.NotificationRepository, rt interfaces.RealtimePublisher) *Service {
	return &Service{repo: repo, rt: rt}
}

// CaseRequested notifies an advocate that a client selected them
func (s *Service) CaseRequested(ctx context.Context, advocateID types.UserID, caseID types.CaseID, requestID types.RequestID, matter types.MatterType, matchScore float64) error {
	return s.create(ctx, &model.Notification{
		UserID:    advocateID,
		Type:      types.NotifyCaseRequest,
		Title:     "New Case Request",
		Message:   fmt.Sprintf("A client has requested your assistance for a %s matter. Match score: %d%%", matter, int(matchScore)),
		CaseID:    caseID,
		RequestID: requestID,
	})
}

// AdvocateAccepted notifies the client that their advocate took the case
func (s *Service) AdvocateAccepted(ctx context.Context, clientID types.UserID, caseID types.CaseID, requestID types.RequestID, advocateName string) error {
	return s.create(ctx, &model.Notification{
		UserID:    clientID,
		Type:      types.NotifyAdvocateAccepted,
		Title:     "Advocate Accepted Your Case",
		Message:   fmt.Sprintf("%s has accepted your case. You can now chat with them directly.", advocateName),
		CaseID:    caseID,
		RequestID: requestID,
	})
}

// AdvocateRejected notifies the client that their advocate declined
func (s *Service) AdvocateRejected(ctx context.Context, clientID types.UserID, caseID types.CaseID, requestID types.RequestID, advocateName, reason string) error {
	msg := fmt.Sprintf("%s is unable to take your case at this time.", advocateName)
	if reason != "" {
		msg += " Reason: " + reason
	}
	msg += " Please select another advocate from the recommendations."

	return s.create(ctx, &model.Notification{
		UserID:    clientID,
		Type:      types.NotifyAdvocateRejected,
		Title:     "Advocate Unavailable",
		Message:   msg,
		CaseID:    caseID,
		RequestID: requestID,
	})
}

// NewMessage notifies a user about a message posted to one of their cases
func (s *Service) NewMessage(ctx context.Context, recipientID types.UserID, caseID types.CaseID, senderName, content string) error {
	return s.create(ctx, &model.Notification{
		UserID:  recipientID,
		Type:    types.NotifyNewMessage,
		Title:   fmt.Sprintf("New message from %s", senderName),
		Message: truncatePreview(content),
		CaseID:  caseID,
	})
}

// BroadcastMessage pushes a conversation message to every connected
// participant. Purely realtime, nothing durable.
func (s *Service) BroadcastMessage(ctx context.Context, conversationID types.ConversationID, msg *model.Message) {
	if s.rt == nil {
		return
	}
	s.rt.BroadcastToConversation(ctx, conversationID, MessageEvent{
		Type:    "new_message",
		Message: NewMessagePayload(msg),
	})
}

func (s *Service) create(ctx context.Context, n *model.Notification) error {
	n.ID = types.NewNotificationID()
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, n); err != nil {
		return goerr.Wrap(err, "failed to store notification",
			goerr.V("user_id", n.UserID),
			goerr.V("type", n.Type),
		)
	}

	if s.rt != nil {
		s.rt.SendToUser(ctx, n.UserID, NotificationEvent{
			Type:         "notification",
			Notification: NewNotificationPayload(n),
		})
	}
	return nil
}

func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
