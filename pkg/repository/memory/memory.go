package memory

import (
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
)

// Client is an in-memory repository backend for tests and local runs
type Client struct {
	advocate     *advocateRepository
	cases        *caseRepository
	request      *caseRequestRepository
	conversation *conversationRepository
	message      *messageRepository
	notification *notificationRepository
}

var _ interfaces.Repository = &Client{}

func New() *Client {
	return &Client{
		advocate:     newAdvocateRepository(),
		cases:        newCaseRepository(),
		request:      newCaseRequestRepository(),
		conversation: newConversationRepository(),
		message:      newMessageRepository(),
		notification: newNotificationRepository(),
	}
}

func (c *Client) Advocate() interfaces.AdvocateRepository {
	return c.advocate
}

func (c *Client) Case() interfaces.CaseRepository {
	return c.cases
}

func (c *Client) CaseRequest() interfaces.CaseRequestRepository {
	return c.request
}

func (c *Client) Conversation() interfaces.ConversationRepository {
	return c.conversation
}

func (c *Client) Message() interfaces.MessageRepository {
	return c.message
}

func (c *Client) Notification() interfaces.NotificationRepository {
	return c.notification
}

func (c *Client) Close() error {
	return nil
}
