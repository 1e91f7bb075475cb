package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
)

// Client is the Firestore repository backend
type Client struct {
	client       *firestore.Client
	advocate     *advocateRepository
	cases        *caseRepository
	request      *caseRequestRepository
	conversation *conversationRepository
	message      *messageRepository
	notification *notificationRepository
}

var _ interfaces.Repository = &Client{}

type Option func(*Client)

// WithCollectionPrefix namespaces all collections, mainly for tests sharing
// a project.
func WithCollectionPrefix(prefix string) Option {
	return func(c *Client) {
		c.advocate.collectionPrefix = prefix
		c.cases.collectionPrefix = prefix
		c.request.collectionPrefix = prefix
		c.conversation.collectionPrefix = prefix
		c.message.collectionPrefix = prefix
		c.notification.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Client, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	c := &Client{
		client:       client,
		advocate:     newAdvocateRepository(client),
		cases:        newCaseRepository(client),
		request:      newCaseRequestRepository(client),
		conversation: newConversationRepository(client),
		message:      newMessageRepository(client),
		notification: newNotificationRepository(client),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
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
	if err := c.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
