package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type conversationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newConversationRepository(client *firestore.Client) *conversationRepository {
	return &conversationRepository{client: client}
}

func (r *conversationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_conversations"
	}
	return "conversations"
}

type conversationDoc struct {
	ID           string    `firestore:"id"`
	ClientID     string    `firestore:"client_id"`
	CaseID       string    `firestore:"case_id"`
	AdvocateID   string    `firestore:"advocate_id"`
	Phase        string    `firestore:"phase"`
	SessionToken string    `firestore:"session_token"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toConversationDoc(conv *model.Conversation) *conversationDoc {
	return &conversationDoc{
		ID:           conv.ID.String(),
		ClientID:     conv.ClientID.String(),
		CaseID:       conv.CaseID.String(),
		AdvocateID:   conv.AdvocateID.String(),
		Phase:        conv.Phase.String(),
		SessionToken: conv.SessionToken,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
}

func (d *conversationDoc) toModel() *model.Conversation {
	return &model.Conversation{
		ID:           types.ConversationID(d.ID),
		ClientID:     types.UserID(d.ClientID),
		CaseID:       types.CaseID(d.CaseID),
		AdvocateID:   types.UserID(d.AdvocateID),
		Phase:        types.ConversationPhase(d.Phase),
		SessionToken: d.SessionToken,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(conv.ID.String()).Set(ctx, toConversationDoc(conv))
	if err != nil {
		return goerr.Wrap(err, "failed to create conversation", goerr.V("id", conv.ID))
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "conversation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get conversation", goerr.V("id", id))
	}

	var doc conversationDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode conversation", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *conversationRepository) ListByClient(ctx context.Context, clientID types.UserID) ([]*model.Conversation, error) {
	iter := r.client.Collection(r.collection()).
		Where("client_id", "==", clientID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	result := []*model.Conversation{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate conversations", goerr.V("client_id", clientID))
		}

		var doc conversationDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode conversation")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *conversationRepository) Update(ctx context.Context, conv *model.Conversation) error {
	docRef := r.client.Collection(r.collection()).Doc(conv.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "conversation not found", goerr.V("id", conv.ID))
		}
		return goerr.Wrap(err, "failed to get conversation", goerr.V("id", conv.ID))
	}

	conv.UpdatedAt = time.Now().UTC()
	if _, err := docRef.Set(ctx, toConversationDoc(conv)); err != nil {
		return goerr.Wrap(err, "failed to update conversation", goerr.V("id", conv.ID))
	}
	return nil
}

type messageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_messages"
	}
	return "messages"
}

type messageDoc struct {
	ID                string    `firestore:"id"`
	ConversationID    string    `firestore:"conversation_id"`
	SenderID          string    `firestore:"sender_id"`
	Sender            string    `firestore:"sender"`
	Type              string    `firestore:"type"`
	Content           string    `firestore:"content"`
	VisibleToAdvocate bool      `firestore:"visible_to_advocate"`
	CreatedAt         time.Time `firestore:"created_at"`
}

func toMessageDoc(msg *model.Message) *messageDoc {
	return &messageDoc{
		ID:                msg.ID.String(),
		ConversationID:    msg.ConversationID.String(),
		SenderID:          msg.SenderID.String(),
		Sender:            msg.Sender.String(),
		Type:              msg.Type.String(),
		Content:           msg.Content,
		VisibleToAdvocate: msg.VisibleToAdvocate,
		CreatedAt:         msg.CreatedAt,
	}
}

func (d *messageDoc) toModel() *model.Message {
	return &model.Message{
		ID:                types.MessageID(d.ID),
		ConversationID:    types.ConversationID(d.ConversationID),
		SenderID:          types.UserID(d.SenderID),
		Sender:            types.SenderType(d.Sender),
		Type:              types.MessageType(d.Type),
		Content:           d.Content,
		VisibleToAdvocate: d.VisibleToAdvocate,
		CreatedAt:         d.CreatedAt,
	}
}

func (r *messageRepository) Append(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := r.client.Collection(r.collection()).Doc(msg.ID.String()).Set(ctx, toMessageDoc(msg))
	if err != nil {
		return goerr.Wrap(err, "failed to append message", goerr.V("id", msg.ID))
	}
	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID types.ConversationID, visibleToAdvocateOnly bool) ([]*model.Message, error) {
	query := r.client.Collection(r.collection()).
		Where("conversation_id", "==", conversationID.String())
	if visibleToAdvocateOnly {
		query = query.Where("visible_to_advocate", "==", true)
	}

	iter := query.OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	result := []*model.Message{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages",
				goerr.V("conversation_id", conversationID))
		}

		var doc messageDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode message")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}
