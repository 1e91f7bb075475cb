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

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_notifications"
	}
	return "notifications"
}

type notificationDoc struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"user_id"`
	Type      string    `firestore:"type"`
	Title     string    `firestore:"title"`
	Message   string    `firestore:"message"`
	CaseID    string    `firestore:"case_id"`
	RequestID string    `firestore:"request_id"`
	Read      bool      `firestore:"read"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toNotificationDoc(n *model.Notification) *notificationDoc {
	return &notificationDoc{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		CaseID:    n.CaseID.String(),
		RequestID: n.RequestID.String(),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (d *notificationDoc) toModel() *model.Notification {
	return &model.Notification{
		ID:        types.NotificationID(d.ID),
		UserID:    types.UserID(d.UserID),
		Type:      types.NotificationType(d.Type),
		Title:     d.Title,
		Message:   d.Message,
		CaseID:    types.CaseID(d.CaseID),
		RequestID: types.RequestID(d.RequestID),
		Read:      d.Read,
		CreatedAt: d.CreatedAt,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := r.client.Collection(r.collection()).Doc(n.ID.String()).Set(ctx, toNotificationDoc(n))
	if err != nil {
		return goerr.Wrap(err, "failed to create notification", goerr.V("id", n.ID))
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	query := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String())
	if unreadOnly {
		query = query.Where("read", "==", false)
	}

	iter := query.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	result := []*model.Notification{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications", goerr.V("user_id", userID))
		}

		var doc notificationDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification")
		}
		result = append(result, doc.toModel())
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID types.UserID, id types.NotificationID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var doc notificationDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return goerr.Wrap(err, "failed to decode notification", goerr.V("id", id))
	}
	if doc.UserID != userID.String() {
		return goerr.Wrap(interfaces.ErrNotFound, "notification not found",
			goerr.V("id", id), goerr.V("user_id", userID))
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID types.UserID) error {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		Where("read", "==", false).
		Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate notifications", goerr.V("user_id", userID))
		}

		if _, err := bw.Update(docSnap.Ref, []firestore.Update{
			{Path: "read", Value: true},
		}); err != nil {
			return goerr.Wrap(err, "failed to queue notification update", goerr.V("user_id", userID))
		}
	}
	bw.End()
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID types.UserID) (int, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		Where("read", "==", false).
		Select().
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count unread notifications", goerr.V("user_id", userID))
		}
		count++
	}
	return count, nil
}
