package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/model"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func newTestNotification(userID types.UserID) *model.Notification {
	return &model.Notification{
		ID:      types.NewNotificationID(),
		UserID:  userID,
		Type:    types.NotifyCaseRequest,
		Title:   "New Case Request",
		Message: "You have a new case request",
		CaseID:  types.NewCaseID(),
	}
}

func runNotificationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and list", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		gt.NoError(t, repo.Notification().Create(ctx, newTestNotification(userID))).Required()
		gt.NoError(t, repo.Notification().Create(ctx, newTestNotification(userID))).Required()
		gt.NoError(t, repo.Notification().Create(ctx, newTestNotification(types.NewUserID()))).Required()

		got, err := repo.Notification().ListByUser(ctx, userID, false)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(2)
		gt.Value(t, got[0].Title).Equal("New Case Request")
		gt.Bool(t, got[0].Read).False()
	})

	t.Run("MarkRead and unread filter", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		n1 := newTestNotification(userID)
		n2 := newTestNotification(userID)
		gt.NoError(t, repo.Notification().Create(ctx, n1)).Required()
		gt.NoError(t, repo.Notification().Create(ctx, n2)).Required()

		gt.NoError(t, repo.Notification().MarkRead(ctx, userID, n1.ID)).Required()

		unread, err := repo.Notification().ListByUser(ctx, userID, true)
		gt.NoError(t, err).Required()
		gt.Array(t, unread).Length(1)
		gt.Value(t, unread[0].ID).Equal(n2.ID)

		count, err := repo.Notification().CountUnread(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)
	})

	t.Run("MarkRead rejects another user's notification", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		owner := types.NewUserID()
		n := newTestNotification(owner)
		gt.NoError(t, repo.Notification().Create(ctx, n)).Required()

		err := repo.Notification().MarkRead(ctx, types.NewUserID(), n.ID)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("MarkAllRead clears the unread count", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		for i := 0; i < 3; i++ {
			gt.NoError(t, repo.Notification().Create(ctx, newTestNotification(userID))).Required()
		}

		gt.NoError(t, repo.Notification().MarkAllRead(ctx, userID)).Required()

		count, err := repo.Notification().CountUnread(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(0)
	})
}

func TestNotificationRepositoryMemory(t *testing.T) {
	runNotificationRepositoryTest(t, newMemoryRepo)
}

func TestNotificationRepositoryFirestore(t *testing.T) {
	runNotificationRepositoryTest(t, newFirestoreRepo)
}
