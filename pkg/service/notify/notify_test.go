package notify_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/repository/memory"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
)

type recordingPublisher struct {
	mu     sync.Mutex
	toUser []any
	toConv []any
}

func (r *recordingPublisher) SendToUser(ctx context.Context, userID types.UserID, event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toUser = append(r.toUser, event)
}

func (r *recordingPublisher) BroadcastToConversation(ctx context.Context, conversationID types.ConversationID, event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toConv = append(r.toConv, event)
}

func TestCaseRequested(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	rt := &recordingPublisher{}
	svc := notify.New(repo.Notification(), rt)

	advocateID := types.NewUserID()
	caseID := types.NewCaseID()
	requestID := types.NewRequestID()

	gt.NoError(t, svc.CaseRequested(ctx, advocateID, caseID, requestID, types.MatterCivil, 74.0))

	stored, err := repo.Notification().ListByUser(ctx, advocateID, false)
	gt.NoError(t, err)
	gt.A(t, stored).Length(1)
	gt.Value(t, stored[0].Type).Equal(types.NotifyCaseRequest)
	gt.Value(t, stored[0].Title).Equal("New Case Request")
	gt.S(t, stored[0].Message).Contains("civil matter").Contains("74%")
	gt.Value(t, stored[0].CaseID).Equal(caseID)
	gt.Value(t, stored[0].RequestID).Equal(requestID)
	gt.B(t, stored[0].Read).False()

	gt.A(t, rt.toUser).Length(1)
	ev, ok := rt.toUser[0].(notify.NotificationEvent)
	gt.B(t, ok).True()
	gt.Value(t, ev.Type).Equal("notification")
	gt.Value(t, ev.Notification.ID).Equal(stored[0].ID.String())
}

func TestAdvocateRejectedMessage(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := notify.New(repo.Notification(), nil)

	clientID := types.NewUserID()

	t.Run("with reason", func(t *testing.T) {
		gt.NoError(t, svc.AdvocateRejected(ctx, clientID, types.NewCaseID(), types.NewRequestID(),
			"Adv. Mehta", "Conflict of interest"))

		stored, err := repo.Notification().ListByUser(ctx, clientID, true)
		gt.NoError(t, err)
		gt.A(t, stored).Length(1)
		gt.Value(t, stored[0].Title).Equal("Advocate Unavailable")
		gt.S(t, stored[0].Message).
			Contains("Adv. Mehta is unable to take your case at this time.").
			Contains("Reason: Conflict of interest").
			Contains("Please select another advocate")
	})

	t.Run("without reason", func(t *testing.T) {
		clientID := types.NewUserID()
		gt.NoError(t, svc.AdvocateRejected(ctx, clientID, types.NewCaseID(), types.NewRequestID(),
			"Adv. Rao", ""))

		stored, err := repo.Notification().ListByUser(ctx, clientID, true)
		gt.NoError(t, err)
		gt.A(t, stored).Length(1)
		gt.B(t, strings.Contains(stored[0].Message, "Reason:")).False()
	})
}

func TestNewMessagePreview(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := notify.New(repo.Notification(), nil)

	recipient := types.NewUserID()
	long := strings.Repeat("a", 150)
	gt.NoError(t, svc.NewMessage(ctx, recipient, types.NewCaseID(), "Adv. Mehta", long))

	short := types.NewUserID()
	gt.NoError(t, svc.NewMessage(ctx, short, types.NewCaseID(), "Adv. Mehta", "See you at the hearing"))

	stored, err := repo.Notification().ListByUser(ctx, recipient, false)
	gt.NoError(t, err)
	gt.A(t, stored).Length(1)
	gt.Value(t, stored[0].Title).Equal("New message from Adv. Mehta")
	gt.Value(t, stored[0].Message).Equal(strings.Repeat("a", 100) + "...")

	storedShort, err := repo.Notification().ListByUser(ctx, short, false)
	gt.NoError(t, err)
	gt.Value(t, storedShort[0].Message).Equal("See you at the hearing")
}

func TestBroadcastMessageWithoutHub(t *testing.T) {
	repo := memory.New()
	svc := notify.New(repo.Notification(), nil)

	// Must not panic with no realtime hub wired
	svc.BroadcastMessage(context.Background(), types.NewConversationID(), nil)
}
