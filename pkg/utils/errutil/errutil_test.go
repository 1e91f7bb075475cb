package errutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
)

// sentryContext binds a hub with a discarding client so the reporting
// path runs end to end.
func sentryContext(t *testing.T) context.Context {
	t.Helper()
	client, err := sentry.NewClient(sentry.ClientOptions{})
	gt.NoError(t, err).Required()

	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub)
}

func TestHandle(t *testing.T) {
	ctx := sentryContext(t)

	t.Run("nil error is a no-op", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(ctx, nil, "nothing happened"))
	})

	t.Run("error is returned as-is", func(t *testing.T) {
		orig := goerr.New("directory lookup failed", goerr.V("advocate_id", "adv-1"))
		got := errutil.Handle(ctx, orig, "lookup failed")
		gt.B(t, got == orig).True()
	})
}

func TestHandleHTTP(t *testing.T) {
	ctx := sentryContext(t)

	rec := httptest.NewRecorder()
	err := goerr.New("case snapshot unavailable", goerr.V("case_id", "case-1"))
	errutil.HandleHTTP(ctx, rec, err, http.StatusInternalServerError)

	gt.Number(t, rec.Code).Equal(http.StatusInternalServerError)
	gt.S(t, rec.Body.String()).Contains("case snapshot unavailable")
}
