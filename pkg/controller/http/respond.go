package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
)

// userIDHeader carries the caller identity. The gateway in front of this
// service authenticates the user and injects the header.
const userIDHeader = "X-User-ID"

func userID(r *http.Request) (types.UserID, error) {
	id := types.UserID(r.Header.Get(userIDHeader))
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(err, "missing or invalid X-User-ID header")
	}
	return id, nil
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// handleError maps usecase errors onto HTTP status codes
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrConversationWithAdvocate):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)

	case errors.Is(err, usecase.ErrPendingRequestExists),
		errors.Is(err, usecase.ErrRequestAlreadyProcessed),
		errors.Is(err, usecase.ErrCaseAlreadyAssigned),
		errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, interfaces.ErrConflict):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)

	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrRequestNotFound),
		errors.Is(err, usecase.ErrAdvocateNotFound),
		errors.Is(err, usecase.ErrConversationNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound),
		errors.Is(err, interfaces.ErrNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)

	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

// queryInt reads an optional integer query parameter; absent or malformed
// values come back as zero and the caller's default applies.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return false
	}
	return b
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	return nil
}
