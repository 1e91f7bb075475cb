package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serveWebSocket attaches the caller to the realtime hub for one
// conversation. The socket is push only; inbound frames are discarded.
func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Browsers cannot set headers on websocket dials, so the identity may
	// also arrive as a query parameter.
	uid := types.UserID(r.Header.Get(userIDHeader))
	if uid == "" {
		uid = types.UserID(r.URL.Query().Get("user_id"))
	}
	if err := uid.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "missing user identity"), http.StatusBadRequest)
		return
	}

	convID := types.ConversationID(chi.URLParam(r, "conversationID"))
	if _, err := s.uc.Conversation.Authorize(ctx, uid, convID); err != nil {
		handleError(ctx, w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		_ = errutil.Handle(ctx, err, "websocket upgrade failed")
		return
	}

	conn := s.hub.Register(ws, uid, convID)
	defer s.hub.Unregister(conn)

	logging.From(ctx).Debug("websocket connected",
		"user_id", uid,
		"conversation_id", convID,
	)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
