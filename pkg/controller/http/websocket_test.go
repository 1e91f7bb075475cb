package http_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
)

func wsURL(httpURL, path string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + path
}

func readEvent(t *testing.T, ws *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	gt.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev map[string]json.RawMessage
	gt.NoError(t, ws.ReadJSON(&ev)).Required()
	return ev
}

func TestWebSocketReceivesConversationMessages(t *testing.T) {
	env := newTestEnv(t)
	clientID := types.NewUserID()

	var conv struct {
		ID string `json:"id"`
	}
	status := env.call(t, http.MethodPost, "/api/client/conversations", clientID, nil, &conv)
	gt.Number(t, status).Equal(http.StatusCreated)

	ws, resp, err := websocket.DefaultDialer.Dial(
		wsURL(env.srv.URL, "/ws/"+conv.ID+"?user_id="+clientID.String()), nil)
	gt.NoError(t, err).Required()
	if resp != nil {
		resp.Body.Close()
	}
	defer ws.Close()

	status = env.call(t, http.MethodPost, "/api/client/conversations/"+conv.ID+"/messages", clientID,
		map[string]string{"content": "My neighbour encroached on my plot in Delhi"}, nil)
	gt.Number(t, status).Equal(http.StatusOK)

	// Client message first, then the AI reply
	for _, wantSender := range []string{"client", "ai"} {
		ev := readEvent(t, ws)

		var evType string
		gt.NoError(t, json.Unmarshal(ev["type"], &evType)).Required()
		gt.Value(t, evType).Equal("new_message")

		var msg struct {
			SenderType string `json:"sender_type"`
		}
		gt.NoError(t, json.Unmarshal(ev["message"], &msg)).Required()
		gt.Value(t, msg.SenderType).Equal(wantSender)
	}
}

func TestWebSocketRejectsNonParticipant(t *testing.T) {
	env := newTestEnv(t)
	clientID := types.NewUserID()

	var conv struct {
		ID string `json:"id"`
	}
	status := env.call(t, http.MethodPost, "/api/client/conversations", clientID, nil, &conv)
	gt.Number(t, status).Equal(http.StatusCreated)

	stranger := types.NewUserID()
	ws, resp, err := websocket.DefaultDialer.Dial(
		wsURL(env.srv.URL, "/ws/"+conv.ID+"?user_id="+stranger.String()), nil)
	gt.Error(t, err)
	if ws != nil {
		ws.Close()
	}
	if resp != nil {
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	}
}
