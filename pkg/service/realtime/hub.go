package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/interfaces"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/async"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/safe"
)

const (
	writeWait = 10 * time.Second

	// sendBuffer is the number of outbound events queued per connection. A
	// peer that stops reading fills it and gets dropped.
	sendBuffer = 32
)

// Hub tracks live websocket connections by user and by conversation and
// fans events out to them. Each connection has its own outbound queue and
// writer goroutine, so delivery keeps per-connection order while a slow or
// dead socket never delays the others. Delivery is best effort: a failing
// connection is dropped and never surfaces to the caller.
type Hub struct {
	mu     sync.RWMutex
	byUser map[types.UserID]map[*Conn]struct{}
	byConv map[types.ConversationID]map[*Conn]struct{}
}

var _ interfaces.RealtimePublisher = &Hub{}

// New creates an empty hub
func New() *Hub {
	return &Hub{
		byUser: make(map[types.UserID]map[*Conn]struct{}),
		byConv: make(map[types.ConversationID]map[*Conn]struct{}),
	}
}

// Conn is one registered websocket connection. The writer goroutine is the
// only place that touches the socket for writes, as required by
// gorilla/websocket.
type Conn struct {
	ws     *websocket.Conn
	userID types.UserID
	convID types.ConversationID

	send chan any
	stop chan struct{}

	stopOnce sync.Once
}

// Register adds a websocket connection for the given user, subscribed to
// the given conversation, and starts its writer. The returned Conn must be
// passed to Unregister when the socket closes.
func (h *Hub) Register(ws *websocket.Conn, userID types.UserID, convID types.ConversationID) *Conn {
	c := &Conn{
		ws:     ws,
		userID: userID,
		convID: convID,
		send:   make(chan any, sendBuffer),
		stop:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*Conn]struct{})
	}
	h.byUser[userID][c] = struct{}{}

	if convID != "" {
		if h.byConv[convID] == nil {
			h.byConv[convID] = make(map[*Conn]struct{})
		}
		h.byConv[convID][c] = struct{}{}
	}
	h.mu.Unlock()

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		c.writePump(ctx, h)
		return nil
	})

	return c
}

// Unregister removes a connection from the hub and closes the socket
func (h *Hub) Unregister(c *Conn) {
	if c == nil {
		return
	}
	h.drop(context.Background(), c)
}

// drop removes the connection from both indexes, stops its writer, and
// closes the socket.
func (h *Hub) drop(ctx context.Context, c *Conn) {
	h.mu.Lock()
	h.remove(c)
	h.mu.Unlock()

	c.stopOnce.Do(func() {
		close(c.stop)
		safe.Close(ctx, c.ws)
	})
}

// remove drops a connection from both indexes. Caller holds h.mu.
func (h *Hub) remove(c *Conn) {
	if conns, ok := h.byUser[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	if c.convID != "" {
		if conns, ok := h.byConv[c.convID]; ok {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.byConv, c.convID)
			}
		}
	}
}

// SendToUser delivers an event to every connection of one user
func (h *Hub) SendToUser(ctx context.Context, userID types.UserID, event any) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.byUser[userID]))
	for c := range h.byUser[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(ctx, targets, event)
}

// BroadcastToConversation delivers an event to every connection subscribed
// to a conversation
func (h *Hub) BroadcastToConversation(ctx context.Context, conversationID types.ConversationID, event any) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.byConv[conversationID]))
	for c := range h.byConv[conversationID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(ctx, targets, event)
}

// deliver enqueues the event on each target's queue without ever blocking.
// A full queue means the peer stopped reading; that connection is dropped.
func (h *Hub) deliver(ctx context.Context, targets []*Conn, event any) {
	for _, c := range targets {
		select {
		case c.send <- event:
		case <-c.stop:
		default:
			logging.From(ctx).Warn("dropping websocket connection with full send queue",
				"user_id", c.userID,
				"conversation_id", c.convID,
			)
			h.drop(ctx, c)
		}
	}
}

// writePump drains the connection's queue onto the socket. A write failure
// drops the connection.
func (c *Conn) writePump(ctx context.Context, h *Hub) {
	for {
		select {
		case <-c.stop:
			return
		case event := <-c.send:
			if err := c.writeJSON(event); err != nil {
				logging.From(ctx).Warn("dropping websocket connection after failed write",
					"user_id", c.userID,
					"conversation_id", c.convID,
					"error", err,
				)
				h.drop(ctx, c)
				return
			}
		}
	}
}

func (c *Conn) writeJSON(event any) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(event)
}

// ConnectionCount reports the number of live connections for a user
func (h *Hub) ConnectionCount(userID types.UserID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
