// Package websocket streams domain events to connected browsers, replacing
// per-view polling with push updates.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Message is the frame pushed to clients for every domain event.
type Message struct {
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// subscribeRequest is the only frame clients send: it narrows the event
// types a connection receives and names the permit views it wants pushed.
// A connection with no type filter receives all events.
type subscribeRequest struct {
	Action string   `json:"action"` // subscribe or unsubscribe
	Types  []string `json:"types,omitempty"`
	Views  []string `json:"views,omitempty"`
}

// Permit view names a client may subscribe to. A subscribed view gets a
// fresh snapshot immediately and again after every permit change.
const (
	ViewAdminQueue     = "admin-queue"
	ViewSecurityOut    = "security-out"
	ViewSecurityReturn = "security-return"
)

// ViewSource produces fresh snapshots of the permit queue views.
type ViewSource interface {
	AdminQueue(ctx context.Context) ([]*entity.LeavePermit, error)
	SecurityOutQueue(ctx context.Context) ([]*entity.LeavePermit, error)
	SecurityReturnQueue(ctx context.Context) ([]*entity.LeavePermit, error)
}

// Hub fans dispatcher events out to websocket connections.
type Hub struct {
	upgrader   websocket.Upgrader
	dispatcher dispatcher.Dispatcher
	views      ViewSource
	logger     *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan Message

	mu     sync.RWMutex
	closed bool
	filter map[string]bool // empty means all types
	views  map[string]bool
}

// NewHub creates the hub and subscribes it to every event type. views may
// be nil, in which case view subscriptions are ignored.
func NewHub(d dispatcher.Dispatcher, views ViewSource, logger *zap.Logger) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the CORS layer in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		dispatcher: d,
		views:      views,
		logger:     logger,
		clients:    make(map[*client]struct{}),
	}

	for _, t := range event.AllTypes() {
		h.dispatcher.Subscribe(t, "websocket-hub", h.onEvent)
	}

	return h
}

// onEvent broadcasts one dispatcher event to every interested connection.
func (h *Hub) onEvent(ctx context.Context, evt *event.Event) error {
	msg := Message{
		Type:      evt.Type.String(),
		Payload:   evt.Payload,
		Timestamp: evt.Timestamp,
	}

	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(msg.Type) {
			continue
		}
		c.enqueue(h.logger, msg)
	}
	h.mu.RUnlock()

	if evt.Type == event.TypePermitChanged {
		h.pushViews(ctx)
	}
	return nil
}

// pushViews re-reads each subscribed permit view and pushes the snapshot.
// Each view is read once per change no matter how many clients watch it.
func (h *Hub) pushViews(ctx context.Context) {
	if h.views == nil {
		return
	}

	h.mu.RLock()
	watchers := make(map[string][]*client)
	for c := range h.clients {
		for _, name := range c.watchedViews() {
			watchers[name] = append(watchers[name], c)
		}
	}
	h.mu.RUnlock()

	for name, clients := range watchers {
		msg, err := h.viewSnapshot(ctx, name)
		if err != nil {
			h.logger.Error("Failed to build view snapshot",
				zap.String("view", name), zap.Error(err))
			continue
		}
		for _, c := range clients {
			c.enqueue(h.logger, msg)
		}
	}
}

// viewSnapshot reads one named view and wraps it in a push frame.
func (h *Hub) viewSnapshot(ctx context.Context, name string) (Message, error) {
	if h.views == nil {
		return Message{}, fmt.Errorf("no view source configured")
	}

	var (
		permits []*entity.LeavePermit
		err     error
	)
	switch name {
	case ViewAdminQueue:
		permits, err = h.views.AdminQueue(ctx)
	case ViewSecurityOut:
		permits, err = h.views.SecurityOutQueue(ctx)
	case ViewSecurityReturn:
		permits, err = h.views.SecurityReturnQueue(ctx)
	default:
		return Message{}, fmt.Errorf("unknown view: %s", name)
	}
	if err != nil {
		return Message{}, err
	}

	return Message{
		Type:      "view.snapshot",
		Payload:   map[string]interface{}{"view": name, "permits": permits},
		Timestamp: time.Now().UTC(),
	}, nil
}

// HandleConnection upgrades the request and serves it until the peer
// disconnects or the hub closes.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		filter: make(map[string]bool),
		views:  make(map[string]bool),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Websocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.writePump(c)
	h.readPump(c)
}

// readPump consumes subscribe frames and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer h.drop(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Websocket read error", zap.Error(err))
			}
			return
		}

		var req subscribeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.logger.Warn("Ignoring malformed websocket frame", zap.Error(err))
			continue
		}

		// A freshly subscribed view gets its current snapshot right away.
		for _, name := range c.apply(req) {
			msg, err := h.viewSnapshot(context.Background(), name)
			if err != nil {
				h.logger.Error("Failed to build view snapshot",
					zap.String("view", name), zap.Error(err))
				continue
			}
			c.enqueue(h.logger, msg)
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drop unregisters a client and tears down its connection.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.shutdown()
	}
	h.mu.Unlock()

	c.conn.Close()
	h.logger.Info("Websocket client disconnected")
}

// Close unsubscribes from the dispatcher and disconnects every client.
func (h *Hub) Close() {
	for _, t := range event.AllTypes() {
		h.dispatcher.Unsubscribe(t, "websocket-hub")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		c.shutdown()
		delete(h.clients, c)
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *client) wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.filter) == 0 {
		return true
	}
	return c.filter[eventType]
}

// enqueue delivers a frame unless the client is gone or its buffer is
// full, in which case the frame is dropped rather than blocking the hub.
// The closed check matters on the view-push path, where the client may
// have been dropped after the watcher list was collected.
func (c *client) enqueue(logger *zap.Logger, msg Message) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		logger.Warn("Dropping frame for slow websocket client",
			zap.String("type", msg.Type))
	}
}

// shutdown marks the client closed and closes its send channel, exactly
// once. Holding the write lock here means no concurrent enqueue can be
// mid-send when the channel closes.
func (c *client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *client) watchedViews() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.views))
	for name := range c.views {
		names = append(names, name)
	}
	return names
}

func validView(name string) bool {
	switch name {
	case ViewAdminQueue, ViewSecurityOut, ViewSecurityReturn:
		return true
	}
	return false
}

// apply updates the connection's filters and returns any views that were
// newly subscribed.
func (c *client) apply(req subscribeRequest) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var added []string
	switch req.Action {
	case "subscribe":
		for _, t := range req.Types {
			c.filter[t] = true
		}
		for _, v := range req.Views {
			if !validView(v) || c.views[v] {
				continue
			}
			c.views[v] = true
			added = append(added, v)
		}
	case "unsubscribe":
		for _, t := range req.Types {
			delete(c.filter, t)
		}
		for _, v := range req.Views {
			delete(c.views, v)
		}
	}
	return added
}
