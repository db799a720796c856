// Package live pushes tracker changes to browsers over WebSocket.
package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pizza-tracker/models"
	"pizza-tracker/tracker"
)

const (
	clientSendBuf = 64
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

// EnvelopeSnapshot is the first message a new client receives
const EnvelopeSnapshot = "snapshot"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Envelope is the wire format for messages sent to browsers
type Envelope struct {
	Type      string         `json:"type"`
	OrderID   int            `json:"order_id,omitempty"`
	Timestamp time.Time      `json:"ts"`
	Orders    []models.Order `json:"orders"`
}

func MarshalEvent(e tracker.Event) ([]byte, error) {
	env := Envelope{
		Type:      string(e.Type),
		Timestamp: e.At,
		Orders:    e.Orders,
	}
	if e.Order != nil {
		env.OrderID = e.Order.ID
	}
	if env.Orders == nil {
		env.Orders = []models.Order{}
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return b, nil
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Hub fans tracker events out to every connected client
type Hub struct {
	snapshot func() []models.Order
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(snapshot func() []models.Order, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		snapshot: snapshot,
		logger:   logger,
		clients:  make(map[*client]struct{}),
	}
}

// Publish is a tracker.Listener. It never blocks on a slow client.
func (h *Hub) Publish(e tracker.Event) {
	data, err := MarshalEvent(e)
	if err != nil {
		h.logger.Warn("live: marshal error", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("live: dropping message for slow client", zap.String("client", c.id))
		}
	}
}

// HandleWS upgrades the request and registers the client
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live: upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, clientSendBuf),
		done: make(chan struct{}),
	}
	if h.snapshot != nil {
		data, err := json.Marshal(Envelope{
			Type:      EnvelopeSnapshot,
			Timestamp: time.Now(),
			Orders:    h.snapshot(),
		})
		if err == nil {
			c.send <- data
		}
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("live: client connected", zap.String("client", c.id))

	go h.writePump(c)
	go h.readPump(c)
}

// writePump owns the client lifecycle: on exit it unregisters the client and
// closes the connection.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		h.removeClient(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("live: write error", zap.String("client", c.id), zap.Error(err))
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for pongs and close frames. Browsers send nothing.
func (h *Hub) readPump(c *client) {
	defer close(c.done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		h.logger.Info("live: client disconnected", zap.String("client", c.id))
	}
}

// ClientCount reports how many browsers are connected
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.conn.Close()
	}
}
