package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/journal"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
	broadcastQueue = 64
)

// Event is the frame pushed to subscribers.
type Event struct {
	Type       string              `json:"type"`
	ChildID    string              `json:"child_id"`
	Assessment *journal.Assessment `json:"assessment"`
}

type envelope struct {
	childID string
	payload []byte
}

// Hub fans new assessments out to websocket subscribers. A client that
// subscribed with a child_id only sees that child; an empty child_id sees
// everything.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}

	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// Client is one websocket subscriber.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	childID string
}

// NewHub creates a hub. allowedOrigin "*" accepts any origin.
func NewHub(allowedOrigin string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, broadcastQueue),
		done:       make(chan struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
	return h
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", zap.String("child_id", client.childID))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client unregistered", zap.String("child_id", client.childID))

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.childID != "" && client.childID != msg.childID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of registered subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifyAssessment queues a for delivery. It never blocks; when the queue
// is full the event is dropped.
func (h *Hub) NotifyAssessment(a *journal.Assessment) {
	payload, err := json.Marshal(Event{Type: "assessment", ChildID: a.ChildID, Assessment: a})
	if err != nil {
		h.logger.Error("failed to marshal assessment event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- envelope{childID: a.ChildID, payload: payload}:
	case <-h.done:
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("assessment_id", a.ID))
	}
}

// HandleWebSocket upgrades the request and subscribes it to ?child_id=.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		childID: r.URL.Query().Get("child_id"),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so control frames are processed, and
// unregisters the client once the peer goes away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Warn("websocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
