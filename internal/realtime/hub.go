// Package realtime pushes region invalidation notices to connected
// browsers so that other sessions can re-fetch stale regions.
package realtime

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/sirupsen/logrus"
)

const GlobalTopic = "global"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

func ProjectTopic(projectID uint) string {
	return fmt.Sprintf("project:%d", projectID)
}

type Message struct {
	Type    string         `json:"type"`
	Topic   string         `json:"topic"`
	Regions []types.Region `json:"regions,omitempty"`
}

// client serializes writes; gorilla connections allow one writer at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(fn func(conn *websocket.Conn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return fn(c.conn)
}

type Hub struct {
	upgrader websocket.Upgrader
	log      *logrus.Entry

	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

func NewHub(allowedOrigins []string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowed[r.Header.Get("Origin")]
			},
		},
		log:     logging.For("realtime"),
		clients: make(map[string]map[*client]bool),
	}
}

// Subscribers returns the number of open connections on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[topic])
}

// Publish tells every subscriber of topic that regions are stale.
func (h *Hub) Publish(topic string, regions []types.Region) {
	if len(regions) == 0 {
		return
	}

	h.mu.RLock()
	subscribers := make([]*client, 0, len(h.clients[topic]))
	for c := range h.clients[topic] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	message := Message{Type: "invalidate", Topic: topic, Regions: regions}

	for _, c := range subscribers {
		err := c.write(func(conn *websocket.Conn) error {
			return conn.WriteJSON(message)
		})

		if err != nil {
			h.log.WithError(err).WithField("topic", topic).Warn("Failed to publish invalidation")
			h.remove(topic, c)
			c.conn.Close()
		}
	}
}

func (h *Hub) add(topic string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[topic] == nil {
		h.clients[topic] = make(map[*client]bool)
	}
	h.clients[topic][c] = true
}

func (h *Hub) remove(topic string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[topic]; exists {
		delete(clients, c)

		if len(clients) == 0 {
			delete(h.clients, topic)
		}
	}
}

// Serve upgrades the request and keeps the connection subscribed to topic
// until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string) {
	log := h.log.WithField("topic", topic)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(topic, c)

	defer func() {
		h.remove(topic, c)
		conn.Close()
		log.Debug("WebSocket connection closed")
	}()

	err = c.write(func(conn *websocket.Conn) error {
		return conn.WriteJSON(Message{Type: "connected", Topic: topic})
	})

	if err != nil {
		log.WithError(err).Warn("Failed to send welcome message")
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				err := c.write(func(conn *websocket.Conn) error {
					return conn.WriteMessage(websocket.PingMessage, nil)
				})
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("WebSocket error")
			}
			return
		}
	}
}
