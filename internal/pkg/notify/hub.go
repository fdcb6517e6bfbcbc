// Package notify broadcasts lifecycle events to attached websocket
// listeners. Delivery is fire and forget: a slow or gone listener loses
// events, the mutation that produced them is never affected.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/lifecycle"
)

const (
	sendBuffer   = 32
	writeTimeout = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: map[string]*client{}}
}

// Attach registers an upgraded connection and services it until it closes.
func (h *Hub) Attach(conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	id := uuid.New().String()
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	go h.writePump(id, c)
	go h.readPump(id, c)
}

// Publish fans the event out to every listener. A listener whose buffer is
// full is skipped; nothing is retried.
func (h *Hub) Publish(event lifecycle.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("notify: marshal event: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			log.Debugf("notify: dropping event for slow listener %s", id)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) detach(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()
	if ok {
		c.once.Do(func() { close(c.done) })
		c.conn.Close()
	}
}

func (h *Hub) writePump(id string, c *client) {
	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.detach(id)
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump discards inbound frames; its job is noticing the close.
func (h *Hub) readPump(id string, c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.detach(id)
			return
		}
	}
}
