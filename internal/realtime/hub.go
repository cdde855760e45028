package realtime

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const DefaultConnectionBuffer = 16

// Event is a named message pushed to one client connection.
type Event struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// Hub fans events out to live client connections. Sends never block; a
// slow consumer drops events rather than stalling a webhook handler.
type Hub struct {
	mu               sync.RWMutex
	conns            map[string]chan Event
	connectionBuffer int
}

type Connection struct {
	hub  *Hub
	id   string
	ch   chan Event
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		conns:            make(map[string]chan Event),
		connectionBuffer: DefaultConnectionBuffer,
	}
}

// Connect allocates a connection id and its event channel.
func (h *Hub) Connect() (*Connection, error) {
	if h == nil {
		return nil, errors.New("hub_unavailable")
	}

	id := uuid.NewString()
	ch := make(chan Event, h.connectionBuffer)

	h.mu.Lock()
	h.conns[id] = ch
	h.mu.Unlock()

	return &Connection{hub: h, id: id, ch: ch}, nil
}

// Send pushes an event to the given connection. It reports false when the
// connection is gone or its buffer is full.
func (h *Hub) Send(connID string, event Event) bool {
	if h == nil {
		return false
	}
	connID = strings.TrimSpace(connID)
	if connID == "" {
		return false
	}

	h.mu.RLock()
	ch := h.conns[connID]
	h.mu.RUnlock()
	if ch == nil {
		return false
	}

	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

func (h *Hub) disconnect(connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	h.mu.Unlock()
}

func (c *Connection) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

func (c *Connection) Events() <-chan Event {
	if c == nil {
		return nil
	}
	return c.ch
}

func (c *Connection) Close() {
	if c == nil || c.hub == nil {
		return
	}
	c.once.Do(func() {
		c.hub.disconnect(c.id)
	})
}
