package hub

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ========================= Viewer push =========================
// Browsers showing the overlay connect here and get pushed a fresh render
// after every session change. Viewers are cheap and disposable: a failed
// write just drops the viewer, reconnecting is the page's problem.

// Msg is the envelope pushed to viewers.
type Msg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type Hub struct {
	// mu also serializes writes: gorilla connections allow one writer at a
	// time and both the upstream goroutine and HTTP handlers push here.
	mu      sync.Mutex
	viewers map[string]*websocket.Conn
}

func New() *Hub {
	return &Hub{viewers: map[string]*websocket.Conn{}}
}

// Add registers a viewer connection and returns its id.
func (h *Hub) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.viewers[id] = conn
	n := len(h.viewers)
	h.mu.Unlock()
	log.Printf("hub: viewer joined id=%s (viewers=%d)", id, n)
	return id
}

// Remove drops a viewer and closes its connection.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	conn, ok := h.viewers[id]
	delete(h.viewers, id)
	n := len(h.viewers)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
		log.Printf("hub: viewer left id=%s (viewers=%d)", id, n)
	}
}

// Send pushes one message to one viewer; the viewer is dropped if the write
// fails.
func (h *Hub) Send(id string, m Msg) {
	h.mu.Lock()
	conn, ok := h.viewers[id]
	var err error
	if ok {
		err = conn.WriteJSON(m)
	}
	h.mu.Unlock()
	if err != nil {
		log.Printf("hub: write to %s failed: %v", id, err)
		h.Remove(id)
	}
}

// Broadcast pushes one message to every viewer. Viewers whose write fails
// are dropped on the spot.
func (h *Hub) Broadcast(m Msg) {
	h.mu.Lock()
	var failed []string
	for id, conn := range h.viewers {
		if err := conn.WriteJSON(m); err != nil {
			log.Printf("hub: write to %s failed: %v", id, err)
			failed = append(failed, id)
		}
	}
	h.mu.Unlock()
	for _, id := range failed {
		h.Remove(id)
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}
