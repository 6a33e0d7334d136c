// Package live hosts the join-live rooms: one broadcast room per conference
// whose status is live, carried over websockets.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message is the wire format exchanged in a live room.
type Message struct {
	Type      string    `json:"type"` // "joined", "left", "chat"
	UserID    string    `json:"user_id,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type room struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]string // conn -> user id
}

// Hub tracks one room per live conference.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]*room // conference id -> room
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		rooms:  map[string]*room{},
	}
}

func (h *Hub) room(conferenceID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[conferenceID]
	if !ok {
		r = &room{conns: map[*websocket.Conn]string{}}
		h.rooms[conferenceID] = r
	}
	return r
}

// Join adds a connection to the conference's room, announces it, and pumps
// chat messages until the connection closes. Blocks until then.
func (h *Hub) Join(conferenceID, userID string, conn *websocket.Conn) {
	r := h.room(conferenceID)

	r.mu.Lock()
	r.conns[conn] = userID
	r.mu.Unlock()
	h.broadcast(r, Message{Type: "joined", UserID: userID, Timestamp: time.Now().UTC()})

	defer func() {
		r.mu.Lock()
		delete(r.conns, conn)
		r.mu.Unlock()
		h.broadcast(r, Message{Type: "left", UserID: userID, Timestamp: time.Now().UTC()})
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("invalid live message", "conference_id", conferenceID, "error", err)
			continue
		}
		if msg.Type != "chat" || msg.Content == "" {
			continue
		}
		h.broadcast(r, Message{
			Type:      "chat",
			UserID:    userID,
			Content:   msg.Content,
			Timestamp: time.Now().UTC(),
		})
	}
}

func (h *Hub) broadcast(r *room, msg Message) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.conns {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			conn.Close()
			delete(r.conns, conn)
		}
	}
}

// Occupancy returns the number of open connections in a conference's room.
func (h *Hub) Occupancy(conferenceID string) int {
	h.mu.Lock()
	r, ok := h.rooms[conferenceID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
