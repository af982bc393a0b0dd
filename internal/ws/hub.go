// internal/ws/hub.go
//
// Per-room websocket fan-out.
// Connections are grouped by room and tagged with the seat they belong to,
// so a message can go to the whole room, only to named players, or be built
// per player. A write that fails or times out drops the connection.
//
// Each room has its own lock; a slow client only delays its own room.

package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

// WriteTimeout bounds a single write to one client.
const WriteTimeout = 3 * time.Second

// Message types pushed to clients.
const (
	TypeState    = "STATE_UPDATE"
	TypeEvent    = "EVENT"
	TypeRejected = "ACTION_REJECTED"
	TypeError    = "ERROR"
)

// Envelope is every server-to-client message.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Rejection is the private payload of TypeRejected.
type Rejection struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Conn is the slice of *websocket.Conn the hub writes to.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// roomConns is one room's connections, each tagged with its player id.
type roomConns struct {
	mu    sync.Mutex
	conns map[Conn]string
}

// Hub routes messages to the connections of each room.
// Lock order is Hub.mu before roomConns.mu; writes hold only roomConns.mu.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*roomConns
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*roomConns)}
}

// Add registers conn for playerID in roomID.
func (h *Hub) Add(roomID, playerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rc := h.rooms[roomID]
	if rc == nil {
		rc = &roomConns{conns: make(map[Conn]string)}
		h.rooms[roomID] = rc
	}
	rc.mu.Lock()
	rc.conns[conn] = playerID
	rc.mu.Unlock()
}

// Remove forgets conn.
func (h *Hub) Remove(roomID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rc := h.rooms[roomID]
	if rc == nil {
		return
	}
	rc.mu.Lock()
	delete(rc.conns, conn)
	empty := len(rc.conns) == 0
	rc.mu.Unlock()
	if empty {
		delete(h.rooms, roomID)
	}
}

// Count returns how many connections a room has.
func (h *Hub) Count(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	rc := h.rooms[roomID]
	if rc == nil {
		return 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.conns)
}

// Broadcast sends env to every connection in the room.
func (h *Hub) Broadcast(roomID string, env Envelope) {
	msg, ok := encode(env)
	if !ok {
		return
	}
	h.send(roomID, func(string) []byte { return msg })
}

// Send sends env only to connections of the listed players.
func (h *Hub) Send(roomID string, env Envelope, playerIDs ...string) {
	msg, ok := encode(env)
	if !ok {
		return
	}
	to := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		to[id] = true
	}
	h.send(roomID, func(player string) []byte {
		if to[player] {
			return msg
		}
		return nil
	})
}

// BroadcastEach sends every connection the envelope built for its player.
// build runs once per distinct player.
func (h *Hub) BroadcastEach(roomID string, build func(playerID string) Envelope) {
	cache := make(map[string][]byte)
	h.send(roomID, func(player string) []byte {
		msg, seen := cache[player]
		if !seen {
			msg, _ = encode(build(player))
			cache[player] = msg
		}
		return msg
	})
}

// send writes msgFor(player) to each connection; nil skips it.
func (h *Hub) send(roomID string, msgFor func(player string) []byte) {
	h.mu.Lock()
	rc := h.rooms[roomID]
	h.mu.Unlock()
	if rc == nil {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	for conn, player := range rc.conns {
		msg := msgFor(player)
		if msg == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
		err := conn.Write(ctx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			log.Debug().Err(err).Str("room", roomID).Str("player", player).Msg("drop ws client")
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(rc.conns, conn)
		}
	}
}

func encode(env Envelope) ([]byte, bool) {
	msg, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("type", env.Type).Msg("encode ws message")
		return nil, false
	}
	return msg, true
}
