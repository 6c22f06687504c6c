// Package ws pushes live event updates to websocket subscribers.
// Clients join and leave per-event broadcast groups; delivery is
// best-effort and a slow or broken subscriber is dropped, never
// waited on.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/votehub/api/internal/core/domain"
)

const writeTimeout = 5 * time.Second

type message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type clientCommand struct {
	Action  string    `json:"action"`
	EventID uuid.UUID `json:"event_id"`
}

type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]map[uuid.UUID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]map[uuid.UUID]struct{}),
	}
}

// ServeHTTP upgrades the connection and reads join/leave commands
// until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = make(map[uuid.UUID]struct{})
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		var cmd clientCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		if cmd.EventID == uuid.Nil {
			continue
		}
		h.handleCommand(conn, cmd)
	}
}

// handleCommand applies a join/leave to the connection's room set. A
// broadcast may have evicted the connection while its reader still had
// buffered commands, so the entry may already be gone.
func (h *Hub) handleCommand(conn *websocket.Conn, cmd clientCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.conns[conn]
	if !ok {
		return
	}
	switch cmd.Action {
	case "join":
		rooms[cmd.EventID] = struct{}{}
	case "leave":
		delete(rooms, cmd.EventID)
	}
}

func (h *Hub) EventCreated(eventID uuid.UUID, title string) error {
	// Event creation is announced to every subscriber, not just a
	// room: nobody has joined a brand-new event yet.
	return h.broadcast(uuid.Nil, message{
		Event: "eventCreated",
		Data:  map[string]any{"event_id": eventID, "title": title},
	})
}

func (h *Hub) VoteRecorded(eventID uuid.UUID) error {
	return h.broadcast(eventID, message{
		Event: "voteRecorded",
		Data:  map[string]any{"event_id": eventID},
	})
}

func (h *Hub) TallyChanged(eventID uuid.UUID, tally *domain.EventTally) error {
	return h.broadcast(eventID, message{
		Event: "tallyChanged",
		Data: map[string]any{
			"event_id":     eventID,
			"single_multi": tally.SingleMulti,
			"rank":         tally.Rank,
		},
	})
}

// broadcast sends to every connection in the event's group, or to all
// connections when eventID is uuid.Nil. Write failures evict the
// subscriber; they are never reported to the caller.
func (h *Hub) broadcast(eventID uuid.UUID, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// The lock also serializes writes; gorilla connections support a
	// single concurrent writer.
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, rooms := range h.conns {
		if eventID != uuid.Nil {
			if _, ok := rooms[eventID]; !ok {
				continue
			}
		}
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
	return nil
}
