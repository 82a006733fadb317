// Package ws is the realtime transport. A Hub fans engine events out
// to every socket in a room; the HubManager maps room codes to hubs
// and is the engine's notifier. The engine publishes while holding
// the room lock, so everything here is buffered and drop-on-full
// rather than blocking.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/race"
)

// Hub manages the connected sockets for a single room
type Hub struct {
	roomCode model.RoomCode
	clients  map[*Client]bool
	mu       sync.RWMutex
	logger   *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a hub for a room
func NewHub(roomCode model.RoomCode, logger *slog.Logger) *Hub {
	return &Hub{
		roomCode:   roomCode,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("room_code", string(roomCode))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("socket registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				count := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("socket unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", count))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("broadcast dropped for slow clients", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a socket to the hub. No-op once the hub is closed.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a socket from the hub. No-op once the hub is
// closed; sockets racing a room teardown must not block forever.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for every socket in the room. Never
// blocks; drops when the hub loop cannot keep up.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast dropped, hub buffer full")
	}
}

// Close shuts down the hub and disconnects its sockets
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected sockets
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager owns one hub per active room and delivers engine events
// to them
type HubManager struct {
	hubs   map[model.RoomCode]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// The manager is the engine's broadcast collaborator
var _ race.Notifier = (*HubManager)(nil)

// NewHubManager creates an empty HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.RoomCode]*Hub),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// Publish implements race.Notifier. Rooms call this while holding
// their own lock, so it must not call back into the engine and must
// not block.
func (m *HubManager) Publish(code model.RoomCode, event model.Event) {
	data, err := encodeEvent(event)
	if err != nil {
		m.logger.Error("event encode failed", slog.String("error", err.Error()))
		return
	}

	hub := m.GetHub(code)
	if hub == nil {
		return
	}
	hub.Broadcast(data)

	if event.Type == model.EventRoomClosed {
		// Tear the hub down off the engine's goroutine
		go m.RemoveHub(code)
	}
}

// GetOrCreateHub returns the room's hub, creating and starting one if
// needed
func (m *HubManager) GetOrCreateHub(code model.RoomCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[code]; ok {
		return hub
	}

	hub := NewHub(code, m.logger)
	m.hubs[code] = hub
	go hub.Run()
	return hub
}

// GetHub returns the room's hub, or nil
func (m *HubManager) GetHub(code model.RoomCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[code]
}

// RemoveHub closes and forgets a room's hub
func (m *HubManager) RemoveHub(code model.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[code]; ok {
		hub.Close()
		delete(m.hubs, code)
		m.logger.Info("hub removed", slog.String("room_code", string(code)))
	}
}

// CleanupEmptyHubs drops hubs with no connected sockets
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for code, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, code)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("empty hubs cleaned up", slog.Int("removed", removed))
	}
}
