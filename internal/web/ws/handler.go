package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/race"
)

// Handler upgrades connections and routes client messages into the
// race engine. One Handler serves every room.
type Handler struct {
	registry *race.Registry
	manager  *HubManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a websocket handler
func NewHandler(registry *race.Registry, manager *HubManager, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		manager:  manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are browser pages served from anywhere
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the connection and runs the socket's pumps.
// Identity comes from query parameters; an absent player_id makes a
// fresh guest.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		playerID = uuid.NewString()
	}
	username := r.URL.Query().Get("username")
	if username == "" {
		username = fmt.Sprintf("guest-%.8s", playerID)
	}
	avatar := r.URL.Query().Get("avatar")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(h, conn, model.PlayerID(playerID), username, avatar)
	go client.writePump()
	client.readPump()
}

// dispatch handles one decoded client message on the read pump's
// goroutine, so per-client handling is naturally serialized
func (h *Handler) dispatch(c *Client, raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendDirect(encodeError("bad_request", "malformed message"))
		return
	}

	switch msg.Type {
	case MessageCreateRoom:
		h.handleCreateRoom(c, msg)
	case MessageJoinRoom:
		h.handleJoinRoom(c, msg)
	case MessageSetReady:
		h.handleSetReady(c, msg)
	case MessageUpdateProgress:
		h.handleUpdateProgress(c, msg)
	case MessageLeaveRoom:
		h.handleLeaveRoom(c)
	default:
		c.sendDirect(encodeError("unknown_type", "unknown message type: "+msg.Type))
	}
}

func (h *Handler) handleCreateRoom(c *Client, msg ClientMessage) {
	if c.room != nil {
		c.sendDirect(encodeError("already_in_room", "leave the current room first"))
		return
	}

	room, err := h.registry.CreateRoom(c.player(), msg.RoomName, msg.Duration)
	if err != nil {
		c.sendDirect(h.encodeEngineError(err))
		return
	}
	h.attach(c, room)
}

func (h *Handler) handleJoinRoom(c *Client, msg ClientMessage) {
	if c.room != nil {
		c.sendDirect(encodeError("already_in_room", "leave the current room first"))
		return
	}

	room, err := h.registry.FindByCode(model.RoomCode(msg.RoomCode))
	if err != nil {
		c.sendDirect(h.encodeEngineError(err))
		return
	}
	if _, err := room.Join(c.player()); err != nil {
		c.sendDirect(h.encodeEngineError(err))
		return
	}
	h.attach(c, room)
}

func (h *Handler) handleSetReady(c *Client, msg ClientMessage) {
	if c.room == nil {
		c.sendDirect(encodeError("not_in_room", "join a room first"))
		return
	}
	if err := c.room.SetReady(c.playerID, msg.Ready); err != nil {
		c.sendDirect(h.encodeEngineError(err))
	}
}

func (h *Handler) handleUpdateProgress(c *Client, msg ClientMessage) {
	if c.room == nil {
		c.sendDirect(encodeError("not_in_room", "join a room first"))
		return
	}
	// Keystroke spam from one socket must not starve the room
	if !c.progress.Allow() {
		return
	}
	if err := c.room.SubmitProgress(c.playerID, msg.Typed); err != nil {
		c.sendDirect(h.encodeEngineError(err))
	}
}

func (h *Handler) handleLeaveRoom(c *Client) {
	if c.room == nil {
		return
	}
	room, hub := c.room, c.hub
	c.room, c.hub = nil, nil

	if err := room.Leave(c.playerID); err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		c.logger.Warn("leave failed", slog.String("error", err.Error()))
	}
	if hub != nil {
		hub.Unregister(c)
	}
}

// attach binds the client to its room's hub and hands it a snapshot,
// since broadcasts sent before registration cannot reach it
func (h *Handler) attach(c *Client, room *race.Room) {
	c.room = room
	c.hub = h.manager.GetOrCreateHub(room.Code())
	c.hub.Register(c)

	snap := room.Snapshot()
	data, err := encodeEvent(model.Event{
		Type:      model.EventRoomState,
		RoomCode:  room.Code(),
		Timestamp: time.Now(),
		Payload:   model.RoomStatePayload{Room: snap},
	})
	if err != nil {
		c.logger.Error("snapshot encode failed", slog.String("error", err.Error()))
		return
	}
	c.sendDirect(data)
}

// disconnect runs when the read pump exits for any reason
func (h *Handler) disconnect(c *Client) {
	if c.room != nil {
		c.room.Disconnect(c.playerID)
	}
	if c.hub != nil {
		c.hub.Unregister(c)
	}
	c.Close()
}

func (c *Client) player() model.Player {
	return model.Player{
		ID:       c.playerID,
		Username: c.username,
		Avatar:   c.avatar,
	}
}

// encodeEngineError maps engine sentinels to wire error codes
func (h *Handler) encodeEngineError(err error) []byte {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return encodeError("room_not_found", "room not found")
	case errors.Is(err, model.ErrRoomFull):
		return encodeError("room_full", "room is full")
	case errors.Is(err, model.ErrInvalidState):
		return encodeError("invalid_state", "operation not valid in the room's current phase")
	case errors.Is(err, model.ErrInvalidRoomName):
		return encodeError("invalid_room_name", "room name must be 1-30 characters")
	case errors.Is(err, model.ErrPlayerNotFound):
		return encodeError("player_not_found", "player not in room")
	default:
		h.logger.Error("unexpected engine error", slog.String("error", err.Error()))
		return encodeError("internal", "internal error")
	}
}
