package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fastfingers/typerace/internal/api/request"
	"github.com/fastfingers/typerace/internal/api/response"
	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/race"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	registry *race.Registry
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *race.Registry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}

	owner := model.Player{
		ID:       model.PlayerID(req.PlayerID),
		Username: req.Username,
		Avatar:   req.Avatar,
	}
	room, err := h.registry.CreateRoom(owner, req.Name, req.Duration)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(room.Snapshot()))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	room, err := h.registry.FindByCode(model.RoomCode(code))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room.Snapshot()))
}
