package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/fastfingers/typerace/internal/api/request"
	"github.com/fastfingers/typerace/internal/api/response"
)

// PlayerHandler handles player identity endpoints. Identities are
// opaque: the server mints an id and the client carries it on the
// websocket query string from then on.
type PlayerHandler struct{}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler() *PlayerHandler {
	return &PlayerHandler{}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	response.JSON(w, http.StatusCreated, response.Player{
		ID:       uuid.NewString(),
		Username: req.Username,
		Avatar:   req.Avatar,
	})
}
