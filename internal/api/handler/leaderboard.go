package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fastfingers/typerace/internal/api/request"
	"github.com/fastfingers/typerace/internal/api/response"
	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	service *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	results, err := h.service.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromResults(results))
}

// SubmitResult handles POST /api/v1/results
func (h *LeaderboardHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.WPM < 0 || req.Accuracy < 0 || req.Accuracy > 100 {
		WriteError(w, NewInvalidRequestError("wpm must be non-negative and accuracy within 0-100"))
		return
	}

	result := &model.GameResult{
		ID:         uuid.NewString(),
		Username:   req.Username,
		WPM:        req.WPM,
		Accuracy:   req.Accuracy,
		Errors:     req.Errors,
		TotalChars: req.TotalChars,
		RoomCode:   model.RoomCode(req.RoomCode),
		RecordedAt: time.Now().UTC(),
	}
	if err := h.service.SubmitResult(r.Context(), result); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"id": result.ID})
}
