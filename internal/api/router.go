// Package api is the server's JSON surface: identity handoff, room
// create and lookup, the leaderboard, health, and the websocket mount.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fastfingers/typerace/internal/api/handler"
	apimiddleware "github.com/fastfingers/typerace/internal/api/middleware"
	"github.com/fastfingers/typerace/internal/api/response"
	"github.com/fastfingers/typerace/internal/middleware"
	"github.com/fastfingers/typerace/internal/services/leaderboard"
	"github.com/fastfingers/typerace/internal/services/race"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Registry    *race.Registry
	Leaderboard *leaderboard.Service
	// Socket is the realtime endpoint mounted at /ws
	Socket http.Handler
}

// NewRouter creates the router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler()
	roomHandler := handler.NewRoomHandler(cfg.Registry)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Leaderboard)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)

	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/results", leaderboardHandler.SubmitResult).Methods(http.MethodPost)

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.HealthResponse{
			Status:      "ok",
			ActiveRooms: cfg.Registry.RoomCount(),
		})
	}).Methods(http.MethodGet)

	// The socket endpoint sits outside the JSON subrouter but still
	// gets recovery; the logging wrapper supports hijacking.
	if cfg.Socket != nil {
		r.Handle("/ws", recoveryMiddleware(loggingMiddleware(cfg.Socket))).Methods(http.MethodGet)
	}

	return r
}
