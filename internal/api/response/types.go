// Package response holds the API's outbound view types.
package response

import (
	"time"

	"github.com/fastfingers/typerace/internal/model"
)

// Player represents a player identity in API responses
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Room represents a room in API responses
type Room struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Status     string         `json:"status"`
	Players    []model.Player `json:"players"`
	MaxPlayers int            `json:"max_players"`
	Duration   int            `json:"duration"`
	Remaining  int            `json:"remaining,omitempty"`
	Text       string         `json:"text"`
	CreatedAt  time.Time      `json:"created_at"`
}

// RoomFromModel converts a room snapshot to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]model.Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, *p)
	}
	return Room{
		ID:         r.ID,
		Code:       string(r.Code),
		Name:       r.Name,
		Status:     string(r.Status),
		Players:    players,
		MaxPlayers: r.MaxPlayers,
		Duration:   r.Duration,
		Remaining:  r.Remaining,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}

// LeaderboardEntry is one line of the leaderboard
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	Username   string    `json:"username"`
	WPM        int       `json:"wpm"`
	Accuracy   float64   `json:"accuracy"`
	Errors     int       `json:"errors"`
	TotalChars int       `json:"total_chars"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LeaderboardResponse is the leaderboard endpoint's body
type LeaderboardResponse struct {
	Results []LeaderboardEntry `json:"results"`
}

// LeaderboardFromResults converts stored results to ranked entries
func LeaderboardFromResults(results []*model.GameResult) LeaderboardResponse {
	entries := make([]LeaderboardEntry, 0, len(results))
	for i, r := range results {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			Username:   r.Username,
			WPM:        r.WPM,
			Accuracy:   r.Accuracy,
			Errors:     r.Errors,
			TotalChars: r.TotalChars,
			RecordedAt: r.RecordedAt,
		})
	}
	return LeaderboardResponse{Results: entries}
}

// HealthResponse is the health endpoint's body
type HealthResponse struct {
	Status      string `json:"status"`
	ActiveRooms int    `json:"active_rooms"`
}
