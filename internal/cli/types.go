package cli

import "time"

// Player is a guest identity returned by the API
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// RoomPlayer is one member of a room
type RoomPlayer struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	IsHost    bool    `json:"is_host"`
	IsReady   bool    `json:"is_ready"`
	Connected bool    `json:"connected"`
	Progress  float64 `json:"progress"`
	WPM       int     `json:"wpm"`
}

// Room is a room as returned by the API
type Room struct {
	ID         string       `json:"id"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Status     string       `json:"status"`
	Players    []RoomPlayer `json:"players"`
	MaxPlayers int          `json:"max_players"`
	Duration   int          `json:"duration"`
	Text       string       `json:"text"`
	CreatedAt  time.Time    `json:"created_at"`
}

// LeaderboardEntry is one line of the leaderboard
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	Username   string    `json:"username"`
	WPM        int       `json:"wpm"`
	Accuracy   float64   `json:"accuracy"`
	Errors     int       `json:"errors"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LeaderboardResult is the leaderboard endpoint's body
type LeaderboardResult struct {
	Results []LeaderboardEntry `json:"results"`
}

// HealthResult is the health endpoint's body
type HealthResult struct {
	Status      string `json:"status"`
	ActiveRooms int    `json:"active_rooms"`
}
