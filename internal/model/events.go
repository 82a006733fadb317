package model

import "time"

// EventType identifies the type of event pushed to clients
type EventType string

const (
	// EventRoomState carries a full room snapshot after any
	// membership or readiness change
	EventRoomState EventType = "room_state"
	// EventPlayerProgress carries the live standings during a race
	EventPlayerProgress EventType = "player_progress"
	// EventGameStarting announces the grace countdown
	EventGameStarting EventType = "game_starting"
	// EventGameTick fires once per second while a race is active
	EventGameTick EventType = "game_tick"
	// EventGameEnd carries final placements when a race finishes
	EventGameEnd EventType = "game_end"
	// EventRoomClosed announces eviction of an empty room
	EventRoomClosed EventType = "room_closed"
)

// Event is the envelope for all pushed messages
type Event struct {
	Type      EventType `json:"type"`
	RoomCode  RoomCode  `json:"room_code"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RoomStatePayload contains data for room state events
type RoomStatePayload struct {
	Room *Room `json:"room"`
}

// GameStartingPayload contains data for game starting events
type GameStartingPayload struct {
	GracePeriodMs int64 `json:"grace_period_ms"`
}

// GameTickPayload contains data for per-second tick events
type GameTickPayload struct {
	Remaining int `json:"remaining"`
}

// PlayerStanding is one entry of the live ranking
type PlayerStanding struct {
	Rank     int      `json:"rank"`
	PlayerID PlayerID `json:"player_id"`
	Username string   `json:"username"`
	Progress float64  `json:"progress"`
	WPM      int      `json:"wpm"`
	Accuracy float64  `json:"accuracy"`
	Errors   int      `json:"errors"`
	Finished bool     `json:"finished"`
}

// PlayerProgressPayload contains the ranking-ordered standings
type PlayerProgressPayload struct {
	Standings []PlayerStanding `json:"standings"`
}

// PlayerResult is one player's final line in a finished game
type PlayerResult struct {
	Rank       int      `json:"rank"`
	PlayerID   PlayerID `json:"player_id"`
	Username   string   `json:"username"`
	WPM        int      `json:"wpm"`
	Accuracy   float64  `json:"accuracy"`
	Errors     int      `json:"errors"`
	TotalChars int      `json:"total_chars"`
}

// GameEndPayload contains data for game end events
type GameEndPayload struct {
	Ranking []PlayerResult `json:"ranking"`
}
