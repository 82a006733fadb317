package model

import "time"

// GameResult is the finished-game summary handed to the leaderboard
// sink. Persistence is a separate concern from the race engine; the
// engine only emits these.
type GameResult struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	WPM        int       `json:"wpm"`
	Accuracy   float64   `json:"accuracy"`
	Errors     int       `json:"errors"`
	TotalChars int       `json:"total_chars"`
	RoomCode   RoomCode  `json:"room_code,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
