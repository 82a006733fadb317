package model

import "time"

// PlayerID uniquely identifies a player across the system.
// Identity issuance lives upstream; the engine treats IDs as opaque.
type PlayerID string

// Player represents a participant in a race room.
// A player belongs to exactly one room for its lifetime there.
type Player struct {
	ID       PlayerID `json:"id"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`

	IsHost  bool `json:"is_host"`
	IsReady bool `json:"is_ready"`

	// Connected is false once the transport reports disconnection.
	// A disconnected player's metrics freeze at their last value and
	// remain eligible for final ranking.
	Connected bool `json:"connected"`

	// Live race metrics, replaced (not accumulated) on every update.
	Progress    float64 `json:"progress"` // percent of text typed, [0,100]
	WPM         int     `json:"wpm"`
	Accuracy    float64 `json:"accuracy"`
	Errors      int     `json:"errors"`
	TypedLength int     `json:"typed_length"`
	Finished    bool    `json:"finished"`

	JoinedAt time.Time `json:"joined_at"`
}

// ResetRace clears all per-race state ahead of a rematch.
func (p *Player) ResetRace() {
	p.IsReady = false
	p.Progress = 0
	p.WPM = 0
	p.Accuracy = 100
	p.Errors = 0
	p.TypedLength = 0
	p.Finished = false
}
