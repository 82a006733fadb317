package model

import "time"

// RoomCode is the human-readable identifier for joining rooms.
// Always six uppercase alphanumeric characters.
type RoomCode string

// RoomStatus represents the current phase of a room's lifecycle
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Joinable, collecting ready flags
	RoomStatusStarting RoomStatus = "starting" // All ready, grace countdown running
	RoomStatusActive   RoomStatus = "active"   // Race in progress
	RoomStatusFinished RoomStatus = "finished" // Race over, about to reset for rematch
)

const (
	// RoomNameMaxLength bounds the display label of a room
	RoomNameMaxLength = 30
	// DefaultMaxPlayers is the fixed room capacity
	DefaultMaxPlayers = 4
	// DefaultDuration is the race length in seconds when none is requested
	DefaultDuration = 60
)

// Room holds the full state of one race session. All mutation happens
// under the owning race.Room's lock; external readers only ever see
// deep copies produced by Clone.
type Room struct {
	ID         string     `json:"id"`
	Code       RoomCode   `json:"code"`
	Name       string     `json:"name"`
	Players    []*Player  `json:"players"` // insertion order = join order
	MaxPlayers int        `json:"max_players"`
	Text       string     `json:"text"`     // immutable after creation
	Duration   int        `json:"duration"` // seconds, immutable after creation
	Status     RoomStatus `json:"status"`
	Remaining  int        `json:"remaining"` // seconds left, meaningful in active only
	CreatedAt  time.Time  `json:"created_at"`
}

// GetPlayer returns the player with the given ID, or nil if absent
func (r *Room) GetPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// GetHost returns the current host, or nil if the room is empty
func (r *Room) GetHost() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// IsFull reports whether the room is at capacity
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// AllReady reports whether the start condition holds: more than one
// player, every one of them ready.
func (r *Room) AllReady() bool {
	if len(r.Players) < 2 {
		return false
	}
	for _, p := range r.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// AllConnectedFinished reports whether every still-connected player has
// typed the full text. False when nobody is connected.
func (r *Room) AllConnectedFinished() bool {
	any := false
	for _, p := range r.Players {
		if !p.Connected {
			continue
		}
		any = true
		if !p.Finished {
			return false
		}
	}
	return any
}

// Clone returns a deep copy safe to hand outside the room's lock
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		c.Players[i] = &cp
	}
	return &c
}
