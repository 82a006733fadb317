package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidState    = errors.New("operation not valid in current room state")
	ErrInvalidRoomName = errors.New("room name must be between 1 and 30 characters")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found in room")
)
