package request

// CreateGuestRequest is the request body for creating a guest identity
type CreateGuestRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Duration int    `json:"duration,omitempty"`

	// Creator identity; a missing player_id makes a fresh guest
	PlayerID string `json:"player_id,omitempty"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// SubmitResultRequest is the request body for recording a finished
// game from an external source
type SubmitResultRequest struct {
	Username   string  `json:"username"`
	WPM        int     `json:"wpm"`
	Accuracy   float64 `json:"accuracy"`
	Errors     int     `json:"errors"`
	TotalChars int     `json:"total_chars"`
	RoomCode   string  `json:"room_code,omitempty"`
}
