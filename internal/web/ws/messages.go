package ws

import (
	"encoding/json"

	"github.com/fastfingers/typerace/internal/model"
)

// Client-to-server message types
const (
	MessageCreateRoom     = "create_room"
	MessageJoinRoom       = "join_room"
	MessageSetReady       = "set_ready"
	MessageUpdateProgress = "update_progress"
	MessageLeaveRoom      = "leave_room"
)

// ClientMessage is the envelope for every client-to-server message.
// Fields beyond Type are populated depending on the message type.
type ClientMessage struct {
	Type string `json:"type"`

	// create_room
	RoomName string `json:"room_name,omitempty"`
	Duration int    `json:"duration,omitempty"`

	// join_room
	RoomCode string `json:"room_code,omitempty"`

	// set_ready
	Ready bool `json:"ready,omitempty"`

	// update_progress
	Typed string `json:"typed,omitempty"`
}

// ErrorMessage is sent only to the client whose request failed;
// engine events always go through the room hub.
type ErrorMessage struct {
	Type  string       `json:"type"`
	Error ErrorPayload `json:"error"`
}

// ErrorPayload carries a machine-readable code and a human message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func encodeError(code, message string) []byte {
	data, err := json.Marshal(ErrorMessage{
		Type:  "error",
		Error: ErrorPayload{Code: code, Message: message},
	})
	if err != nil {
		return []byte(`{"type":"error","error":{"code":"internal","message":"internal error"}}`)
	}
	return data
}

func encodeEvent(event model.Event) ([]byte, error) {
	return json.Marshal(event)
}
