package play

import (
	"github.com/beka-birhanu/drivom-api/api/level"
	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
)

// Message types sent to the client.
const (
	MessageTypeLevel = "level"
	MessageTypeFrame = "frame"
	MessageTypeEnd   = "end"
)

// InputMessage is what the client sends: the currently held controls.
type InputMessage struct {
	Input vehicle.InputState `json:"input"`
}

// ServerMessage is the envelope for everything the server pushes over the
// socket. Exactly one payload field is set, selected by Type.
type ServerMessage struct {
	Type      string               `json:"type"`
	SessionID string               `json:"session_id,omitempty"`
	Level     *level.LevelResponse `json:"level,omitempty"`
	Frame     *dmn.Frame           `json:"frame,omitempty"`
}
