package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/dominoes-backend/internal/entity"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool   // whether this frame is the last one of the message
	opCode  byte   // operation code describing the payload type
	length  uint64 // payload length
	payload []byte // frame payload
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the request/response body of every action.
type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *game.Position `json:"move,omitempty"`
	Error  string         `json:"error,omitempty"`
}
