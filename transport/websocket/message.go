package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	actionNewGame = "game:new"
	actionDrop    = "game:drop"
	actionState   = "game:state"
	actionPiece   = "game:piece"
	actionEnd     = "game:end"
	actionError   = "error"

	// dropStep is the per-row offset of the placeholder drop effect.
	dropStep = -50
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type DropPayload struct {
	Column int `json:"column"`
}

type NewGamePayload struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Players []*entity.Player `json:"players"`
}

type PiecePayload struct {
	Row        int            `json:"row"`
	Column     int            `json:"column"`
	Player     *entity.Player `json:"player"`
	DropOffset int            `json:"dropOffset"`
}

type EndPayload struct {
	Message string `json:"message"`
}

type StatePayload struct {
	Game   *entity.Game `json:"game,omitempty"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func newMessage(action string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}

func dropOffset(row int) int {
	return dropStep * (row + 2)
}
