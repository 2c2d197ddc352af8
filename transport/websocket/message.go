package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/render"
)

const (
	actionPly      = "game:ply"
	actionFinished = "game:finished"
	actionError    = "error"
)

const writeWait = 10 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Board string       `json:"board,omitempty"`
	Error string       `json:"error,omitempty"`
}

func gamePayload(game *entity.Game) ResponsePayload {
	return ResponsePayload{
		Game:  game,
		Board: render.Text(game.Board, game.Size, game.Dimensions),
	}
}

func sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadBytes}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func sendError(conn *websocket.Conn, message string) error {
	return sendMessage(conn, actionError, ResponsePayload{Error: message})
}
