package ipc

import "github.com/nstehr/necro/necro-core/model"

// These constants must stay in sync with the host's message names.
const (
	TypeHello        = "hello"
	TypeAck          = "ack"
	TypeGameState    = "game_state"
	TypeGameOver     = "game_over"
	TypeActionResult = "action_result"
)

type HelloMessage struct {
	Player   string `json:"player"`
	Name     string `json:"name"`
	Opponent string `json:"opponent"`
	Session  string `json:"session,omitempty"` // host may leave this empty
}

type AckMessage struct {
	Status string `json:"status"`
	Turn   int    `json:"turn,omitempty"`
}

// GameOverMessage ends the match. The reasons are free text from the host.
type GameOverMessage struct {
	Won        bool   `json:"won"`
	Turn       int    `json:"turn"`
	WinReason  string `json:"winReason,omitempty"`
	LoseReason string `json:"loseReason,omitempty"`
}

// ActionResult answers every command. Unit is set for accepted spawns.
type ActionResult struct {
	OK   bool        `json:"ok"`
	Unit *model.Unit `json:"unit,omitempty"`
}
