package server

import (
	"encoding/json"

	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/session"
)

// WsJSONMessage is the frame sent to websocket subscribers.
type WsJSONMessage struct {
	Head string          `json:"head"`
	Data json.RawMessage `json:"data"`
}

// GameUpdate is pushed to every subscriber of a game after a move commits.
type GameUpdate struct {
	Game *session.Game `json:"game"`
	News []game.Change `json:"news,omitempty"`
}

type clientBundle struct {
	downCh chan WsJSONMessage
}

type subscribeMsg struct {
	GameID   string
	ClientID string
	Client   clientBundle
	Rep      chan error
}

type unsubscribeMsg struct {
	GameID   string
	ClientID string
}

type committedMsg struct {
	Game *session.Game
	News []game.Change
}
