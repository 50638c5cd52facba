// Package session owns the game record and the controller that applies
// moves to it. Engines stay pure; this layer loads state, dispatches,
// and commits with optimistic concurrency.
package session

import (
	"time"

	"github.com/oddtable/wordtable/clover"
	"github.com/oddtable/wordtable/duet"
	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/tiles"
)

// BoardState is a tagged union: exactly one variant is set, and it must
// match the game type. The variants keep tile fields off codenames
// records and vice versa.
type BoardState struct {
	Duet   *duet.Board   `json:"duet,omitempty"`
	Tiles  *tiles.Board  `json:"tiles,omitempty"`
	Clover *clover.Board `json:"clover,omitempty"`
}

// check verifies the variant matches the tag.
func (b BoardState) check(t game.Type) error {
	set := 0
	if b.Duet != nil {
		set++
	}
	if b.Tiles != nil {
		set++
	}
	if b.Clover != nil {
		set++
	}
	if set != 1 {
		return game.Corrupt("board state must have exactly one variant")
	}
	switch t {
	case game.TypeDuet:
		if b.Duet == nil {
			return game.Corrupt("board variant does not match game type")
		}
	case game.TypeTiles:
		if b.Tiles == nil {
			return game.Corrupt("board variant does not match game type")
		}
	case game.TypeClover:
		if b.Clover == nil {
			return game.Corrupt("board variant does not match game type")
		}
	default:
		return game.Corrupt("unknown game type")
	}
	return nil
}

// Game is the persisted root aggregate. Its JSON shape is the wire format
// other parts of the system consume.
type Game struct {
	ID          string             `json:"id"`
	Type        game.Type          `json:"game_type"`
	Status      game.Status        `json:"status"`
	Phase       game.Phase         `json:"phase"`
	CurrentTurn int                `json:"current_turn"`
	Players     []game.PlayerState `json:"players"`
	Board       BoardState         `json:"board_state"`
	Result      game.Result        `json:"result,omitempty"`
	Winner      *int               `json:"winner,omitempty"`
	Version     int                `json:"version"`
	CreatedAt   time.Time          `json:"created_at"`
}

// seatLimits gives the player counts per game type.
func seatLimits(t game.Type) (min, max int) {
	switch t {
	case game.TypeDuet:
		return 2, 2
	case game.TypeTiles:
		return 2, 4
	case game.TypeClover:
		return 2, 4
	}
	return 0, 0
}

// seatOf finds a player's seat, or -1.
func (g *Game) seatOf(player string) int {
	for _, p := range g.Players {
		if p.Name == player {
			return p.Seat
		}
	}
	return -1
}

// turn extracts the engine-facing turn view.
func (g *Game) turn() game.Turn {
	return game.Turn{Seat: g.CurrentTurn, Phase: g.Phase}
}

func (g *Game) setTurn(t game.Turn) {
	g.CurrentTurn = t.Seat
	g.Phase = t.Phase
}
