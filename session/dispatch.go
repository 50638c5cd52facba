package session

import (
	"github.com/oddtable/wordtable/clover"
	"github.com/oddtable/wordtable/duet"
	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/tiles"
)

// Move type names, per game.
const (
	MoveGiveClue = "give_clue"
	MoveGuess    = "guess"
	MoveEndTurn  = "end_turn"

	MovePlaceTiles = "place_tiles"
	MoveExchange   = "exchange"
	MovePass       = "pass"

	MoveSubmitClues = "submit_clues"
	MoveUpdateGuess = "update_guess"
	MoveSubmitGuess = "submit_guess"
	MoveAcknowledge = "acknowledge"
)

type giveCluePayload struct {
	Clue            string `json:"clue"`
	Count           int    `json:"count,omitempty"`
	IntendedIndices []int  `json:"intendedIndices,omitempty"`
}

func (p giveCluePayload) count() int {
	if p.Count > 0 {
		return p.Count
	}
	return len(p.IntendedIndices)
}

type guessPayload struct {
	Index int `json:"index"`
}

type placeTilesPayload struct {
	Placements []tiles.Placement `json:"placements"`
}

type exchangePayload struct {
	Tiles []string `json:"tiles"`
}

type submitCluesPayload struct {
	Clues []string `json:"clues"`
}

type updateGuessPayload struct {
	Slots    [clover.ZoneCount]*clover.Placement `json:"slots"`
	TakeOver bool                                `json:"takeOver,omitempty"`
}

// dispatch routes one move to its engine and folds the result back onto
// the record. The switch on game type is exhaustive; the board variant
// was checked before we got here.
func (c *Controller) dispatch(g *Game, seat int, env game.Envelope) (game.Outcome, error) {
	t := g.turn()
	switch g.Type {
	case game.TypeDuet:
		return c.dispatchDuet(g, t, seat, env)
	case game.TypeTiles:
		return c.dispatchTiles(g, t, seat, env)
	case game.TypeClover:
		return c.dispatchClover(g, t, seat, env)
	default:
		return game.Outcome{}, game.Corrupt("unknown game type")
	}
}

func (c *Controller) dispatchDuet(g *Game, t game.Turn, seat int, env game.Envelope) (game.Outcome, error) {
	b := g.Board.Duet
	var (
		nb  *duet.Board
		nt  game.Turn
		out game.Outcome
		err error
	)
	switch env.MoveType {
	case MoveGiveClue:
		var p giveCluePayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = duet.GiveClue(b, t, seat, p.Clue, p.count())
	case MoveGuess:
		var p guessPayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = duet.Guess(b, t, seat, p.Index)
	case MoveEndTurn:
		nb, nt, out, err = duet.EndTurn(b, t, seat)
	default:
		return game.Outcome{}, game.ErrBadRequest
	}
	if err != nil {
		return game.Outcome{}, err
	}
	g.Board.Duet = nb
	g.setTurn(nt)
	return out, nil
}

func (c *Controller) dispatchTiles(g *Game, t game.Turn, seat int, env game.Envelope) (game.Outcome, error) {
	b := g.Board.Tiles
	var (
		nb  *tiles.Board
		nt  game.Turn
		out game.Outcome
		err error
	)
	switch env.MoveType {
	case MovePlaceTiles:
		var p placeTilesPayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = tiles.PlaceTiles(b, t, seat, p.Placements, c.dict)
	case MoveExchange:
		var p exchangePayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = tiles.Exchange(b, t, seat, p.Tiles, c.newRand())
	case MovePass:
		nb, nt, out, err = tiles.Pass(b, t, seat)
	default:
		return game.Outcome{}, game.ErrBadRequest
	}
	if err != nil {
		return game.Outcome{}, err
	}
	g.Board.Tiles = nb
	g.setTurn(nt)
	return out, nil
}

func (c *Controller) dispatchClover(g *Game, t game.Turn, seat int, env game.Envelope) (game.Outcome, error) {
	b := g.Board.Clover
	var (
		nb  *clover.Board
		nt  game.Turn
		out game.Outcome
		err error
	)
	switch env.MoveType {
	case MoveSubmitClues:
		var p submitCluesPayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = clover.SubmitClues(b, t, seat, p.Clues)
	case MoveUpdateGuess:
		var p updateGuessPayload
		if derr := env.Decode(&p); derr != nil {
			return game.Outcome{}, derr
		}
		nb, nt, out, err = clover.UpdateGuess(b, t, seat, p.Slots, p.TakeOver)
	case MoveSubmitGuess:
		nb, nt, out, err = clover.SubmitGuess(b, t, seat)
	case MoveAcknowledge:
		nb, nt, out, err = clover.Acknowledge(b, t, seat)
	default:
		return game.Outcome{}, game.ErrBadRequest
	}
	if err != nil {
		return game.Outcome{}, err
	}
	g.Board.Clover = nb
	g.setTurn(nt)
	return out, nil
}
