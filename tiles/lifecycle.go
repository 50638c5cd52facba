package tiles

import (
	"fmt"
	"math/rand"

	"github.com/oddtable/wordtable/game"
)

// Exchange swaps named rack tiles for fresh ones. Only allowed while the
// bag still holds a full rack's worth. An exchange is scoreless and counts
// toward the stalemate limit.
func Exchange(b *Board, t game.Turn, seat int, swap []string, rng *rand.Rand) (*Board, game.Turn, game.Outcome, error) {
	if seat != t.Seat {
		return nil, t, game.Outcome{}, game.ErrNotYourTurn
	}
	if len(swap) == 0 {
		return nil, t, game.Outcome{}, game.Invalid("NOTILES", "nothing to exchange")
	}
	if len(b.Bag) < RackSize {
		return nil, t, game.Outcome{}, game.Invalid("BAGLOW", "too few tiles left to exchange")
	}

	nb := b.clone()
	rack := nb.Racks[seat]
	for _, tile := range swap {
		var ok bool
		rack, ok = game.StringListWithout(rack, tile)
		if !ok {
			return nil, t, game.Outcome{}, game.Invalid("NOTINRACK", fmt.Sprintf("tile %q is not in your rack", tile))
		}
	}
	drawn := nb.draw(len(swap))
	nb.Racks[seat] = append(rack, drawn...)
	nb.Bag = append(nb.Bag, swap...)
	if rng != nil {
		rng.Shuffle(len(nb.Bag), func(i, j int) { nb.Bag[i], nb.Bag[j] = nb.Bag[j], nb.Bag[i] })
	}
	nb.ScorelessTurns++
	nb.TurnNumber++

	out := game.Outcome{Detail: map[string]int{"exchanged": len(swap)}}.WithNews("", fmt.Sprintf("exchanged %d tiles", len(swap)))
	return advance(nb, t, seat, out)
}

// Pass gives the turn up, scoring nothing.
func Pass(b *Board, t game.Turn, seat int) (*Board, game.Turn, game.Outcome, error) {
	if seat != t.Seat {
		return nil, t, game.Outcome{}, game.ErrNotYourTurn
	}
	nb := b.clone()
	nb.ScorelessTurns++
	nb.TurnNumber++
	out := game.Outcome{}.WithNews("", "passed")
	return advance(nb, t, seat, out)
}

// advance rotates the turn, ending the game first if the scoreless run
// has hit the limit.
func advance(nb *Board, t game.Turn, seat int, out game.Outcome) (*Board, game.Turn, game.Outcome, error) {
	if nb.ScorelessTurns >= ScorelessLimit {
		out.Ended = true
		out.Winner = nb.highestSeat()
		out.Result = game.ResultWin
		out = out.WithNews("", "game over: too many scoreless turns")
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil
	}
	nt := game.Turn{Seat: (seat + 1) % len(nb.Racks), Phase: t.Phase}
	return nb, nt, out, nil
}
