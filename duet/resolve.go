package duet

import (
	"fmt"

	"github.com/oddtable/wordtable/game"
)

// GuessResult is what the guesser learns from a resolved guess.
type GuessResult struct {
	Word     string   `json:"word"`
	CardType CardType `json:"cardType"`
	Ended    bool     `json:"ended"`
}

// GiveClue spends a timer token and opens the guessing phase. Only the
// seat whose turn it is may give a clue, and the clue must pass the
// legality check at the board's strictness.
func GiveClue(b *Board, t game.Turn, seat int, word string, count int) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseClue {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat != t.Seat {
		return nil, t, game.Outcome{}, game.ErrNotYourTurn
	}
	if ok, reason := CheckClue(word, b.inPlay(), b.Strictness); !ok {
		return nil, t, game.Outcome{}, game.Invalid("BADCLUE", reason)
	}

	nb := b.clone()
	if nb.TimerTokens > 0 {
		nb.TimerTokens--
	}
	if nb.TimerTokens == 0 {
		// monotonic: once entered, sudden death never resets
		nb.SuddenDeath = true
	}
	nb.CurrentClue = &Clue{Word: word, Count: count, Seat: seat}
	nb.GuessesThisTurn = 0

	nt := game.Turn{Seat: t.Seat, Phase: game.PhaseGuess}
	out := game.Outcome{}.WithNews("", fmt.Sprintf("clue given: %s %d", word, count))
	return nb, nt, out, nil
}

// Guess resolves a board index against the clue giver's key side. The
// partner guesses, never the giver. Re-guessing a word already revealed
// as an agent is a no-op returning the existing result.
func Guess(b *Board, t game.Turn, seat int, index int) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseGuess {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat == t.Seat {
		return nil, t, game.Outcome{}, game.ErrWrongSeat
	}
	if index < 0 || index >= len(b.Words) {
		return nil, t, game.Outcome{}, game.Invalid("BADINDEX", "no such board word")
	}

	word := b.Words[index]
	if rv, ok := b.Revealed[word]; ok && rv.Type == CardAgent {
		out := game.Outcome{Detail: GuessResult{Word: word, CardType: CardAgent}}
		return b, t, out, nil
	}

	giver := t.Seat
	if giver < 0 || giver > 1 {
		return nil, t, game.Outcome{}, game.Corrupt("turn seat outside key card")
	}
	ct := b.Key.Sides[giver].TypeOf(index)

	nb := b.clone()
	nb.Revealed[word] = Reveal{Type: ct, GuessedBy: seat}

	detail := GuessResult{Word: word, CardType: ct}
	news := fmt.Sprintf("guessed %s: %s", word, ct)

	// Outcome branches, in priority order.
	switch {
	case ct == CardAssassin:
		detail.Ended = true
		out := game.Outcome{Ended: true, Result: game.ResultLoss, Detail: detail}.WithNews("", news)
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil

	case ct == CardAgent && nb.agentsFound() == TotalAgents:
		detail.Ended = true
		out := game.Outcome{Ended: true, Result: game.ResultWin, Detail: detail}.WithNews("", news)
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil

	case ct != CardAgent && nb.SuddenDeath:
		detail.Ended = true
		out := game.Outcome{Ended: true, Result: game.ResultLoss, Detail: detail}.WithNews("", news)
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil

	case ct != CardAgent:
		// turn passes to the guesser, back to clue giving
		nb.CurrentClue = nil
		nb.GuessesThisTurn = 0
		out := game.Outcome{Detail: detail}.WithNews("", news)
		return nb, game.Turn{Seat: seat, Phase: game.PhaseClue}, out, nil

	case nb.SuddenDeath:
		// agent found in sudden death: continue on this side while it has
		// agents left, otherwise swap which side is being guessed
		nb.GuessesThisTurn++
		nt := t
		if nb.unrevealedAgents(giver) == 0 {
			nt = game.Turn{Seat: seat, Phase: game.PhaseGuess}
			nb.CurrentClue = nil
			nb.GuessesThisTurn = 0
		}
		out := game.Outcome{Detail: detail}.WithNews("", news)
		return nb, nt, out, nil

	default:
		// agent: keep guessing on the same clue
		nb.GuessesThisTurn++
		out := game.Outcome{Detail: detail}.WithNews("", news)
		return nb, t, out, nil
	}
}

// EndTurn is the guesser voluntarily stopping. In sudden death a pass is
// only legal if the passer's own side still has agents to guess at,
// otherwise the game would be stranded.
func EndTurn(b *Board, t game.Turn, seat int) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseGuess {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat == t.Seat {
		return nil, t, game.Outcome{}, game.ErrWrongSeat
	}

	nb := b.clone()
	nb.CurrentClue = nil
	nb.GuessesThisTurn = 0

	if nb.SuddenDeath {
		if nb.unrevealedAgents(seat) == 0 {
			return nil, t, game.Outcome{}, game.Invalid("STRANDED", "cannot pass: no agents left on the other side")
		}
		nt := game.Turn{Seat: seat, Phase: game.PhaseGuess}
		out := game.Outcome{}.WithNews("", "turn passed")
		return nb, nt, out, nil
	}

	nt := game.Turn{Seat: seat, Phase: game.PhaseClue}
	out := game.Outcome{}.WithNews("", "turn passed")
	return nb, nt, out, nil
}
