package clover

import (
	"fmt"
	"strings"

	"github.com/oddtable/wordtable/game"
)

// SubmitClues records a player's four clues for their own clover. Once
// every seat has submitted, resolution starts on the first spectator.
func SubmitClues(b *Board, t game.Turn, seat int, clues []string) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseClueWriting {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat < 0 || seat >= len(b.Clovers) {
		return nil, t, game.Outcome{}, game.ErrWrongSeat
	}
	if len(b.Clovers[seat].Clues) > 0 {
		return nil, t, game.Outcome{}, game.Invalid("CLUESDONE", "clues already submitted")
	}
	if len(clues) != ZoneCount {
		return nil, t, game.Outcome{}, game.Invalid("BADCLUES", fmt.Sprintf("need exactly %d clues", ZoneCount))
	}
	seen := map[string]bool{}
	for _, c := range clues {
		w := strings.TrimSpace(c)
		if w == "" {
			return nil, t, game.Outcome{}, game.Invalid("BADCLUES", "clues cannot be empty")
		}
		if strings.ContainsAny(w, " \t\n") {
			return nil, t, game.Outcome{}, game.Invalid("BADCLUES", "clues must be single words")
		}
		key := strings.ToUpper(w)
		if seen[key] {
			return nil, t, game.Outcome{}, game.Invalid("BADCLUES", "clues must be distinct")
		}
		seen[key] = true
	}

	nb := b.clone()
	nb.Clovers[seat].Clues = append([]string(nil), clues...)

	for _, c := range nb.Clovers {
		if len(c.Clues) == 0 {
			out := game.Outcome{}.WithNews("", "clues submitted")
			return nb, t, out, nil
		}
	}

	// everyone is in: begin resolving the first clover
	nb.startRound()
	nt := game.Turn{Seat: nb.Spectator(), Phase: game.PhaseResolution}
	out := game.Outcome{}.WithNews("", "all clues in, resolution begins")
	return nb, nt, out, nil
}

// UpdateGuess edits the pending reconstruction. The driver owns pending
// edits; any other non-spectator must explicitly take over first. Slots
// frozen by a correct first attempt cannot be changed.
func UpdateGuess(b *Board, t game.Turn, seat int, slots [ZoneCount]*Placement, takeOver bool) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseResolution {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	// a scored round clears the guess, so check for the held result first
	if b.LastRound != nil {
		return nil, t, game.Outcome{}, game.Invalid("AWAITINGACKS", "round result awaiting acknowledgement")
	}
	if b.Guess == nil {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat == b.Spectator() {
		return nil, t, game.Outcome{}, game.ErrWrongSeat
	}
	if seat != b.Guess.Driver && !takeOver {
		return nil, t, game.Outcome{}, &game.Error{Kind: game.KindAuthorization, Code: "NOTDRIVER", Msg: "another player is driving"}
	}

	clover := &b.Clovers[b.Spectator()]
	used := map[int]bool{}
	for i, p := range slots {
		if p == nil {
			continue
		}
		if !clover.ownsCard(p.Card) {
			return nil, t, game.Outcome{}, game.Invalid("BADCARD", "card does not belong to this clover")
		}
		if p.Rotation < 0 || p.Rotation >= WordsPerCard {
			return nil, t, game.Outcome{}, game.Invalid("BADROTATION", "rotation out of range")
		}
		if used[p.Card] {
			return nil, t, game.Outcome{}, game.Invalid("DUPCARD", "card placed in two slots")
		}
		used[p.Card] = true
		if b.Guess.FirstTry != nil && b.Guess.FirstTry[i] {
			frozen := b.Guess.Slots[i]
			if frozen == nil || *p != *frozen {
				return nil, t, game.Outcome{}, game.Invalid("FROZEN", "slot was correct on the first attempt and is locked")
			}
		}
	}
	if b.Guess.FirstTry != nil {
		for i, correct := range b.Guess.FirstTry {
			if correct && slots[i] == nil {
				return nil, t, game.Outcome{}, game.Invalid("FROZEN", "slot was correct on the first attempt and is locked")
			}
		}
	}

	nb := b.clone()
	nb.Guess.Driver = seat
	for i, p := range slots {
		if p == nil {
			nb.Guess.Slots[i] = nil
			continue
		}
		np := *p
		nb.Guess.Slots[i] = &np
	}
	return nb, t, game.Outcome{}, nil
}

// SubmitGuess scores the reconstruction. A miss on the first attempt
// freezes the correct slots, clears the rest, and grants one more try;
// the second attempt always produces a score.
func SubmitGuess(b *Board, t game.Turn, seat int) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseResolution {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if b.LastRound != nil {
		return nil, t, game.Outcome{}, game.Invalid("AWAITINGACKS", "round result awaiting acknowledgement")
	}
	if b.Guess == nil {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat != b.Guess.Driver {
		return nil, t, game.Outcome{}, &game.Error{Kind: game.KindAuthorization, Code: "NOTDRIVER", Msg: "only the driver submits"}
	}
	for _, p := range b.Guess.Slots {
		if p == nil {
			return nil, t, game.Outcome{}, game.Invalid("INCOMPLETE", "all four slots must be filled")
		}
	}

	spectator := b.Spectator()
	clover := b.Clovers[spectator]
	var correct [ZoneCount]bool
	nCorrect := 0
	for i, p := range b.Guess.Slots {
		if p.Card == clover.Cards[i] && p.Rotation == clover.Rotations[i] {
			correct[i] = true
			nCorrect++
		}
	}

	nb := b.clone()
	allCorrect := nCorrect == ZoneCount

	if nb.Guess.Attempt == 1 && !allCorrect {
		// freeze the hits, clear the misses, one more try
		ft := correct
		nb.Guess.FirstTry = &ft
		nb.Guess.Attempt = 2
		for i := range nb.Guess.Slots {
			if !correct[i] {
				nb.Guess.Slots[i] = nil
			}
		}
		out := game.Outcome{Detail: map[string]interface{}{"correct": correct, "attempt": 1}}.
			WithNews("", fmt.Sprintf("first attempt: %d of %d", nCorrect, ZoneCount))
		return nb, t, out, nil
	}

	score := nCorrect
	if allCorrect {
		if nb.Guess.Attempt == 1 {
			score = ScoreFirstTry
		} else {
			score = ScoreSecondTry
		}
	}

	if nb.Clovers[spectator].Score != nil {
		return nil, t, game.Outcome{}, game.Corrupt("clover already scored")
	}
	nb.Clovers[spectator].Score = &score
	nb.TotalScore += score
	nb.LastRound = &RoundResult{
		Spectator: spectator,
		Correct:   correct,
		Attempt:   nb.Guess.Attempt,
		Score:     score,
	}
	nb.Acks = make([]bool, len(nb.Clovers))
	nb.Guess = nil

	out := game.Outcome{Detail: nb.LastRound}.
		WithNews("", fmt.Sprintf("clover scored %d", score))
	return nb, t, out, nil
}

// Acknowledge registers one player's sign-off on the held round result.
// When the last player acknowledges, the next spectator's round starts,
// or the game completes.
func Acknowledge(b *Board, t game.Turn, seat int) (*Board, game.Turn, game.Outcome, error) {
	if t.Phase != game.PhaseResolution || b.LastRound == nil {
		return nil, t, game.Outcome{}, game.ErrWrongPhase
	}
	if seat < 0 || seat >= len(b.Acks) {
		return nil, t, game.Outcome{}, game.ErrWrongSeat
	}
	if b.Acks[seat] {
		return nil, t, game.Outcome{}, game.Invalid("ACKED", "already acknowledged")
	}

	nb := b.clone()
	nb.Acks[seat] = true
	for _, ok := range nb.Acks {
		if !ok {
			return nb, t, game.Outcome{}, nil
		}
	}

	nb.LastRound = nil
	nb.Acks = nil
	nb.SpectatorIdx++

	if nb.SpectatorIdx >= len(nb.SpectatorOrder) {
		result := game.ResultLoss
		if nb.TotalScore*2 >= nb.MaxScore() {
			result = game.ResultWin
		}
		out := game.Outcome{Ended: true, Result: result, Detail: map[string]int{"total": nb.TotalScore, "max": nb.MaxScore()}}.
			WithNews("", fmt.Sprintf("finished: %d of %d", nb.TotalScore, nb.MaxScore()))
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil
	}

	nb.startRound()
	nt := game.Turn{Seat: nb.Spectator(), Phase: game.PhaseResolution}
	out := game.Outcome{}.WithNews("", "next clover")
	return nb, nt, out, nil
}

// startRound opens the pending guess for the current spectator, with the
// first other seat driving until someone takes over.
func (b *Board) startRound() {
	spectator := b.Spectator()
	driver := 0
	if driver == spectator {
		driver = 1
	}
	b.Guess = &Guess{Driver: driver, Attempt: 1}
}
