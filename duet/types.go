// Package duet implements the cooperative hidden-key word game. Both
// players see the same 25 words but each holds one side of a dual key
// card; guesses always resolve against the clue giver's side.
package duet

import (
	"math/rand"

	"github.com/oddtable/wordtable/words"
)

const (
	// BoardSize is the number of words dealt to a board.
	BoardSize = 25
	// TotalAgents is the number of unique agent words across both key sides.
	TotalAgents = 15
	// StartingTokens is the shared clue budget.
	StartingTokens = 9
)

type CardType string

const (
	CardAgent     CardType = "agent"
	CardBystander CardType = "bystander"
	CardAssassin  CardType = "assassin"
)

// Reveal records how a word has been resolved so far. Agent reveals are
// final; a bystander reveal may later be upgraded to agent by the other
// key side.
type Reveal struct {
	Type      CardType `json:"type"`
	GuessedBy int      `json:"guessedBy"`
}

// Clue is the active clue, kept on the board so clients never scan the
// move log to reconstruct it.
type Clue struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Seat  int    `json:"seat"`
}

// Board is the full duet game state.
type Board struct {
	Words           []string          `json:"words"`
	Key             KeyCard           `json:"keyCard"`
	Revealed        map[string]Reveal `json:"revealed"`
	TimerTokens     int               `json:"timerTokens"`
	SuddenDeath     bool              `json:"suddenDeath"`
	CurrentClue     *Clue             `json:"currentClue,omitempty"`
	GuessesThisTurn int               `json:"guessesThisTurn"`
	Strictness      Strictness        `json:"strictness"`
}

// NewBoard deals 25 words and generates a key card.
func NewBoard(rng *rand.Rand, pool []string, strictness Strictness) *Board {
	return &Board{
		Words:       words.Draw(rng, pool, BoardSize),
		Key:         NewKeyCard(rng),
		Revealed:    map[string]Reveal{},
		TimerTokens: StartingTokens,
		Strictness:  strictness,
	}
}

func (b *Board) clone() *Board {
	nb := *b
	nb.Words = append([]string(nil), b.Words...)
	nb.Revealed = make(map[string]Reveal, len(b.Revealed))
	for k, v := range b.Revealed {
		nb.Revealed[k] = v
	}
	if b.CurrentClue != nil {
		c := *b.CurrentClue
		nb.CurrentClue = &c
	}
	return &nb
}

// inPlay lists words not yet revealed as agents; these are the words a
// clue is checked against.
func (b *Board) inPlay() []string {
	var out []string
	for _, w := range b.Words {
		if rv, ok := b.Revealed[w]; ok && rv.Type == CardAgent {
			continue
		}
		out = append(out, w)
	}
	return out
}

// agentsFound counts unique words revealed as agents.
func (b *Board) agentsFound() int {
	n := 0
	for _, rv := range b.Revealed {
		if rv.Type == CardAgent {
			n++
		}
	}
	return n
}

// unrevealedAgents counts agents on one key side whose word has not been
// revealed as an agent yet.
func (b *Board) unrevealedAgents(side int) int {
	n := 0
	for _, idx := range b.Key.Sides[side].Agents {
		w := b.Words[idx]
		if rv, ok := b.Revealed[w]; ok && rv.Type == CardAgent {
			continue
		}
		n++
	}
	return n
}
