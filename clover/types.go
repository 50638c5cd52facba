// Package clover implements the cooperative clue-matching game: each
// player writes four clues for their own secret card layout, then the
// group reconstructs each layout in turn, two attempts per layout.
package clover

import (
	"math/rand"

	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/words"
)

const (
	// ZoneCount is the number of card slots per clover.
	ZoneCount = 4
	// WordsPerCard is the number of keyword edges on a card.
	WordsPerCard = 4
	// ScoreFirstTry is a full reconstruction on the first attempt.
	// ScoreSecondTry sits one below it; partial credit is the correct
	// slot count on the final attempt. Exact values are house rules.
	ScoreFirstTry  = 6
	ScoreSecondTry = 5
)

// Card is four keywords read clockwise from rotation 0.
type Card [WordsPerCard]string

// Clover is one player's private layout plus their submitted clues. The
// score is set exactly once, when the group's reconstruction resolves.
type Clover struct {
	Cards     [ZoneCount]int `json:"cards"`
	Rotations [ZoneCount]int `json:"rotations"`
	Clues     []string       `json:"clues,omitempty"`
	Score     *int           `json:"score,omitempty"`
}

// Placement is a guessed card in a slot.
type Placement struct {
	Card     int `json:"card"`
	Rotation int `json:"rotation"`
}

// Guess is the transient reconstruction in progress. Exactly one exists
// while a clover is being resolved. The driver seat owns pending edits.
type Guess struct {
	Driver   int                   `json:"driver"`
	Slots    [ZoneCount]*Placement `json:"slots"`
	Attempt  int                   `json:"attempt"`
	FirstTry *[ZoneCount]bool      `json:"firstTry,omitempty"`
}

// RoundResult is a resolved round, held until every player acknowledges
// it so nobody sees the next layout early.
type RoundResult struct {
	Spectator int             `json:"spectator"`
	Correct   [ZoneCount]bool `json:"correct"`
	Attempt   int             `json:"attempt"`
	Score     int             `json:"score"`
}

// Board is the full clover game state.
type Board struct {
	Deck           []Card       `json:"deck"`
	Clovers        []Clover     `json:"clovers"`
	SpectatorOrder []int        `json:"spectatorOrder"`
	SpectatorIdx   int          `json:"spectatorIdx"`
	Guess          *Guess       `json:"currentGuess,omitempty"`
	LastRound      *RoundResult `json:"lastRoundResult,omitempty"`
	Acks           []bool       `json:"acks,omitempty"`
	TotalScore     int          `json:"totalScore"`
}

// NewBoard deals each seat four cards with random rotations and fixes the
// spectator order up front.
func NewBoard(rng *rand.Rand, seats int, pool []string) *Board {
	need := seats * ZoneCount * WordsPerCard
	dealt := words.Draw(rng, pool, need)
	deck := make([]Card, 0, seats*ZoneCount)
	for i := 0; i < seats*ZoneCount; i++ {
		var c Card
		copy(c[:], dealt[i*WordsPerCard:(i+1)*WordsPerCard])
		deck = append(deck, c)
	}

	b := &Board{Deck: deck, Clovers: make([]Clover, seats)}
	for s := 0; s < seats; s++ {
		for z := 0; z < ZoneCount; z++ {
			b.Clovers[s].Cards[z] = s*ZoneCount + z
			b.Clovers[s].Rotations[z] = rng.Intn(WordsPerCard)
		}
	}
	b.SpectatorOrder = game.ShuffledRange(rng, seats)
	return b
}

// MaxScore is the theoretical best total.
func (b *Board) MaxScore() int {
	return len(b.Clovers) * ScoreFirstTry
}

// Spectator is the seat whose clover is being resolved.
func (b *Board) Spectator() int {
	return b.SpectatorOrder[b.SpectatorIdx]
}

func (b *Board) clone() *Board {
	nb := *b
	nb.Deck = append([]Card(nil), b.Deck...)
	nb.Clovers = make([]Clover, len(b.Clovers))
	for i, c := range b.Clovers {
		nc := c
		nc.Clues = append([]string(nil), c.Clues...)
		if c.Score != nil {
			s := *c.Score
			nc.Score = &s
		}
		nb.Clovers[i] = nc
	}
	nb.SpectatorOrder = append([]int(nil), b.SpectatorOrder...)
	if b.Guess != nil {
		g := *b.Guess
		for i, p := range b.Guess.Slots {
			if p != nil {
				np := *p
				g.Slots[i] = &np
			}
		}
		if b.Guess.FirstTry != nil {
			ft := *b.Guess.FirstTry
			g.FirstTry = &ft
		}
		nb.Guess = &g
	}
	if b.LastRound != nil {
		lr := *b.LastRound
		nb.LastRound = &lr
	}
	nb.Acks = append([]bool(nil), b.Acks...)
	return &nb
}

// ownsCard reports whether a deck index belongs to the clover.
func (c *Clover) ownsCard(deckIdx int) bool {
	return game.IntListContains(c.Cards[:], deckIdx)
}
