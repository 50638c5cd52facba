// Package tiles implements the competitive tile-placement word game:
// a 15x15 premium-square board, per-seat racks, a shared bag, and a
// scoreless-turn stalemate counter.
package tiles

import (
	"math/rand"
	"strings"
)

const (
	// Dim is the board edge length.
	Dim = 15
	// RackSize is the rack capacity.
	RackSize = 7
	// BingoBonus is added when a move uses the whole rack.
	BingoBonus = 50
	// ScorelessLimit ends the game after this many scoreless turns in a row.
	ScorelessLimit = 6
	// Blank is the rack notation for a blank tile.
	Blank = "_"
)

// PlacedTile is a tile sitting on the board. Blank tiles keep their
// assigned letter but score zero.
type PlacedTile struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Board is the full tile game state. Grid cells are nil when empty.
type Board struct {
	Grid           [][]*PlacedTile `json:"grid"`
	Racks          [][]string      `json:"racks"`
	Bag            []string        `json:"bag"`
	Scores         []int           `json:"scores"`
	ScorelessTurns int             `json:"scorelessTurns"`
	TurnNumber     int             `json:"turnNumber"`
}

var letterValues = map[string]int{
	"A": 1, "B": 3, "C": 3, "D": 2, "E": 1, "F": 4, "G": 2, "H": 4, "I": 1,
	"J": 8, "K": 5, "L": 1, "M": 3, "N": 1, "O": 1, "P": 3, "Q": 10, "R": 1,
	"S": 1, "T": 1, "U": 1, "V": 4, "W": 4, "X": 8, "Y": 4, "Z": 10,
}

var wordMultipliers = [Dim][Dim]int{
	{3, 1, 1, 1, 1, 1, 1, 3, 1, 1, 1, 1, 1, 1, 3},
	{1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1},
	{1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1},
	{1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{3, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 3},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1},
	{1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1},
	{1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1},
	{3, 1, 1, 1, 1, 1, 1, 3, 1, 1, 1, 1, 1, 1, 3},
}

var letterMultipliers = [Dim][Dim]int{
	{1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1},
	{1, 1, 1, 1, 1, 3, 1, 1, 1, 3, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 1},
	{2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 2},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3, 1},
	{1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1},
	{1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1},
	{1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1},
	{1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 2},
	{1, 1, 1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 3, 1, 1, 1, 3, 1, 1, 1, 1, 1},
	{1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1},
}

// tileCounts is the bag composition: standard distribution, 100 tiles
// including two blanks.
var tileCounts = map[string]int{
	"A": 9, "B": 2, "C": 2, "D": 4, "E": 12, "F": 2, "G": 3, "H": 2, "I": 9,
	"J": 1, "K": 1, "L": 4, "M": 2, "N": 6, "O": 8, "P": 2, "Q": 1, "R": 6,
	"S": 4, "T": 6, "U": 4, "V": 2, "W": 2, "X": 1, "Y": 2, "Z": 1, Blank: 2,
}

// letterValue scores a placed tile; blanks are worth nothing.
func letterValue(t *PlacedTile) int {
	if t.Blank {
		return 0
	}
	return letterValues[strings.ToUpper(t.Letter)]
}

// NewBoard builds a shuffled bag and deals each seat a full rack.
func NewBoard(rng *rand.Rand, seats int) *Board {
	var bag []string
	for letter, n := range tileCounts {
		for i := 0; i < n; i++ {
			bag = append(bag, letter)
		}
	}
	rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })

	grid := make([][]*PlacedTile, Dim)
	for i := range grid {
		grid[i] = make([]*PlacedTile, Dim)
	}

	b := &Board{
		Grid:   grid,
		Racks:  make([][]string, seats),
		Bag:    bag,
		Scores: make([]int, seats),
	}
	for s := 0; s < seats; s++ {
		b.Racks[s] = b.draw(RackSize)
	}
	return b
}

// draw takes up to n tiles off the top of the bag.
func (b *Board) draw(n int) []string {
	if n > len(b.Bag) {
		n = len(b.Bag)
	}
	out := append([]string(nil), b.Bag[:n]...)
	b.Bag = append([]string(nil), b.Bag[n:]...)
	return out
}

func (b *Board) clone() *Board {
	nb := *b
	nb.Grid = make([][]*PlacedTile, Dim)
	for i := range b.Grid {
		nb.Grid[i] = make([]*PlacedTile, Dim)
		for j, t := range b.Grid[i] {
			if t != nil {
				c := *t
				nb.Grid[i][j] = &c
			}
		}
	}
	nb.Racks = make([][]string, len(b.Racks))
	for i := range b.Racks {
		nb.Racks[i] = append([]string(nil), b.Racks[i]...)
	}
	nb.Bag = append([]string(nil), b.Bag...)
	nb.Scores = append([]int(nil), b.Scores...)
	return &nb
}

// TileCount sums tiles across bag, racks and board. Constant for the life
// of a game.
func (b *Board) TileCount() int {
	n := len(b.Bag)
	for _, r := range b.Racks {
		n += len(r)
	}
	for _, row := range b.Grid {
		for _, t := range row {
			if t != nil {
				n++
			}
		}
	}
	return n
}

// empty reports whether no tile has been played yet.
func (b *Board) empty() bool {
	for _, row := range b.Grid {
		for _, t := range row {
			if t != nil {
				return false
			}
		}
	}
	return true
}

// highestSeat picks the winner on score, lowest seat wins ties.
func (b *Board) highestSeat() int {
	best := 0
	for s, sc := range b.Scores {
		if sc > b.Scores[best] {
			best = s
		}
	}
	return best
}
