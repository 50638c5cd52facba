package tiles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/words"
)

// Placement is one tile the player wants to lay down. Blank tiles carry
// the letter they are standing in for.
type Placement struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// PlayResult reports a committed placement move.
type PlayResult struct {
	Words []FormedWord `json:"words"`
	Score int          `json:"score"`
	Bingo bool         `json:"bingo,omitempty"`
}

// FormedWord is one word a placement created, with its score share.
type FormedWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// PlaceTiles validates a placement, forms and checks every word it
// creates, scores it, and commits: tiles leave the rack, the rack refills
// from the bag, the score and turn advance. The receiver is untouched on
// any failure.
func PlaceTiles(b *Board, t game.Turn, seat int, placements []Placement, dict words.Dictionary) (*Board, game.Turn, game.Outcome, error) {
	if seat != t.Seat {
		return nil, t, game.Outcome{}, game.ErrNotYourTurn
	}
	if len(placements) == 0 {
		return nil, t, game.Outcome{}, game.Invalid("NOTILES", "no tiles placed")
	}
	if len(placements) > RackSize {
		return nil, t, game.Outcome{}, game.Invalid("TOOMANY", "more tiles than a rack holds")
	}

	// target cells must be vacant, in bounds, and distinct
	seen := map[[2]int]bool{}
	for _, p := range placements {
		if p.Row < 0 || p.Row >= Dim || p.Col < 0 || p.Col >= Dim {
			return nil, t, game.Outcome{}, game.Invalid("OFFBOARD", "placement outside the board")
		}
		if b.Grid[p.Row][p.Col] != nil {
			return nil, t, game.Outcome{}, game.Invalid("OCCUPIED", fmt.Sprintf("cell %d,%d is occupied", p.Row, p.Col))
		}
		key := [2]int{p.Row, p.Col}
		if seen[key] {
			return nil, t, game.Outcome{}, game.Invalid("DUPLICATE", "two tiles on one cell")
		}
		seen[key] = true
		if len(p.Letter) != 1 || p.Letter < "A" || p.Letter > "Z" {
			return nil, t, game.Outcome{}, game.Invalid("BADLETTER", "letters must be single A-Z")
		}
	}

	sorted := append([]Placement(nil), placements...)
	horizontal, err := lineOf(sorted)
	if err != nil {
		return nil, t, game.Outcome{}, err
	}
	if horizontal {
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Col < sorted[j].Col })
	} else {
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Row < sorted[j].Row })
	}

	// lay the tiles on a scratch board for gap and word checks
	nb := b.clone()
	for _, p := range sorted {
		nb.Grid[p.Row][p.Col] = &PlacedTile{Letter: p.Letter, Blank: p.Blank}
	}

	if err := checkContiguous(nb, sorted, horizontal); err != nil {
		return nil, t, game.Outcome{}, err
	}
	if err := checkConnected(b, sorted); err != nil {
		return nil, t, game.Outcome{}, err
	}

	// rack availability: blanks consume a blank tile whatever their letter
	rack := append([]string(nil), b.Racks[seat]...)
	for _, p := range sorted {
		need := p.Letter
		if p.Blank {
			need = Blank
		}
		var ok bool
		rack, ok = game.StringListWithout(rack, need)
		if !ok {
			return nil, t, game.Outcome{}, game.Invalid("NOTINRACK", fmt.Sprintf("tile %q is not in your rack", need))
		}
	}

	formed, score := collectWords(nb, sorted, horizontal)
	if len(formed) == 0 {
		return nil, t, game.Outcome{}, game.Invalid("NOWORD", "placement forms no word")
	}
	var bad []string
	for _, fw := range formed {
		if !dict.IsValidWord(fw.Word) {
			bad = append(bad, fw.Word)
		}
	}
	if len(bad) > 0 {
		return nil, t, game.Outcome{}, game.Invalid("NOTAWORD", fmt.Sprintf("not in dictionary: %s", strings.Join(bad, ", ")))
	}

	bingo := len(sorted) == RackSize
	if bingo {
		score += BingoBonus
	}

	// commit
	nb.Racks[seat] = append(rack, nb.draw(RackSize-len(rack))...)
	nb.Scores[seat] += score
	nb.ScorelessTurns = 0
	nb.TurnNumber++

	res := PlayResult{Words: formed, Score: score, Bingo: bingo}
	out := game.Outcome{Detail: res}.WithNews("", fmt.Sprintf("played %s for %d", formed[0].Word, score))

	// out of tiles with an empty bag ends the game
	if len(nb.Racks[seat]) == 0 && len(nb.Bag) == 0 {
		out.Ended = true
		out.Winner = nb.highestSeat()
		out.Result = game.ResultWin
		return nb, game.Turn{Seat: t.Seat, Phase: game.PhaseDone}, out, nil
	}

	nt := game.Turn{Seat: (seat + 1) % len(nb.Racks), Phase: t.Phase}
	return nb, nt, out, nil
}

// lineOf checks collinearity and reports the direction. A single tile is
// treated as horizontal; word collection looks both ways regardless.
func lineOf(ps []Placement) (horizontal bool, err error) {
	sameRow, sameCol := true, true
	for _, p := range ps[1:] {
		if p.Row != ps[0].Row {
			sameRow = false
		}
		if p.Col != ps[0].Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return false, game.Invalid("NOTINLINE", "tiles must share a row or a column")
	}
	return sameRow, nil
}

// checkContiguous walks the placement line and rejects gaps that even
// existing board tiles do not fill.
func checkContiguous(nb *Board, sorted []Placement, horizontal bool) error {
	first, last := sorted[0], sorted[len(sorted)-1]
	if horizontal {
		for c := first.Col; c <= last.Col; c++ {
			if nb.Grid[first.Row][c] == nil {
				return game.Invalid("GAP", "placement has a gap")
			}
		}
	} else {
		for r := first.Row; r <= last.Row; r++ {
			if nb.Grid[r][first.Col] == nil {
				return game.Invalid("GAP", "placement has a gap")
			}
		}
	}
	return nil
}

// checkConnected requires contact with existing tiles, or the centre cell
// on the opening move.
func checkConnected(old *Board, sorted []Placement) error {
	centre := Dim / 2
	if old.empty() {
		for _, p := range sorted {
			if p.Row == centre && p.Col == centre {
				return nil
			}
		}
		return game.Invalid("NOCENTRE", "first move must cover the centre cell")
	}
	for _, p := range sorted {
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r, c := p.Row+d[0], p.Col+d[1]
			if r < 0 || r >= Dim || c < 0 || c >= Dim {
				continue
			}
			if old.Grid[r][c] != nil {
				return nil
			}
		}
	}
	return game.Invalid("DISCONNECTED", "placement must touch an existing tile")
}

// collectWords gathers the primary word plus every cross word through a
// new tile, scoring each with premiums counted on newly covered cells only.
func collectWords(nb *Board, sorted []Placement, horizontal bool) ([]FormedWord, int) {
	isNew := map[[2]int]bool{}
	for _, p := range sorted {
		isNew[[2]int{p.Row, p.Col}] = true
	}

	var formed []FormedWord
	total := 0
	seenStarts := map[[3]int]bool{} // row, col, dir

	addRun := func(row, col, dr, dc, dir int) {
		// rewind to the start of the run
		r, c := row, col
		for r-dr >= 0 && c-dc >= 0 && nb.Grid[r-dr][c-dc] != nil {
			r, c = r-dr, c-dc
		}
		key := [3]int{r, c, dir}
		if seenStarts[key] {
			return
		}
		seenStarts[key] = true

		var word strings.Builder
		score, mult, length := 0, 1, 0
		for r < Dim && c < Dim && nb.Grid[r][c] != nil {
			tile := nb.Grid[r][c]
			word.WriteString(strings.ToUpper(tile.Letter))
			v := letterValue(tile)
			if isNew[[2]int{r, c}] {
				v *= letterMultipliers[r][c]
				mult *= wordMultipliers[r][c]
			}
			score += v
			length++
			r, c = r+dr, c+dc
		}
		if length < 2 {
			return
		}
		formed = append(formed, FormedWord{Word: word.String(), Score: score * mult})
		total += score * mult
	}

	for _, p := range sorted {
		if horizontal {
			addRun(p.Row, p.Col, 0, 1, 0)
			addRun(p.Row, p.Col, 1, 0, 1)
		} else {
			addRun(p.Row, p.Col, 1, 0, 1)
			addRun(p.Row, p.Col, 0, 1, 0)
		}
	}
	return formed, total
}
