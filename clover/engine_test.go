package clover

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddtable/wordtable/game"
)

// fixturePair is a two-seat board with known layouts: seat 0 holds cards
// 0-3 with rotations 0,1,2,3 and seat 1 holds cards 4-7 with rotations
// 1,0,3,2. Spectator order is seat 0 then seat 1.
func fixturePair() *Board {
	deck := make([]Card, 8)
	for i := range deck {
		for j := 0; j < WordsPerCard; j++ {
			deck[i][j] = fmt.Sprintf("KW%d%d", i, j)
		}
	}
	return &Board{
		Deck: deck,
		Clovers: []Clover{
			{Cards: [ZoneCount]int{0, 1, 2, 3}, Rotations: [ZoneCount]int{0, 1, 2, 3}},
			{Cards: [ZoneCount]int{4, 5, 6, 7}, Rotations: [ZoneCount]int{1, 0, 3, 2}},
		},
		SpectatorOrder: []int{0, 1},
	}
}

// rightAnswer builds the exact reconstruction of the current spectator's
// clover.
func rightAnswer(b *Board) [ZoneCount]*Placement {
	c := b.Clovers[b.Spectator()]
	var slots [ZoneCount]*Placement
	for i := range slots {
		slots[i] = &Placement{Card: c.Cards[i], Rotation: c.Rotations[i]}
	}
	return slots
}

func TestSubmitClues(t *testing.T) {
	b := fixturePair()
	turn := game.Turn{Phase: game.PhaseClueWriting}

	nb, nt, _, err := SubmitClues(b, turn, 0, []string{"RED", "LOUD", "WET", "OLD"})
	require.NoError(t, err)
	assert.Equal(t, game.PhaseClueWriting, nt.Phase)
	assert.Nil(t, nb.Guess)

	// resubmission is rejected
	_, _, _, err = SubmitClues(nb, turn, 0, []string{"A", "B", "C", "D"})
	require.Error(t, err)
	assert.Equal(t, "CLUESDONE", err.(*game.Error).Code)

	// last writer flips the game into resolution
	nb, nt, _, err = SubmitClues(nb, turn, 1, []string{"FAST", "COLD", "TALL", "DARK"})
	require.NoError(t, err)
	assert.Equal(t, game.Turn{Seat: 0, Phase: game.PhaseResolution}, nt)
	require.NotNil(t, nb.Guess)
	assert.Equal(t, 1, nb.Guess.Driver)
	assert.Equal(t, 1, nb.Guess.Attempt)
}

func TestSubmitClues_validation(t *testing.T) {
	b := fixturePair()
	turn := game.Turn{Phase: game.PhaseClueWriting}

	for name, clues := range map[string][]string{
		"too few":   {"A", "B", "C"},
		"empty":     {"A", "B", "C", "  "},
		"multiword": {"A", "B", "C", "TWO WORDS"},
		"duplicate": {"A", "B", "C", "a"},
	} {
		_, _, _, err := SubmitClues(b, turn, 0, clues)
		require.Error(t, err, name)
		assert.Equal(t, "BADCLUES", err.(*game.Error).Code, name)
	}

	_, _, _, err := SubmitClues(b, game.Turn{Phase: game.PhaseResolution}, 0, []string{"A", "B", "C", "D"})
	assert.Equal(t, game.ErrWrongPhase, err)
}

// resolving returns a fixture board mid-resolution on seat 0's clover.
func resolving() (*Board, game.Turn) {
	b := fixturePair()
	b.Clovers[0].Clues = []string{"RED", "LOUD", "WET", "OLD"}
	b.Clovers[1].Clues = []string{"FAST", "COLD", "TALL", "DARK"}
	b.startRound()
	return b, game.Turn{Seat: 0, Phase: game.PhaseResolution}
}

func TestUpdateGuess(t *testing.T) {
	b, turn := resolving()
	slots := rightAnswer(b)

	// driver is seat 1; the spectator may never edit
	_, _, _, err := UpdateGuess(b, turn, 0, slots, false)
	assert.Equal(t, game.ErrWrongSeat, err)

	nb, _, _, err := UpdateGuess(b, turn, 1, slots, false)
	require.NoError(t, err)
	require.NotNil(t, nb.Guess.Slots[0])
	assert.Equal(t, *slots[0], *nb.Guess.Slots[0])
	assert.Nil(t, b.Guess.Slots[0])
}

func TestUpdateGuess_validation(t *testing.T) {
	b, turn := resolving()

	// a card from the other player's clover
	bad := rightAnswer(b)
	bad[2] = &Placement{Card: 5}
	_, _, _, err := UpdateGuess(b, turn, 1, bad, false)
	require.Error(t, err)
	assert.Equal(t, "BADCARD", err.(*game.Error).Code)

	bad = rightAnswer(b)
	bad[2].Rotation = WordsPerCard
	_, _, _, err = UpdateGuess(b, turn, 1, bad, false)
	require.Error(t, err)
	assert.Equal(t, "BADROTATION", err.(*game.Error).Code)

	bad = rightAnswer(b)
	bad[2].Card = bad[1].Card
	_, _, _, err = UpdateGuess(b, turn, 1, bad, false)
	require.Error(t, err)
	assert.Equal(t, "DUPCARD", err.(*game.Error).Code)
}

func TestSubmitGuess_fullFirstAttempt(t *testing.T) {
	b, turn := resolving()
	nb, _, _, err := UpdateGuess(b, turn, 1, rightAnswer(b), false)
	require.NoError(t, err)

	nb, _, out, err := SubmitGuess(nb, turn, 1)
	require.NoError(t, err)
	res := out.Detail.(*RoundResult)
	assert.Equal(t, ScoreFirstTry, res.Score)
	assert.Equal(t, 1, res.Attempt)
	require.NotNil(t, nb.Clovers[0].Score)
	assert.Equal(t, ScoreFirstTry, *nb.Clovers[0].Score)
	assert.Equal(t, ScoreFirstTry, nb.TotalScore)
	assert.Nil(t, nb.Guess)
	require.NotNil(t, nb.LastRound)
	assert.Len(t, nb.Acks, 2)
}

func TestSubmitGuess_secondAttempt(t *testing.T) {
	b, turn := resolving()

	// two slots right, two swapped
	slots := rightAnswer(b)
	slots[2], slots[3] = slots[3], slots[2]
	nb, _, _, err := UpdateGuess(b, turn, 1, slots, false)
	require.NoError(t, err)

	nb, _, out, err := SubmitGuess(nb, turn, 1)
	require.NoError(t, err)
	assert.False(t, out.Ended)
	assert.Nil(t, nb.LastRound)
	assert.Equal(t, 2, nb.Guess.Attempt)
	require.NotNil(t, nb.Guess.FirstTry)
	assert.Equal(t, [ZoneCount]bool{true, true, false, false}, *nb.Guess.FirstTry)
	assert.NotNil(t, nb.Guess.Slots[0])
	assert.Nil(t, nb.Guess.Slots[2])
	assert.Nil(t, nb.Guess.Slots[3])

	// a frozen slot cannot be moved
	bad := rightAnswer(nb)
	bad[0].Rotation = (bad[0].Rotation + 1) % WordsPerCard
	_, _, _, err = UpdateGuess(nb, turn, 1, bad, false)
	require.Error(t, err)
	assert.Equal(t, "FROZEN", err.(*game.Error).Code)

	// fix the rest and resubmit: full on the second attempt
	nb, _, _, err = UpdateGuess(nb, turn, 1, rightAnswer(nb), false)
	require.NoError(t, err)
	nb, _, out, err = SubmitGuess(nb, turn, 1)
	require.NoError(t, err)
	res := out.Detail.(*RoundResult)
	assert.Equal(t, ScoreSecondTry, res.Score)
	assert.Equal(t, 2, res.Attempt)
}

func TestSubmitGuess_partialSecondAttemptCounts(t *testing.T) {
	b, turn := resolving()
	slots := rightAnswer(b)
	slots[2], slots[3] = slots[3], slots[2]
	nb, _, _, err := UpdateGuess(b, turn, 1, slots, false)
	require.NoError(t, err)
	nb, _, _, err = SubmitGuess(nb, turn, 1)
	require.NoError(t, err)

	// still wrong on the retry: partial credit only
	slots = rightAnswer(nb)
	slots[2], slots[3] = slots[3], slots[2]
	nb, _, _, err = UpdateGuess(nb, turn, 1, slots, false)
	require.NoError(t, err)
	nb, _, out, err := SubmitGuess(nb, turn, 1)
	require.NoError(t, err)
	res := out.Detail.(*RoundResult)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, nb.TotalScore)
}

func TestAcknowledge_gatesNextRound(t *testing.T) {
	b, turn := resolving()
	nb, _, _, err := UpdateGuess(b, turn, 1, rightAnswer(b), false)
	require.NoError(t, err)
	nb, _, _, err = SubmitGuess(nb, turn, 1)
	require.NoError(t, err)

	// edits and resubmissions are shut while the result is held
	_, _, _, err = UpdateGuess(nb, turn, 1, rightAnswer(nb), false)
	require.Error(t, err)
	assert.Equal(t, "AWAITINGACKS", err.(*game.Error).Code)
	_, _, _, err = SubmitGuess(nb, turn, 1)
	require.Error(t, err)
	assert.Equal(t, "AWAITINGACKS", err.(*game.Error).Code)

	nb, nt, out, err := Acknowledge(nb, turn, 0)
	require.NoError(t, err)
	assert.False(t, out.Ended)
	assert.NotNil(t, nb.LastRound)

	_, _, _, err = Acknowledge(nb, nt, 0)
	require.Error(t, err)
	assert.Equal(t, "ACKED", err.(*game.Error).Code)

	nb, nt, _, err = Acknowledge(nb, nt, 1)
	require.NoError(t, err)
	assert.Nil(t, nb.LastRound)
	assert.Equal(t, 1, nb.Spectator())
	assert.Equal(t, game.Turn{Seat: 1, Phase: game.PhaseResolution}, nt)
	assert.Equal(t, 0, nb.Guess.Driver)
}

func TestAcknowledge_finishesGame(t *testing.T) {
	play := func(total int) (*Board, game.Turn, game.Outcome) {
		b, turn := resolving()
		b.SpectatorIdx = 1
		b.TotalScore = total
		b.startRound()
		turn.Seat = 1

		nb, _, _, err := UpdateGuess(b, turn, 0, rightAnswer(b), false)
		require.NoError(t, err)
		nb, _, _, err = SubmitGuess(nb, turn, 0)
		require.NoError(t, err)
		nb, _, _, err = Acknowledge(nb, turn, 0)
		require.NoError(t, err)
		nb, nt, out, err := Acknowledge(nb, turn, 1)
		require.NoError(t, err)
		return nb, nt, out
	}

	// 6 from this round on its own reaches half of the 12 maximum
	nb, nt, out := play(0)
	require.True(t, out.Ended)
	assert.Equal(t, game.ResultWin, out.Result)
	assert.Equal(t, game.PhaseDone, nt.Phase)
	assert.Equal(t, ScoreFirstTry, nb.TotalScore)
}

func TestAcknowledge_lowTotalLoses(t *testing.T) {
	b, turn := resolving()
	b.SpectatorIdx = 1
	b.startRound()
	turn.Seat = 1

	// both attempts mostly wrong: 2 points, 2 of 12 is a loss
	slots := rightAnswer(b)
	slots[2], slots[3] = slots[3], slots[2]
	nb, _, _, err := UpdateGuess(b, turn, 0, slots, false)
	require.NoError(t, err)
	nb, _, _, err = SubmitGuess(nb, turn, 0)
	require.NoError(t, err)
	slots = rightAnswer(nb)
	slots[2], slots[3] = slots[3], slots[2]
	nb, _, _, err = UpdateGuess(nb, turn, 0, slots, false)
	require.NoError(t, err)
	nb, _, _, err = SubmitGuess(nb, turn, 0)
	require.NoError(t, err)

	nb, _, _, err = Acknowledge(nb, turn, 0)
	require.NoError(t, err)
	_, nt, out, err := Acknowledge(nb, turn, 1)
	require.NoError(t, err)
	require.True(t, out.Ended)
	assert.Equal(t, game.ResultLoss, out.Result)
	assert.Equal(t, game.PhaseDone, nt.Phase)
}
