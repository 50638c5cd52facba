package duet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddtable/wordtable/game"
)

// fixtureBoard builds a known key card: side 0 agents 0-8, side 1 agents
// 0-2 and 9-14, shared assassin 20, cross assassins 9/3, lone bystander
// assassins 21/22.
func fixtureBoard() *Board {
	ws := make([]string, BoardSize)
	for i := range ws {
		ws[i] = fmt.Sprintf("WORD%02d", i)
	}
	var kc KeyCard
	kc.Sides[0] = KeyCardSide{
		Agents:    []int{0, 1, 2, 3, 4, 5, 6, 7, 8},
		Assassins: []int{20, 9, 21},
	}
	kc.Sides[1] = KeyCardSide{
		Agents:    []int{0, 1, 2, 9, 10, 11, 12, 13, 14},
		Assassins: []int{20, 3, 22},
	}
	return &Board{
		Words:       ws,
		Key:         kc,
		Revealed:    map[string]Reveal{},
		TimerTokens: StartingTokens,
		Strictness:  StrictnessBasic,
	}
}

func reveal(b *Board, seat int, indices ...int) {
	for _, i := range indices {
		b.Revealed[b.Words[i]] = Reveal{Type: CardAgent, GuessedBy: seat}
	}
}

func TestGiveClue(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseClue}

	nb, nt, _, err := GiveClue(b, turn, 0, "HINT", 2)
	require.NoError(t, err)
	assert.Equal(t, StartingTokens-1, nb.TimerTokens)
	assert.False(t, nb.SuddenDeath)
	assert.Equal(t, game.Turn{Seat: 0, Phase: game.PhaseGuess}, nt)
	require.NotNil(t, nb.CurrentClue)
	assert.Equal(t, "HINT", nb.CurrentClue.Word)

	// original untouched
	assert.Equal(t, StartingTokens, b.TimerTokens)
	assert.Nil(t, b.CurrentClue)
}

func TestGiveClue_rejections(t *testing.T) {
	b := fixtureBoard()

	_, _, _, err := GiveClue(b, game.Turn{Seat: 0, Phase: game.PhaseGuess}, 0, "HINT", 1)
	assert.Equal(t, game.ErrWrongPhase, err)

	_, _, _, err = GiveClue(b, game.Turn{Seat: 0, Phase: game.PhaseClue}, 1, "HINT", 1)
	assert.Equal(t, game.ErrNotYourTurn, err)

	_, _, _, err = GiveClue(b, game.Turn{Seat: 0, Phase: game.PhaseClue}, 0, "WORD05", 1)
	require.Error(t, err)
	assert.Equal(t, game.KindValidation, game.KindOf(err))
}

func TestGiveClue_enterSuddenDeath(t *testing.T) {
	b := fixtureBoard()
	b.TimerTokens = 1

	nb, _, _, err := GiveClue(b, game.Turn{Seat: 0, Phase: game.PhaseClue}, 0, "HINT", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, nb.TimerTokens)
	assert.True(t, nb.SuddenDeath)
}

func TestGuess_agentKeepsGuessing(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	nb, nt, out, err := Guess(b, turn, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, turn, nt)
	assert.Equal(t, Reveal{Type: CardAgent, GuessedBy: 1}, nb.Revealed["WORD05"])
	assert.Equal(t, 1, nb.GuessesThisTurn)
	res := out.Detail.(GuessResult)
	assert.Equal(t, CardAgent, res.CardType)
	assert.False(t, out.Ended)
}

func TestGuess_bystanderFlipsTurn(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	// index 10 is side 1's agent, but resolution uses the giver's side
	nb, nt, out, err := Guess(b, turn, 1, 10)
	require.NoError(t, err)
	assert.False(t, out.Ended)
	assert.Equal(t, game.Turn{Seat: 1, Phase: game.PhaseClue}, nt)
	assert.Equal(t, CardBystander, nb.Revealed["WORD10"].Type)
}

func TestGuess_assassinLoses(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	_, nt, out, err := Guess(b, turn, 1, 20)
	require.NoError(t, err)
	assert.True(t, out.Ended)
	assert.Equal(t, game.ResultLoss, out.Result)
	assert.Equal(t, game.PhaseDone, nt.Phase)
}

func TestGuess_lastAgentWins(t *testing.T) {
	b := fixtureBoard()
	reveal(b, 1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)

	// seat 1 gave the clue, seat 0 finds side 1's last agent
	_, _, out, err := Guess(b, game.Turn{Seat: 1, Phase: game.PhaseGuess}, 0, 14)
	require.NoError(t, err)
	assert.True(t, out.Ended)
	assert.Equal(t, game.ResultWin, out.Result)
}

func TestGuess_idempotentOnRevealedAgent(t *testing.T) {
	b := fixtureBoard()
	reveal(b, 1, 5)
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	nb, nt, out, err := Guess(b, turn, 1, 5)
	require.NoError(t, err)
	assert.Same(t, b, nb)
	assert.Equal(t, turn, nt)
	res := out.Detail.(GuessResult)
	assert.Equal(t, CardAgent, res.CardType)
	assert.Len(t, b.Revealed, 1)
}

func TestGuess_bystanderUpgradesToAgent(t *testing.T) {
	b := fixtureBoard()
	// revealed as bystander off side 0's key
	b.Revealed["WORD10"] = Reveal{Type: CardBystander, GuessedBy: 1}

	// side 1 regards index 10 as an agent, so guessing it again works
	nb, _, _, err := Guess(b, game.Turn{Seat: 1, Phase: game.PhaseGuess}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, CardAgent, nb.Revealed["WORD10"].Type)
}

func TestGuess_suddenDeathBystanderLoses(t *testing.T) {
	b := fixtureBoard()
	b.SuddenDeath = true

	_, _, out, err := Guess(b, game.Turn{Seat: 0, Phase: game.PhaseGuess}, 1, 15)
	require.NoError(t, err)
	assert.True(t, out.Ended)
	assert.Equal(t, game.ResultLoss, out.Result)
}

func TestGuess_suddenDeathSideExhaustedFlips(t *testing.T) {
	b := fixtureBoard()
	b.SuddenDeath = true
	reveal(b, 1, 0, 1, 2, 3, 4, 5, 6, 7)

	// finding side 0's last agent must hand guessing over to the other side
	nb, nt, out, err := Guess(b, game.Turn{Seat: 0, Phase: game.PhaseGuess}, 1, 8)
	require.NoError(t, err)
	assert.False(t, out.Ended)
	assert.Equal(t, game.Turn{Seat: 1, Phase: game.PhaseGuess}, nt)
	assert.Equal(t, 0, nb.unrevealedAgents(0))
}

func TestEndTurn(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	_, _, _, err := EndTurn(b, turn, 0)
	assert.Equal(t, game.ErrWrongSeat, err)

	_, nt, _, err := EndTurn(b, turn, 1)
	require.NoError(t, err)
	assert.Equal(t, game.Turn{Seat: 1, Phase: game.PhaseClue}, nt)
}

func TestEndTurn_suddenDeath(t *testing.T) {
	b := fixtureBoard()
	b.SuddenDeath = true
	turn := game.Turn{Seat: 0, Phase: game.PhaseGuess}

	// passer's side still has agents: allowed, stays in guessing
	_, nt, _, err := EndTurn(b, turn, 1)
	require.NoError(t, err)
	assert.Equal(t, game.Turn{Seat: 1, Phase: game.PhaseGuess}, nt)

	// passer's side is done: passing would strand the game
	reveal(b, 0, 9, 10, 11, 12, 13, 14, 0, 1, 2)
	_, _, _, err = EndTurn(b, turn, 1)
	require.Error(t, err)
	assert.Equal(t, game.KindValidation, game.KindOf(err))
}

func TestFullGame_timerExhaustion(t *testing.T) {
	b := fixtureBoard()
	turn := game.Turn{Seat: 0, Phase: game.PhaseClue}

	// 9 clue/bystander-guess rounds burn every token
	bystanders := []int{15, 16, 17, 18, 19, 23, 24, 15, 16}
	for i := 0; i < StartingTokens; i++ {
		giver := turn.Seat
		guesser := 1 - giver

		var err error
		b, turn, _, err = GiveClue(b, turn, giver, fmt.Sprintf("HINT%d", i), 1)
		require.NoError(t, err)

		if i == StartingTokens-1 {
			break
		}
		var out game.Outcome
		b, turn, out, err = Guess(b, turn, guesser, bystanders[i])
		require.NoError(t, err)
		require.False(t, out.Ended, "round %d", i)
	}

	assert.Equal(t, 0, b.TimerTokens)
	assert.True(t, b.SuddenDeath)

	// any non-agent reveal now ends the game
	_, _, out, err := Guess(b, turn, 1-turn.Seat, 19)
	require.NoError(t, err)
	assert.True(t, out.Ended)
	assert.Equal(t, game.ResultLoss, out.Result)
}
