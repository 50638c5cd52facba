package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oddtable/wordtable/clover"
	"github.com/oddtable/wordtable/duet"
	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/tiles"
	"github.com/oddtable/wordtable/words"
)

// Controller loads a game, applies one move through the right engine,
// and commits the result. It is safe for concurrent use: the store's
// conditional update means at most one in-flight move wins per game.
type Controller struct {
	store   Store
	dict    words.Dictionary
	pool    []string
	newRand func() *rand.Rand
}

// Options configures a controller. Zero values fall back to the embedded
// word lists and a time-seeded rng.
type Options struct {
	Dictionary words.Dictionary
	BoardWords []string
	NewRand    func() *rand.Rand
}

func NewController(store Store, opts Options) *Controller {
	c := &Controller{
		store:   store,
		dict:    opts.Dictionary,
		pool:    opts.BoardWords,
		newRand: opts.NewRand,
	}
	if c.dict == nil {
		c.dict = words.DefaultDictionary()
	}
	if len(c.pool) == 0 {
		c.pool = words.BoardWords()
	}
	if c.newRand == nil {
		c.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return c
}

// poolNeed is how many distinct pool words a fresh board deals out.
func poolNeed(t game.Type, seats int) int {
	switch t {
	case game.TypeDuet:
		return duet.BoardSize
	case game.TypeClover:
		return seats * clover.ZoneCount * clover.WordsPerCard
	}
	return 0
}

// CreateOptions are the per-game knobs a creator can set.
type CreateOptions struct {
	Seats      int             `json:"seats"`
	Strictness duet.Strictness `json:"strictness,omitempty"`
	Creator    string          `json:"creator"`
}

// Create makes a new waiting game with a freshly generated board. The
// creator takes seat 0.
func (c *Controller) Create(ctx context.Context, t game.Type, opts CreateOptions) (*Game, error) {
	if !t.Valid() {
		return nil, game.Invalid("BADTYPE", "unknown game type")
	}
	min, max := seatLimits(t)
	seats := opts.Seats
	if seats == 0 {
		seats = min
	}
	if seats < min || seats > max {
		return nil, game.Invalid("BADSEATS", "player count out of range for this game")
	}
	if opts.Creator == "" {
		return nil, game.Invalid("NONAME", "creator name required")
	}
	if need := poolNeed(t, seats); need > len(c.pool) {
		return nil, game.Invalid("SMALLPOOL",
			fmt.Sprintf("word pool has %d words, this game needs %d", len(c.pool), need))
	}

	rng := c.newRand()
	g := &Game{
		ID:        uuid.NewString(),
		Type:      t,
		Status:    game.StatusWaiting,
		Players:   []game.PlayerState{{Name: opts.Creator, Seat: 0}},
		CreatedAt: time.Now().UTC(),
	}

	switch t {
	case game.TypeDuet:
		strictness := opts.Strictness
		if strictness == "" {
			strictness = duet.StrictnessBasic
		}
		g.Board.Duet = duet.NewBoard(rng, c.pool, strictness)
		g.Phase = game.PhaseClue
	case game.TypeTiles:
		g.Board.Tiles = tiles.NewBoard(rng, seats)
		g.Phase = game.PhasePlay
	case game.TypeClover:
		g.Board.Clover = clover.NewBoard(rng, seats, c.pool)
		g.Phase = game.PhaseClueWriting
	}

	if err := c.store.CreateGame(ctx, g); err != nil {
		return nil, err
	}
	log.Info().Str("game", g.ID).Str("type", string(t)).Msg("created")
	return g, nil
}

// Join seats a player. The game starts once every seat is filled.
func (c *Controller) Join(ctx context.Context, id, player string) (*Game, error) {
	g, err := c.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status != game.StatusWaiting {
		if g.seatOf(player) >= 0 {
			// rejoining an in-progress game is fine
			return g, nil
		}
		return nil, game.Invalid("STARTED", "game already started")
	}
	if g.seatOf(player) >= 0 {
		return g, nil
	}

	_, seats := capacityOf(g)
	if len(g.Players) >= seats {
		return nil, game.ErrGameFull
	}
	read := g.Version
	g.Players = append(g.Players, game.PlayerState{Name: player, Seat: len(g.Players)})
	if len(g.Players) == seats {
		g.Status = game.StatusPlaying
	}
	if err := c.store.UpdateGame(ctx, g, read); err != nil {
		return nil, err
	}
	return g, nil
}

// capacityOf reads the dealt board to find how many seats this game was
// created with.
func capacityOf(g *Game) (min, seats int) {
	min, _ = seatLimits(g.Type)
	switch g.Type {
	case game.TypeTiles:
		return min, len(g.Board.Tiles.Racks)
	case game.TypeClover:
		return min, len(g.Board.Clover.Clovers)
	default:
		return min, 2
	}
}

// Abandon ends a game without a result.
func (c *Controller) Abandon(ctx context.Context, id, player string) (*Game, error) {
	g, err := c.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.seatOf(player) < 0 {
		return nil, game.ErrWrongSeat
	}
	if g.Status == game.StatusCompleted || g.Status == game.StatusAbandoned {
		return nil, game.ErrGameOver
	}
	read := g.Version
	g.Status = game.StatusAbandoned
	if err := c.store.UpdateGame(ctx, g, read); err != nil {
		return nil, err
	}
	return g, nil
}

// Get fetches the current record.
func (c *Controller) Get(ctx context.Context, id string) (*Game, error) {
	return c.store.GetGame(ctx, id)
}

// List fetches all game records.
func (c *Controller) List(ctx context.Context) ([]*Game, error) {
	return c.store.ListGames(ctx)
}

// Delete removes a game and its move log.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.store.DeleteGame(ctx, id)
}

// Moves returns the append-only log.
func (c *Controller) Moves(ctx context.Context, id string) ([]game.Move, error) {
	return c.store.ListMoves(ctx, id)
}

// Submit runs one move through its engine and commits the next state.
// On success the returned game is the authoritative next record.
func (c *Controller) Submit(ctx context.Context, id, player string, env game.Envelope) (*Game, game.Outcome, error) {
	g, err := c.store.GetGame(ctx, id)
	if err != nil {
		return nil, game.Outcome{}, err
	}
	if err := g.Board.check(g.Type); err != nil {
		log.Error().Str("game", g.ID).Err(err).Msg("invariant violation: refusing move")
		return nil, game.Outcome{}, err
	}
	switch g.Status {
	case game.StatusWaiting:
		return nil, game.Outcome{}, game.ErrNotStarted
	case game.StatusCompleted, game.StatusAbandoned:
		return nil, game.Outcome{}, game.ErrGameOver
	}
	seat := g.seatOf(player)
	if seat < 0 {
		return nil, game.Outcome{}, game.ErrWrongSeat
	}

	read := g.Version
	out, err := c.dispatch(g, seat, env)
	if err != nil {
		return nil, game.Outcome{}, err
	}

	if out.Ended {
		g.Status = game.StatusCompleted
		g.Result = out.Result
		if g.Type == game.TypeTiles {
			w := out.Winner
			g.Winner = &w
		}
	}

	if err := c.store.UpdateGame(ctx, g, read); err != nil {
		return nil, game.Outcome{}, err
	}
	mv := game.Move{
		GameID:   g.ID,
		Seq:      g.Version,
		Seat:     seat,
		Player:   player,
		MoveType: env.MoveType,
		Payload:  env.Payload,
		PlayedAt: time.Now().UTC(),
	}
	// the state update has already committed and cannot be rolled back
	// here; a failed log append loses history, not correctness, so it is
	// logged and the accepted move stands
	if err := c.store.AppendMove(ctx, mv); err != nil {
		log.Error().Str("game", g.ID).Err(err).Msg("move log append failed")
	}
	return g, out, nil
}
