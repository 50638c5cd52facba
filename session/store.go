package session

import (
	"context"
	"sync"

	"github.com/oddtable/wordtable/game"
)

// Store is the persistence collaborator. Update is conditional on the
// version the caller read; a mismatch returns ErrStaleState, which is how
// concurrent submissions are reduced to exactly one winner.
type Store interface {
	CreateGame(ctx context.Context, g *Game) error
	GetGame(ctx context.Context, id string) (*Game, error)
	UpdateGame(ctx context.Context, g *Game, expectedVersion int) error
	ListGames(ctx context.Context) ([]*Game, error)
	DeleteGame(ctx context.Context, id string) error

	AppendMove(ctx context.Context, mv game.Move) error
	ListMoves(ctx context.Context, gameID string) ([]game.Move, error)
}

// MemoryStore keeps everything in maps. Good for a single process and
// for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*Game
	moves map[string][]game.Move
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: map[string]*Game{},
		moves: map[string][]game.Move{},
	}
}

func (m *MemoryStore) CreateGame(ctx context.Context, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[g.ID]; exists {
		return game.Invalid("EXISTS", "game id already in use")
	}
	cp := *g
	m.games[g.ID] = &cp
	return nil
}

func (m *MemoryStore) GetGame(ctx context.Context, id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, game.ErrNoGame
	}
	cp := *g
	return &cp, nil
}

func (m *MemoryStore) UpdateGame(ctx context.Context, g *Game, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.games[g.ID]
	if !ok {
		return game.ErrNoGame
	}
	if cur.Version != expectedVersion {
		return game.ErrStaleState
	}
	cp := *g
	cp.Version = expectedVersion + 1
	m.games[g.ID] = &cp
	g.Version = cp.Version
	return nil
}

func (m *MemoryStore) ListGames(ctx context.Context) ([]*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Game, 0, len(m.games))
	for _, g := range m.games {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) DeleteGame(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return game.ErrNoGame
	}
	delete(m.games, id)
	delete(m.moves, id)
	return nil
}

func (m *MemoryStore) AppendMove(ctx context.Context, mv game.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[mv.GameID] = append(m.moves[mv.GameID], mv)
	return nil
}

func (m *MemoryStore) ListMoves(ctx context.Context, gameID string) ([]game.Move, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]game.Move(nil), m.moves[gameID]...), nil
}
