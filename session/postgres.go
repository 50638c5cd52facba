package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oddtable/wordtable/game"
)

// PostgresStore persists game records as JSON documents with a version
// column. The conditional UPDATE is what enforces single-writer-per-game.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id      text PRIMARY KEY,
	doc     jsonb NOT NULL,
	version integer NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
	game_id   text NOT NULL,
	seq       integer NOT NULL,
	doc       jsonb NOT NULL,
	PRIMARY KEY (game_id, seq)
);`

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) CreateGame(ctx context.Context, g *Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (id, doc, version) VALUES ($1, $2, $3)`,
		g.ID, doc, g.Version)
	return err
}

func (s *PostgresStore) GetGame(ctx context.Context, id string) (*Game, error) {
	var doc []byte
	var version int
	err := s.pool.QueryRow(ctx,
		`SELECT doc, version FROM games WHERE id = $1`, id).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, game.ErrNoGame
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(doc, &g); err != nil {
		return nil, err
	}
	g.Version = version
	return &g, nil
}

func (s *PostgresStore) UpdateGame(ctx context.Context, g *Game, expectedVersion int) error {
	g.Version = expectedVersion + 1
	doc, err := json.Marshal(g)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE games SET doc = $1, version = $2 WHERE id = $3 AND version = $4`,
		doc, g.Version, g.ID, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		g.Version = expectedVersion
		// distinguish a vanished game from a lost race
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, g.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return game.ErrNoGame
		}
		return game.ErrStaleState
	}
	return nil
}

func (s *PostgresStore) ListGames(ctx context.Context) ([]*Game, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc, version FROM games`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Game
	for rows.Next() {
		var doc []byte
		var version int
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, err
		}
		var g Game
		if err := json.Unmarshal(doc, &g); err != nil {
			return nil, err
		}
		g.Version = version
		out = append(out, &g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteGame(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return game.ErrNoGame
	}
	_, err = s.pool.Exec(ctx, `DELETE FROM moves WHERE game_id = $1`, id)
	return err
}

func (s *PostgresStore) AppendMove(ctx context.Context, mv game.Move) error {
	doc, err := json.Marshal(mv)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO moves (game_id, seq, doc) VALUES ($1, $2, $3)`,
		mv.GameID, mv.Seq, doc)
	return err
}

func (s *PostgresStore) ListMoves(ctx context.Context, gameID string) ([]game.Move, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM moves WHERE game_id = $1 ORDER BY seq`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Move
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var mv game.Move
		if err := json.Unmarshal(doc, &mv); err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	return out, rows.Err()
}
