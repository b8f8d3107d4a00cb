// Package store persists simulation batches to Postgres.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonathanFerron/oracle/internal/sim"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS simulation_run (
	id           UUID PRIMARY KEY,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	seed         BIGINT NOT NULL,
	mode         TEXT NOT NULL,
	initial_cash INT NOT NULL,
	max_turns    INT NOT NULL,
	games        INT NOT NULL,
	wins_a       INT NOT NULL,
	wins_b       INT NOT NULL,
	draws        INT NOT NULL,
	avg_turns    DOUBLE PRECISION NOT NULL,
	elapsed_ms   BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_simulation_run_created_at ON simulation_run(created_at DESC);
CREATE TABLE IF NOT EXISTS game_result (
	run_id       UUID NOT NULL REFERENCES simulation_run(id) ON DELETE CASCADE,
	sim_id       INT NOT NULL,
	seed         BIGINT NOT NULL,
	winner_index SMALLINT,
	turns        INT NOT NULL,
	energy_a     INT NOT NULL,
	energy_b     INT NOT NULL,
	PRIMARY KEY (run_id, sim_id)
);
`

var gameResultColumns = []string{"run_id", "sim_id", "seed", "winner_index", "turns", "energy_a", "energy_b"}

// Store persists simulation runs.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure *Store implements sim.Exporter at compile time.
var _ sim.Exporter = (*Store)(nil)

// NewStore connects to Postgres and ensures the tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Export records a batch and its games.
func (s *Store) Export(ctx context.Context, stats *sim.GameStats) error {
	_, err := s.SaveRun(ctx, stats)
	return err
}

// SaveRun inserts one simulation_run row and bulk-copies its game_result
// rows in a single transaction. It returns the run id, or "" on a nil store.
func (s *Store) SaveRun(ctx context.Context, stats *sim.GameStats) (string, error) {
	if s == nil || s.pool == nil {
		return "", nil
	}
	runID := uuid.New()
	summary := sim.Summarize(stats)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO simulation_run (id, seed, mode, initial_cash, max_turns, games, wins_a, wins_b, draws, avg_turns, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		runID, int64(stats.Seed), stats.Mode.String(), int32(stats.InitialCash), int32(stats.MaxTurns),
		int32(summary.Games), int32(summary.WinsA), int32(summary.WinsB), int32(summary.Draws),
		summary.AvgTurns, stats.Elapsed.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"game_result"}, gameResultColumns, pgx.CopyFromRows(resultRows(runID, stats.Results)))
	if err != nil {
		return "", fmt.Errorf("copy game results: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	slog.Info("saved simulation run", "tag", "storage", "run", runID, "games", n)
	return runID.String(), nil
}

// resultRows converts game results to game_result rows. Draws store a NULL
// winner.
func resultRows(runID uuid.UUID, results []sim.GameResult) [][]any {
	rows := make([][]any, len(results))
	for i, r := range results {
		var winner any
		if w, ok := r.Result.Winner(); ok {
			winner = int16(w)
		}
		rows[i] = []any{runID, int32(r.SimID), int64(r.Seed), winner, int32(r.Turns), int32(r.Energy[0]), int32(r.Energy[1])}
	}
	return rows
}

// RunRecord is a single simulation_run row.
type RunRecord struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Seed        uint32    `json:"seed"`
	Mode        string    `json:"mode"`
	InitialCash int       `json:"initial_cash"`
	MaxTurns    int       `json:"max_turns"`
	Games       int       `json:"games"`
	WinsA       int       `json:"wins_a"`
	WinsB       int       `json:"wins_b"`
	Draws       int       `json:"draws"`
	AvgTurns    float64   `json:"avg_turns"`
	ElapsedMS   int64     `json:"elapsed_ms"`
}

// RecentRuns returns the latest runs, newest first. limit is clamped to 1-200.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if s == nil || s.pool == nil {
		return []RunRecord{}, nil
	}
	limit = min(max(limit, 1), 200)
	rows, err := s.pool.Query(ctx, `
		SELECT id, created_at, seed, mode, initial_cash, max_turns, games, wins_a, wins_b, draws, avg_turns, elapsed_ms
		FROM simulation_run
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RunRecord{}
	for rows.Next() {
		var r RunRecord
		var id uuid.UUID
		var seed int64
		if err := rows.Scan(&id, &r.CreatedAt, &seed, &r.Mode, &r.InitialCash, &r.MaxTurns, &r.Games, &r.WinsA, &r.WinsB, &r.Draws, &r.AvgTurns, &r.ElapsedMS); err != nil {
			return nil, err
		}
		r.ID = id.String()
		r.Seed = uint32(seed)
		out = append(out, r)
	}
	return out, rows.Err()
}
