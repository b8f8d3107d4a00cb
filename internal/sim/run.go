// Package sim plays batches of games between two strategies and reduces
// their outcomes to statistics.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// StrategyFactory creates a strategy for one worker. Strategies are never
// shared between goroutines.
type StrategyFactory func() game.Strategy

// Random returns a factory for the reference random strategy.
func Random(defendProbability float64) StrategyFactory {
	return func() game.Strategy {
		return &game.RandomStrategy{DefendProbability: defendProbability}
	}
}

// Options configures a batch.
type Options struct {
	Games       int
	Seed        uint32  // master seed; each game gets its own seed drawn from it
	InitialCash *uint16 // nil = game.DefaultCash
	MaxTurns    int
	Mode        game.DeckMode
	Decks       [2][]game.CardIndex // DeckCustom only
	Workers     int                 // <= 1 plays serially, otherwise a worker pool
	Logger      *slog.Logger
}

// gameJob is one game of a batch.
type gameJob struct {
	SimID int
	Seed  uint32
}

type jobResult struct {
	res GameResult
	err error
}

// Run plays opts.Games games of a against b. Results are ordered by game, so
// a batch gives identical statistics whatever the worker count.
func Run(ctx context.Context, opts Options, a, b StrategyFactory) (*GameStats, error) {
	if opts.Games < 0 {
		return nil, fmt.Errorf("game count %d is negative", opts.Games)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("tag", "sim")

	master := rnd.New(opts.Seed)
	jobs := make([]gameJob, opts.Games)
	for i := range jobs {
		jobs[i] = gameJob{SimID: i, Seed: master.Uint32()}
	}

	start := time.Now()
	var results []GameResult
	var err error
	if opts.Workers <= 1 {
		results, err = runSerial(ctx, opts, jobs, a(), b())
	} else {
		results, err = runParallel(ctx, opts, jobs, a, b)
	}
	if err != nil {
		return nil, err
	}

	stats := newGameStats(opts, results)
	stats.Elapsed = time.Since(start)
	logger.Info("simulation finished",
		"games", opts.Games, "workers", max(opts.Workers, 1),
		"wins_a", stats.Wins[game.PlayerA], "wins_b", stats.Wins[game.PlayerB],
		"draws", stats.Draws, "elapsed", stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}

func runSerial(ctx context.Context, opts Options, jobs []gameJob, a, b game.Strategy) ([]GameResult, error) {
	results := make([]GameResult, 0, len(jobs))
	for _, job := range jobs {
		res, err := playGame(ctx, opts, job, a, b)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func runParallel(parent context.Context, opts Options, jobs []gameJob, a, b StrategyFactory) ([]GameResult, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	workers := opts.Workers
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	queue := make(chan gameJob, len(jobs))
	out := make(chan jobResult, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(ctx, &wg, opts, queue, out, a(), b())
	}
	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]GameResult, len(jobs))
	var firstErr error
	for r := range out {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		results[r.res.SimID] = r.res
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// worker plays jobs until the queue drains. Once ctx is done the remaining
// jobs are skipped.
func worker(ctx context.Context, wg *sync.WaitGroup, opts Options, jobs <-chan gameJob, out chan<- jobResult, a, b game.Strategy) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			continue
		}
		res, err := playGame(ctx, opts, job, a, b)
		out <- jobResult{res: res, err: err}
	}
}

func playGame(ctx context.Context, opts Options, job gameJob, a, b game.Strategy) (GameResult, error) {
	d, err := game.NewDuel(game.DuelConfig{
		InitialCash: opts.InitialCash,
		Seed:        job.Seed,
		Logger:      log.Discard,
		MaxTurns:    opts.MaxTurns,
		Mode:        opts.Mode,
		Decks:       opts.Decks,
	}, a, b)
	if err != nil {
		return GameResult{}, fmt.Errorf("game %d: %w", job.SimID, err)
	}
	result, err := d.Run(ctx)
	if err != nil {
		return GameResult{}, fmt.Errorf("game %d (seed %d): %w", job.SimID, job.Seed, err)
	}
	return GameResult{
		SimID:  job.SimID,
		Seed:   job.Seed,
		Result: result,
		Turns:  d.State.Turn,
		Energy: [2]int{d.State.Players[game.PlayerA].Energy, d.State.Players[game.PlayerB].Energy},
	}, nil
}
