// Package web serves the catalog, batch simulations and a live game feed
// over HTTP and WebSocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/sim"
	"github.com/JonathanFerron/oracle/internal/store"
)

// MaxSimulateGames bounds a single POST /api/simulate request.
const MaxSimulateGames = 10000

// maxWatchDelay bounds the per-event delay of the watch feed.
const maxWatchDelay = 2 * time.Second

// RunStore persists simulation runs. *store.Store satisfies it, including
// a nil store.
type RunStore interface {
	SaveRun(ctx context.Context, stats *sim.GameStats) (string, error)
	RecentRuns(ctx context.Context, limit int) ([]store.RunRecord, error)
}

// Options configures the server. A nil InitialCash and a zero MaxTurns fall
// back to the game defaults.
type Options struct {
	InitialCash       *uint16
	MaxTurns          int
	DefendProbability float64
	Store             RunStore
	Logger            *slog.Logger
}

// Server is the oracle HTTP server.
type Server struct {
	opts   Options
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		opts:   opts,
		logger: logger.With("tag", "web"),
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	s.mux.HandleFunc("GET /api/runs", s.handleRuns)
	s.mux.HandleFunc("GET /ws/watch", s.handleWatch)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, game.Catalog())
}

// seedParam accepts a JSON number or a string understood by config.ParseSeed.
type seedParam string

func (p *seedParam) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = seedParam(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("seed must be a number or a string")
	}
	*p = seedParam(n.String())
	return nil
}

type simulateRequest struct {
	Games       int       `json:"games"`
	Seed        seedParam `json:"seed"`
	InitialCash *int      `json:"initial_cash"`
	MaxTurns    int       `json:"max_turns"`
	Workers     int       `json:"workers"`
	Mode        string    `json:"mode"`
}

type simulateResponse struct {
	Seed    uint32      `json:"seed"`
	RunID   string      `json:"run_id,omitempty"`
	Summary sim.Summary `json:"summary"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("bad request body: %v", err))
		return
	}

	opts, err := s.simulateOptions(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	factory := sim.Random(s.opts.DefendProbability)
	stats, err := sim.Run(r.Context(), opts, factory, factory)
	if err != nil {
		s.logger.Warn("simulation failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := simulateResponse{Seed: opts.Seed, Summary: sim.Summarize(stats)}
	if s.opts.Store != nil {
		if resp.RunID, err = s.opts.Store.SaveRun(r.Context(), stats); err != nil {
			s.logger.Warn("save run failed", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) simulateOptions(req simulateRequest) (sim.Options, error) {
	opts := sim.Options{
		Games:       req.Games,
		InitialCash: s.opts.InitialCash,
		MaxTurns:    s.opts.MaxTurns,
		Workers:     max(req.Workers, 1),
		Logger:      s.logger,
	}
	if opts.Games == 0 {
		opts.Games = 1000
	}
	if opts.Games < 1 || opts.Games > MaxSimulateGames {
		return opts, fmt.Errorf("games must be in 1-%d, got %d", MaxSimulateGames, req.Games)
	}
	if req.InitialCash != nil {
		cash := *req.InitialCash
		if cash < 0 || cash > 0xffff {
			return opts, fmt.Errorf("initial_cash %d out of range", cash)
		}
		opts.InitialCash = game.Lunas(uint16(cash))
	}
	if req.MaxTurns < 0 {
		return opts, fmt.Errorf("max_turns must not be negative")
	}
	if req.MaxTurns > 0 {
		opts.MaxTurns = req.MaxTurns
	}
	mode, err := config.ParseMode(req.Mode)
	if err != nil {
		return opts, err
	}
	if mode == game.DeckCustom {
		return opts, fmt.Errorf("custom decks are not available over HTTP")
	}
	opts.Mode = mode
	if opts.Seed, err = config.ParseSeed(string(req.Seed)); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeJSON(w, http.StatusOK, []store.RunRecord{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}
	runs, err := s.opts.Store.RecentRuns(r.Context(), limit)
	if err != nil {
		s.logger.Warn("list runs failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not list runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
