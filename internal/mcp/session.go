package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionAttack   DecisionType = "attack"
	DecisionDefense  DecisionType = "defense"
	DecisionGameOver DecisionType = "game_over"
)

// MoveView is one numbered legal move.
type MoveView struct {
	Index int       `json:"index"`
	Desc  string    `json:"desc"`
	Move  game.Move `json:"move"`
}

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type   DecisionType  `json:"type"`
	Player game.PlayerID `json:"player"`
	View   *game.View    `json:"state"`
	Moves  []MoveView    `json:"moves,omitempty"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string           `json:"session_id"`
	Events    []log.GameEvent  `json:"events"`
	State     *game.View       `json:"state,omitempty"`
	Pending   *PendingDecision `json:"pending,omitempty"`
	GameOver  bool             `json:"game_over"`
	Result    string           `json:"result,omitempty"`
}

// SessionConfig configures a new agent game.
type SessionConfig struct {
	Seed              uint32
	InitialCash       uint16
	MaxTurns          int
	AgentPlayer       game.PlayerID
	DefendProbability float64 // of the random opponent
}

// GameSession holds the state of a single MCP game: the agent plays one
// seat, the random strategy the other.
type GameSession struct {
	ID          string
	duel        *game.Duel
	agent       *AgentStrategy
	agentPlayer game.PlayerID
	cancel      context.CancelFunc

	pendingCh chan *PendingDecision
	done      chan struct{}

	mu       sync.Mutex
	current  *PendingDecision
	events   []log.GameEvent
	gameOver bool
	result   string
}

// NewGameSession deals a game and starts the duel on its own goroutine. It
// returns once the duel is running; use Wait for the first decision.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	sess := &GameSession{
		ID:          uuid.NewString(),
		agentPlayer: cfg.AgentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		done:        make(chan struct{}),
	}
	sess.agent = NewAgentStrategy(cfg.AgentPlayer, sess)
	opponent := &game.RandomStrategy{DefendProbability: cfg.DefendProbability}

	strategies := [2]game.Strategy{}
	strategies[cfg.AgentPlayer] = sess.agent
	strategies[cfg.AgentPlayer.Other()] = opponent

	duel, err := game.NewDuel(game.DuelConfig{
		InitialCash: game.Lunas(cfg.InitialCash),
		Seed:        cfg.Seed,
		MaxTurns:    cfg.MaxTurns,
		Logger:      log.NewMemoryLogger(),
	}, strategies[0], strategies[1])
	if err != nil {
		return nil, err
	}
	sess.duel = duel

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)
	return sess, nil
}

func (s *GameSession) run(ctx context.Context) {
	defer close(s.done)
	result, err := s.duel.Run(ctx)

	summary := result.String()
	if err != nil {
		summary = fmt.Sprintf("error: %v", err)
	}
	s.mu.Lock()
	s.gameOver = true
	s.result = summary
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: s.agentPlayer,
		View:   game.BuildView(s.duel.State, s.agentPlayer),
	}
}

// Close stops the duel goroutine and waits for it to exit.
func (s *GameSession) Close() {
	s.cancel()
	<-s.done
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev log.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []log.GameEvent{}
	}
	return events
}

// Wait blocks until the next decision arrives from the game engine, then
// builds a ToolResponse with accumulated events and the pending decision.
func (s *GameSession) Wait(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.Lock()
	s.current = pending
	s.mu.Unlock()
	return s.response(pending), nil
}

// Choose answers the pending decision with the move at index and waits for
// the next decision.
func (s *GameSession) Choose(ctx context.Context, index int) (*ToolResponse, error) {
	s.mu.Lock()
	pending := s.current
	s.mu.Unlock()

	switch {
	case pending == nil:
		return nil, fmt.Errorf("no pending decision")
	case pending.Type == DecisionGameOver:
		return nil, fmt.Errorf("the game is over: %s", s.Result())
	case index < 0 || index >= len(pending.Moves):
		return nil, fmt.Errorf("invalid index %d, must be 0-%d", index, len(pending.Moves)-1)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	select {
	case s.agent.responseCh <- index:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.Wait(ctx)
}

// State returns the latest snapshot without answering anything. Between
// tool calls the duel is blocked on the agent or finished, so the pending
// view is current.
func (s *GameSession) State() *ToolResponse {
	s.mu.Lock()
	pending := s.current
	s.mu.Unlock()
	if pending == nil {
		return &ToolResponse{SessionID: s.ID, Events: s.drainEvents()}
	}
	return s.response(pending)
}

// Result reports the final result once the game is over.
func (s *GameSession) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *GameSession) response(pending *PendingDecision) *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
		State:     pending.View,
	}
	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}
	resp.Pending = pending
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
