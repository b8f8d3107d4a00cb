// Package mcp exposes agent-playable games as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/game"
)

// Tools owns the running sessions of one MCP server. Tools that take a
// session_id default to the most recently started game.
type Tools struct {
	defaults SessionConfig
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*GameSession
	latest   string
}

// NewTools returns a tool set whose games use defaults for anything the
// caller leaves out.
func NewTools(defaults SessionConfig, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{
		defaults: defaults,
		logger:   logger.With("tag", "mcp"),
		sessions: make(map[string]*GameSession),
	}
}

// Register adds all game tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(chooseMoveTool(), t.handleChooseMove)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(listCardsTool(), t.handleListCards)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Oracle game against the random strategy. Returns the session id, "+
			"the opening events and the first pending decision."),
		mcp.WithString("seed", mcp.Description("Game seed: decimal, 0x hex, or \"random\". Defaults to the server seed.")),
		mcp.WithNumber("initial_cash", mcp.Description("Lunas each player starts with (default 30)")),
		mcp.WithString("agent_player", mcp.Description("Which seat the agent plays: \"A\" moves first, \"B\" second (default A)")),
	)
}

func chooseMoveTool() mcp.Tool {
	return mcp.NewTool("choose_move",
		mcp.WithDescription("Answer the pending attack or defense decision with the index of a move from the pending moves list. "+
			"Returns the events since the last call and the next decision or the final result."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into pending.moves")),
		mcp.WithString("session_id", mcp.Description("Session to act in (default: the latest game)")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the visible game state, accumulated events and pending decision without answering it. Read-only."),
		mcp.WithString("session_id", mcp.Description("Session to inspect (default: the latest game)")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the 120 catalog cards with their cost, dice, attack base, colour, species and power."),
	)
}

// --- Operations ---

// StartGame starts a session and waits for its first decision. A negative
// initialCash keeps the configured starting cash.
func (t *Tools) StartGame(ctx context.Context, seed string, initialCash int, agentPlayer string) (*ToolResponse, error) {
	cfg := t.defaults
	if seed != "" {
		s, err := config.ParseSeed(seed)
		if err != nil {
			return nil, err
		}
		cfg.Seed = s
	}
	if initialCash >= 0 {
		if initialCash > 0xffff {
			return nil, fmt.Errorf("initial_cash %d out of range", initialCash)
		}
		cfg.InitialCash = uint16(initialCash)
	}
	if agentPlayer != "" {
		if err := cfg.AgentPlayer.UnmarshalText([]byte(agentPlayer)); err != nil {
			return nil, err
		}
	}

	sess, err := NewGameSession(cfg)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.sessions[sess.ID] = sess
	t.latest = sess.ID
	t.mu.Unlock()
	t.logger.Info("game started", "session", sess.ID, "seed", cfg.Seed, "agent", cfg.AgentPlayer)

	resp, err := sess.Wait(ctx)
	if err != nil {
		return nil, err
	}
	t.finish(sess, resp)
	return resp, nil
}

// ChooseMove answers the pending decision of a session.
func (t *Tools) ChooseMove(ctx context.Context, sessionID string, index int) (*ToolResponse, error) {
	sess, err := t.session(sessionID)
	if err != nil {
		return nil, err
	}
	resp, err := sess.Choose(ctx, index)
	if err != nil {
		return nil, err
	}
	t.finish(sess, resp)
	return resp, nil
}

// GameState returns the current snapshot of a session.
func (t *Tools) GameState(sessionID string) (*ToolResponse, error) {
	sess, err := t.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

// Close stops every running session.
func (t *Tools) Close() {
	t.mu.Lock()
	sessions := t.sessions
	t.sessions = make(map[string]*GameSession)
	t.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

func (t *Tools) session(id string) (*GameSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" {
		id = t.latest
	}
	sess, ok := t.sessions[id]
	if !ok {
		if id == "" {
			return nil, fmt.Errorf("no game is running, use start_game first")
		}
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return sess, nil
}

// finish logs finished games. Finished sessions stay readable through
// get_game_state.
func (t *Tools) finish(sess *GameSession, resp *ToolResponse) {
	if resp.GameOver {
		t.logger.Info("game finished", "session", sess.ID, "result", resp.Result)
	}
}

// --- Tool handlers ---

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.StartGame(ctx,
		request.GetString("seed", ""),
		request.GetInt("initial_cash", -1),
		request.GetString("agent_player", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleChooseMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.ChooseMove(ctx, request.GetString("session_id", ""), request.GetInt("index", -1))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.GameState(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(game.Catalog())), nil
}
