package mcp

import (
	"context"

	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// AgentStrategy implements game.Strategy by sending decisions to the MCP
// session's pending channel and blocking on a response channel.
type AgentStrategy struct {
	player     game.PlayerID
	session    *GameSession
	responseCh chan int
}

// NewAgentStrategy creates a strategy for the given seat.
func NewAgentStrategy(player game.PlayerID, session *GameSession) *AgentStrategy {
	return &AgentStrategy{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

func (a *AgentStrategy) ChooseAttack(ctx context.Context, v *game.View, _ rnd.Source) (game.Move, error) {
	return a.decide(ctx, DecisionAttack, v)
}

func (a *AgentStrategy) ChooseDefense(ctx context.Context, v *game.View, _ rnd.Source) (game.Move, error) {
	return a.decide(ctx, DecisionDefense, v)
}

func (a *AgentStrategy) decide(ctx context.Context, kind DecisionType, v *game.View) (game.Move, error) {
	moves := game.LegalMoves(v)
	views := make([]MoveView, len(moves))
	for i, m := range moves {
		views[i] = MoveView{Index: i, Desc: m.String(), Move: m}
	}

	select {
	case a.session.pendingCh <- &PendingDecision{Type: kind, Player: a.player, View: v, Moves: views}:
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}

	select {
	case idx := <-a.responseCh:
		// The tool handler validated idx against the move list.
		return moves[idx], nil
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}
}

// Notify buffers every game event for the next tool response. The opponent
// is never a Notifier, so events are recorded once.
func (a *AgentStrategy) Notify(ctx context.Context, event log.GameEvent) error {
	a.session.appendEvent(event)
	return nil
}
