package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	tools := NewTools(SessionConfig{
		Seed:              1,
		InitialCash:       game.DefaultCash,
		MaxTurns:          10,
		DefendProbability: game.DefaultDefendProbability,
	}, nil)
	t.Cleanup(tools.Close)
	return tools
}

func TestStartGame(t *testing.T) {
	tools := newTestTools(t)
	resp, err := tools.StartGame(context.Background(), "", -1, "")
	require.NoError(t, err)

	_, err = uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionAttack, resp.Pending.Type)
	assert.Equal(t, game.PlayerA, resp.Pending.Player)
	require.NotEmpty(t, resp.Pending.Moves)
	assert.Equal(t, "pass", resp.Pending.Moves[0].Desc)
	assert.Len(t, resp.State.You.Hand, game.InitialHandSize)
	assert.Nil(t, resp.State.Opponent.Hand)

	var deals int
	for _, e := range resp.Events {
		if e.Type == log.EventDeal {
			deals++
		}
	}
	assert.Equal(t, 2, deals)
}

// TestPlayToTurnLimit: an agent that always passes never wins, and the game
// ends by the turn cap unless the random attacker gets through.
func TestPlayToTurnLimit(t *testing.T) {
	tools := newTestTools(t)
	resp, err := tools.StartGame(context.Background(), "42", -1, "B")
	require.NoError(t, err)
	assert.Equal(t, game.PlayerB, resp.Pending.Player)

	for i := 0; i < 100 && !resp.GameOver; i++ {
		resp, err = tools.ChooseMove(context.Background(), "", 0)
		require.NoError(t, err)
	}
	require.True(t, resp.GameOver)
	assert.Contains(t, []string{"Draw", "A wins"}, resp.Result)
	assert.Nil(t, resp.Pending)
	if resp.Result == "Draw" {
		assert.Equal(t, 10, resp.State.Turn)
	}

	_, err = tools.ChooseMove(context.Background(), resp.SessionID, 0)
	assert.Error(t, err, "moves after the end are rejected")

	state, err := tools.GameState(resp.SessionID)
	require.NoError(t, err)
	assert.True(t, state.GameOver)
}

func TestChooseMoveValidation(t *testing.T) {
	tools := newTestTools(t)
	_, err := tools.ChooseMove(context.Background(), "", 0)
	assert.Error(t, err, "no session yet")

	resp, err := tools.StartGame(context.Background(), "7", -1, "")
	require.NoError(t, err)

	_, err = tools.ChooseMove(context.Background(), resp.SessionID, len(resp.Pending.Moves))
	assert.Error(t, err)
	_, err = tools.ChooseMove(context.Background(), resp.SessionID, -1)
	assert.Error(t, err)
	_, err = tools.ChooseMove(context.Background(), "not-a-session", 0)
	assert.Error(t, err)

	// The rejected calls left the decision pending.
	state, err := tools.GameState(resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, state.Pending)
	assert.Equal(t, resp.Pending.Moves, state.Pending.Moves)
}

func TestStartGameRejectsBadArguments(t *testing.T) {
	tools := newTestTools(t)
	_, err := tools.StartGame(context.Background(), "banana", -1, "")
	assert.Error(t, err)
	_, err = tools.StartGame(context.Background(), "", 70000, "")
	assert.Error(t, err)
	_, err = tools.StartGame(context.Background(), "", -1, "C")
	assert.Error(t, err)
}

func TestSessionsAreIndependent(t *testing.T) {
	tools := newTestTools(t)
	first, err := tools.StartGame(context.Background(), "1", -1, "")
	require.NoError(t, err)
	second, err := tools.StartGame(context.Background(), "2", -1, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	_, err = tools.ChooseMove(context.Background(), first.SessionID, 0)
	require.NoError(t, err)

	state, err := tools.GameState("")
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, state.SessionID, "default session is the latest")
	assert.Equal(t, second.Pending.Moves, state.Pending.Moves)
}

func TestCloseStopsBlockedDuel(t *testing.T) {
	sess, err := NewGameSession(SessionConfig{Seed: 3, DefendProbability: 0.5})
	require.NoError(t, err)
	_, err = sess.Wait(context.Background())
	require.NoError(t, err)

	sess.Close()
	assert.Contains(t, sess.Result(), "context canceled")
}

func TestListCardsJSON(t *testing.T) {
	var cards []map[string]any
	require.NoError(t, json.Unmarshal([]byte(respondJSON(game.Catalog())), &cards))
	assert.Len(t, cards, game.DeckSize)
	assert.Equal(t, "Champion", cards[0]["type"])
}

// TestAgentNeverSeesOpponentDraws: the event feed names the agent's own
// draws and only counts the opponent's.
func TestAgentNeverSeesOpponentDraws(t *testing.T) {
	tools := newTestTools(t)
	resp, err := tools.StartGame(context.Background(), "42", -1, "A")
	require.NoError(t, err)

	events := resp.Events
	for i := 0; i < 100 && !resp.GameOver; i++ {
		resp, err = tools.ChooseMove(context.Background(), resp.SessionID, 0)
		require.NoError(t, err)
		events = append(events, resp.Events...)
	}
	require.True(t, resp.GameOver)

	var own, opponent int
	for _, e := range events {
		if e.Type != log.EventDraw {
			continue
		}
		if e.Player == int(game.PlayerA) {
			assert.NotEmpty(t, e.Card)
			own++
			continue
		}
		assert.Empty(t, e.Card, "B's draw leaked: %s", e.Details)
		assert.Equal(t, "B draws a card", e.Details)
		opponent++
	}
	assert.Positive(t, own)
	assert.Positive(t, opponent)
}

func TestStartGameWithNoCash(t *testing.T) {
	tools := newTestTools(t)
	resp, err := tools.StartGame(context.Background(), "3", 0, "")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.State.You.Cash)
	assert.Equal(t, 0, resp.State.Opponent.Cash)
}
