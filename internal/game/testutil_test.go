package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// ScriptedStrategy is a Strategy that follows a predefined script of moves.
// Once a script runs out it passes.
type ScriptedStrategy struct {
	name     string
	attacks  []Move
	defenses []Move
	aPos     int
	dPos     int

	mulligan []CardIndex

	views []*View // every view it was asked to decide on
}

func NewScriptedStrategy(name string) *ScriptedStrategy {
	return &ScriptedStrategy{name: name}
}

func (s *ScriptedStrategy) AddAttack(m Move) *ScriptedStrategy {
	s.attacks = append(s.attacks, m)
	return s
}

func (s *ScriptedStrategy) AddDefense(m Move) *ScriptedStrategy {
	s.defenses = append(s.defenses, m)
	return s
}

func (s *ScriptedStrategy) SetMulligan(cards ...CardIndex) *ScriptedStrategy {
	s.mulligan = cards
	return s
}

func (s *ScriptedStrategy) ChooseAttack(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	s.views = append(s.views, v)
	if s.aPos >= len(s.attacks) {
		return Pass(), nil
	}
	m := s.attacks[s.aPos]
	s.aPos++
	return m, nil
}

func (s *ScriptedStrategy) ChooseDefense(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	s.views = append(s.views, v)
	if s.dPos >= len(s.defenses) {
		return Pass(), nil
	}
	m := s.defenses[s.dPos]
	s.dPos++
	return m, nil
}

// mulliganStrategy adds the Mulliganer hook to a scripted strategy.
type mulliganStrategy struct {
	*ScriptedStrategy
}

func (s mulliganStrategy) ChooseMulligan(ctx context.Context, v *View) ([]CardIndex, error) {
	return s.mulligan, nil
}

// errStrategy fails every decision.
type errStrategy struct{}

func (errStrategy) ChooseAttack(context.Context, *View, rnd.Source) (Move, error) {
	return Move{}, fmt.Errorf("strategy offline")
}

func (errStrategy) ChooseDefense(context.Context, *View, rnd.Source) (Move, error) {
	return Move{}, fmt.Errorf("strategy offline")
}

// recordingStrategy delegates to another strategy and records views and
// events, for invariant checks over whole games.
type recordingStrategy struct {
	inner   Strategy
	attacks []*View
	events  []log.GameEvent
}

func (s *recordingStrategy) ChooseAttack(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	s.attacks = append(s.attacks, v)
	return s.inner.ChooseAttack(ctx, v, r)
}

func (s *recordingStrategy) ChooseDefense(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	return s.inner.ChooseDefense(ctx, v, r)
}

func (s *recordingStrategy) Notify(ctx context.Context, e log.GameEvent) error {
	s.events = append(s.events, e)
	return nil
}

// scriptedSource replays fixed values, then falls back to a seeded MT.
type scriptedSource struct {
	vals     []uint32
	pos      int
	fallback rnd.Source
}

func newScriptedSource(vals ...uint32) *scriptedSource {
	return &scriptedSource{vals: vals, fallback: rnd.New(1)}
}

func (s *scriptedSource) Uint32() uint32 {
	if s.pos < len(s.vals) {
		v := s.vals[s.pos]
		s.pos++
		return v
	}
	return s.fallback.Uint32()
}

// --- State helpers ---

// newTestState returns an undealt random-mode state with DefaultCash and
// the given hands. Decks are empty unless filled by the caller.
func newTestState(src rnd.Source, handA, handB []CardIndex) *GameState {
	gs := NewGameState(DeckRandom, src)
	for i, hand := range [][]CardIndex{handA, handB} {
		gs.Players[i].Cash = DefaultCash
		for _, c := range hand {
			gs.Players[i].Hand.Add(c)
		}
	}
	return gs
}

// zoneCounts returns how many zones hold each card index.
func zoneCounts(gs *GameState) [DeckSize]int {
	var counts [DeckSize]int
	for _, p := range gs.Players {
		for _, zone := range [][]CardIndex{p.Deck.Cards(), p.Hand.Cards(), p.Discard.Cards(), p.Combat.Cards()} {
			for _, c := range zone {
				counts[c]++
			}
		}
	}
	return counts
}

// checkConservation fails if any card is in two zones or the number of
// tracked cards differs from want.
func checkConservation(t *testing.T, gs *GameState, want int) {
	t.Helper()
	counts := zoneCounts(gs)
	total := 0
	for c, n := range counts {
		if n > 1 {
			t.Fatalf("turn %d: card %d is in %d zones", gs.Turn, c, n)
		}
		total += n
	}
	if total != want {
		t.Fatalf("turn %d: %d cards tracked, want %d", gs.Turn, total, want)
	}
}

// runDuelToCompletion runs a game and returns the logger for inspection.
func runDuelToCompletion(t *testing.T, cfg DuelConfig, a, b Strategy) (*Duel, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger

	duel, err := NewDuel(cfg, a, b)
	if err != nil {
		t.Fatalf("NewDuel: %v", err)
	}
	result, err := duel.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Duel error: %v", err)
	}
	t.Logf("Duel result: %s after %d turns (%d events)", result, duel.State.Turn, len(logger.Events()))
	return duel, logger
}
