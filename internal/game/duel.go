package game

import (
	"context"
	"fmt"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// DuelConfig holds configuration for creating a new game.
type DuelConfig struct {
	InitialCash  *uint16    // lunas each player starts with (nil = DefaultCash)
	Seed         uint32     // seeds the game's MT19937 stream
	Source       rnd.Source // overrides Seed when set (scripted tests)
	Logger       log.EventLogger
	MaxTurns     int      // turn cap before the game is declared a draw (0 = DefaultMaxTurns)
	Mode         DeckMode // how decks are built; also selects the combo table
	Decks        [2][]CardIndex
	SkipMulligan bool
}

// Lunas returns a pointer to n, for DuelConfig.InitialCash.
func Lunas(n uint16) *uint16 { return &n }

// Duel runs one game between two strategies.
type Duel struct {
	State      *GameState
	Strategies [2]Strategy
	Logger     log.EventLogger
	ctx        context.Context
	maxTurns   int
	skipMull   bool
	seq        int
}

// NewDuel creates a game from cfg and deals the opening hands. DeckRandom
// deals from the whole catalog, DeckMonochrome uses MonochromeDecks and
// DeckCustom uses cfg.Decks.
func NewDuel(cfg DuelConfig, a, b Strategy) (*Duel, error) {
	src := cfg.Source
	if src == nil {
		src = rnd.New(cfg.Seed)
	}
	cash := uint16(DefaultCash)
	if cfg.InitialCash != nil {
		cash = *cfg.InitialCash
	}

	gs := NewGameState(cfg.Mode, src)
	d := Resume(gs, cfg, a, b)

	switch cfg.Mode {
	case DeckRandom:
		gs.Setup(cash)
	case DeckMonochrome:
		if err := gs.SetupDecks(cash, MonochromeDecks()); err != nil {
			return nil, err
		}
	case DeckCustom:
		if err := gs.SetupDecks(cash, cfg.Decks); err != nil {
			return nil, fmt.Errorf("custom decks: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown deck mode %d", int(cfg.Mode))
	}
	return d, nil
}

// Resume wraps an existing state, for continuing a saved or hand-built
// position. Setup fields of cfg are ignored.
func Resume(gs *GameState, cfg DuelConfig, a, b Strategy) *Duel {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	d := &Duel{
		State:      gs,
		Strategies: [2]Strategy{a, b},
		Logger:     logger,
		ctx:        context.Background(),
		maxTurns:   maxTurns,
		skipMull:   cfg.SkipMulligan || gs.Turn > 0,
	}

	_, notifyA := a.(Notifier)
	_, notifyB := b.(Notifier)
	if logger == log.Discard && !notifyA && !notifyB {
		gs.SetLogger(nil)
	} else {
		gs.SetLogger(eventSink{d})
	}
	return d
}

// Run plays the game to completion and returns its result. The context is
// checked between turns and passed to every strategy call.
func (d *Duel) Run(ctx context.Context) (Result, error) {
	d.ctx = ctx
	gs := d.State

	if err := d.mulligan(); err != nil {
		return gs.Result, err
	}

	for !gs.Over() {
		if gs.Turn >= d.maxTurns {
			gs.Result = ResultDraw
			d.log(log.NewTurnLimitEvent(gs.Turn))
			break
		}
		if err := d.PlayTurn(ctx); err != nil {
			return gs.Result, err
		}
		if err := ctx.Err(); err != nil {
			return gs.Result, err
		}
	}

	return gs.Result, nil
}

// mulligan lets the second player replace weak opening cards, once.
func (d *Duel) mulligan() error {
	if d.skipMull {
		return nil
	}
	d.skipMull = true
	gs := d.State

	cards := gs.MulliganCandidates(PlayerB)
	if m, ok := d.Strategies[PlayerB].(Mulliganer); ok {
		chosen, err := m.ChooseMulligan(d.ctx, BuildView(gs, PlayerB))
		if err != nil {
			return fmt.Errorf("mulligan: %w", err)
		}
		cards = chosen
	}
	if err := gs.Mulligan(PlayerB, cards); err != nil {
		return fmt.Errorf("mulligan: %w", err)
	}
	return nil
}

// PlayTurn plays one full turn for the current player. It does nothing once
// the game is over.
func (d *Duel) PlayTurn(ctx context.Context) error {
	d.ctx = ctx
	gs := d.State
	if gs.Over() {
		return nil
	}

	d.beginTurn()

	if err := d.attackPhase(); err != nil {
		return err
	}

	if gs.Players[gs.Current].Combat.Len() > 0 {
		if err := d.defensePhase(); err != nil {
			return err
		}
		gs.ResolveCombat()
		if gs.Over() {
			return nil
		}
	}

	d.endTurn()
	return nil
}

func (d *Duel) beginTurn() {
	gs := d.State
	gs.Turn++
	gs.Phase = PhaseAttack
	gs.ToMove = gs.Current
	d.log(log.NewTurnEvent(gs.Turn, int(gs.Current), [2]int{gs.Players[0].Energy, gs.Players[1].Energy}))

	// The first player skips the draw on the opening turn.
	if gs.Turn == 1 && gs.Current == PlayerA {
		return
	}
	gs.DrawCard(gs.Current)
}

func (d *Duel) attackPhase() error {
	gs := d.State
	p := gs.Current
	m, err := d.Strategies[p].ChooseAttack(d.ctx, BuildView(gs, p), gs.rng)
	if err != nil {
		return fmt.Errorf("turn %d: %s attack: %w", gs.Turn, p, err)
	}
	if err := gs.Apply(p, m); err != nil {
		return fmt.Errorf("turn %d: %s attack: %w", gs.Turn, p, err)
	}
	return nil
}

func (d *Duel) defensePhase() error {
	gs := d.State
	p := gs.Current.Other()
	gs.Phase = PhaseDefense
	gs.ToMove = p
	d.log(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String(), int(p)))

	m, err := d.Strategies[p].ChooseDefense(d.ctx, BuildView(gs, p), gs.rng)
	if err != nil {
		return fmt.Errorf("turn %d: %s defense: %w", gs.Turn, p, err)
	}
	if err := gs.Apply(p, m); err != nil {
		return fmt.Errorf("turn %d: %s defense: %w", gs.Turn, p, err)
	}
	return nil
}

func (d *Duel) endTurn() {
	gs := d.State
	p := gs.Current
	gs.CollectLuna(p)
	gs.DiscardToHandLimit(p)
	gs.Current = p.Other()
	gs.ToMove = gs.Current
	gs.Phase = PhaseAttack
}

// log records an event and forwards it to strategies that listen.
func (d *Duel) log(event log.GameEvent) {
	if d.State.events == nil {
		return
	}
	d.seq++
	event.Seq = d.seq
	d.Logger.Log(event)
	// Notifications are best effort. Each seat sees its own redacted copy.
	for p, s := range d.Strategies {
		if n, ok := s.(Notifier); ok {
			_ = n.Notify(d.ctx, log.ForPlayer(event, p))
		}
	}
}

// eventSink routes events raised by card actions through the duel.
type eventSink struct{ d *Duel }

func (s eventSink) Log(event log.GameEvent) { s.d.log(event) }
func (s eventSink) Events() []log.GameEvent { return s.d.Logger.Events() }
