package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// Discard drops every event. Bulk simulations use it so games skip event
// formatting entirely.
var Discard EventLogger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Log(GameEvent)       {}
func (discardLogger) Events() []GameEvent { return nil }

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- Formatting ---

// PlayerName returns "A" or "B".
func PlayerName(p int) string {
	if p == 1 {
		return "B"
	}
	return "A"
}

// ForPlayer returns e as viewer may see it: a card drawn by the other player
// is not named.
func ForPlayer(e GameEvent, viewer int) GameEvent {
	if e.Type == EventDraw && e.Player != viewer {
		e.Card = ""
		e.Details = fmt.Sprintf("%s draws a card", PlayerName(e.Player))
	}
	return e
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %-8s| %s", e.Turn, e.Phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s (%s to move)", phase, PlayerName(player)),
	}
}

func NewTurnEvent(turn int, player int, energy [2]int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d, round %d (%s) energy A:%d B:%d ===", turn, (turn+1)/2, PlayerName(player), energy[0], energy[1]),
	}
}

func NewDealEvent(player int, deck, hand int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventDeal,
		Details: fmt.Sprintf("%s dealt %d cards (%d in hand)", PlayerName(player), deck+hand, hand),
	}
}

func NewMulliganEvent(player int, cardLabel string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventMulligan,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s mulligans %s", PlayerName(player), cardLabel),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardLabel string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardLabel),
	}
}

func NewReshuffleEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReshuffle,
		Details: fmt.Sprintf("%s reshuffles %d discarded cards into the deck", PlayerName(player), count),
	}
}

func NewEmptyDrawEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEmptyDraw,
		Details: fmt.Sprintf("%s cannot draw: deck and discard are empty", PlayerName(player)),
	}
}

func NewPlayChampionEvent(turn int, phase string, player int, cardLabel string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayChampion,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s plays champion %s for %d luna", PlayerName(player), cardLabel, cost),
	}
}

func NewPlayDrawEvent(turn int, phase string, player int, cardLabel string, draws int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayDraw,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s plays %s and draws %d", PlayerName(player), cardLabel, draws),
	}
}

func NewPlayExchangeEvent(turn int, phase string, player int, cardLabel, traded string, cash int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayExchange,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s plays %s, trading %s → +%d luna", PlayerName(player), cardLabel, traded, cash),
	}
}

func NewPassEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passes", PlayerName(player)),
	}
}

func NewCombatEvent(turn int, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Combat",
		Player:  player,
		Type:    EventCombat,
		Details: details,
	}
}

func NewEnergyChangeEvent(turn int, player int, oldEnergy, newEnergy int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Combat",
		Player:  player,
		Type:    EventEnergyChange,
		Details: fmt.Sprintf("%s energy: %d → %d", PlayerName(player), oldEnergy, newEnergy),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardLabel string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s is sent to %s's discard (%s)", cardLabel, PlayerName(player), reason),
	}
}

func NewHandLimitDiscardEvent(turn int, player int, cardLabel string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Player:  player,
		Type:    EventHandLimitDiscard,
		Card:    cardLabel,
		Details: fmt.Sprintf("%s discards %s to the hand limit", PlayerName(player), cardLabel),
	}
}

func NewCollectLunaEvent(turn int, player int, cash int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Player:  player,
		Type:    EventCollectLuna,
		Details: fmt.Sprintf("%s collects 1 luna (%d total)", PlayerName(player), cash),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}

func NewTurnLimitEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End",
		Type:    EventTurnLimit,
		Details: fmt.Sprintf("Turn limit reached after %d turns: draw", turn),
	}
}
