package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDeal
	EventMulligan
	EventDraw
	EventReshuffle
	EventEmptyDraw
	EventPlayChampion
	EventPlayDraw
	EventPlayExchange
	EventPass
	EventCombat
	EventEnergyChange
	EventDiscard
	EventHandLimitDiscard
	EventCollectLuna
	EventWin
	EventTurnLimit
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDeal:
		return "Deal"
	case EventMulligan:
		return "Mulligan"
	case EventDraw:
		return "Draw"
	case EventReshuffle:
		return "Reshuffle"
	case EventEmptyDraw:
		return "EmptyDraw"
	case EventPlayChampion:
		return "PlayChampion"
	case EventPlayDraw:
		return "PlayDraw"
	case EventPlayExchange:
		return "PlayExchange"
	case EventPass:
		return "Pass"
	case EventCombat:
		return "Combat"
	case EventEnergyChange:
		return "EnergyChange"
	case EventDiscard:
		return "Discard"
	case EventHandLimitDiscard:
		return "HandLimitDiscard"
	case EventCollectLuna:
		return "CollectLuna"
	case EventWin:
		return "Win"
	case EventTurnLimit:
		return "TurnLimit"
	default:
		return "Unknown"
	}
}

func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       `json:"seq"`            // monotonic sequence number
	Turn    int       `json:"turn"`           // which turn (1-based, 0 during setup)
	Phase   string    `json:"phase"`          // current phase name
	Player  int       `json:"player"`         // acting player (0 = A, 1 = B)
	Type    EventType `json:"type"`           // event type
	Card    string    `json:"card,omitempty"` // card label (if applicable)
	Details string    `json:"details"`        // human-readable detail string
}
