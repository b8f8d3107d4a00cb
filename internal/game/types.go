package game

import "fmt"

// --- Constants ---

const (
	DeckSize         = 120 // cards in the full catalog
	MaxDeckSize      = 39  // cards dealt to each player in a random game
	MaxOwnedCards    = 40  // upper bound for monochrome and custom decks
	InitialHandSize  = 6
	InitialEnergy    = 99
	DefaultCash      = 30
	DefaultMaxTurns  = 500
	HandLimit        = 7  // enforced at end of turn
	MaxHandSize      = 12 // hard cap
	MaxCombatSize    = 3
	MulliganMax      = 2
	MulliganPowerCut = 4.98
)

// --- Enums ---

// PlayerID identifies a seat. A always moves first.
type PlayerID int

const (
	PlayerA PlayerID = iota
	PlayerB
)

// Other returns the opposing seat.
func (p PlayerID) Other() PlayerID {
	return 1 - p
}

func (p PlayerID) String() string {
	if p == PlayerB {
		return "B"
	}
	return "A"
}

func (p PlayerID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PlayerID) UnmarshalText(b []byte) error {
	switch string(b) {
	case "A", "a":
		*p = PlayerA
	case "B", "b":
		*p = PlayerB
	default:
		return fmt.Errorf("unknown player %q", b)
	}
	return nil
}

type Phase int

const (
	PhaseAttack Phase = iota
	PhaseDefense
)

func (p Phase) String() string {
	switch p {
	case PhaseAttack:
		return "Attack"
	case PhaseDefense:
		return "Defense"
	default:
		return "Unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Result is the game outcome. Values match the order used by GameStats.Wins.
type Result int

const (
	ResultAWins Result = iota
	ResultBWins
	ResultDraw
	ResultActive
)

func (r Result) String() string {
	switch r {
	case ResultAWins:
		return "A wins"
	case ResultBWins:
		return "B wins"
	case ResultDraw:
		return "Draw"
	case ResultActive:
		return "Active"
	default:
		return "Unknown"
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Winner reports the winning seat, if any.
func (r Result) Winner() (PlayerID, bool) {
	switch r {
	case ResultAWins:
		return PlayerA, true
	case ResultBWins:
		return PlayerB, true
	default:
		return 0, false
	}
}

func winFor(p PlayerID) Result {
	if p == PlayerB {
		return ResultBWins
	}
	return ResultAWins
}

// DeckMode selects how decks were built, which changes the combo table.
type DeckMode int

const (
	DeckRandom DeckMode = iota
	DeckMonochrome
	DeckCustom
)

func (m DeckMode) String() string {
	switch m {
	case DeckRandom:
		return "random"
	case DeckMonochrome:
		return "monochrome"
	case DeckCustom:
		return "custom"
	default:
		return "unknown"
	}
}

func (m DeckMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseDeckMode accepts the names produced by DeckMode.String.
func ParseDeckMode(s string) (DeckMode, error) {
	switch s {
	case "random", "":
		return DeckRandom, nil
	case "monochrome":
		return DeckMonochrome, nil
	case "custom":
		return DeckCustom, nil
	default:
		return DeckRandom, fmt.Errorf("unknown deck mode %q", s)
	}
}

type CardType int

const (
	CardChampion CardType = iota
	CardDraw
	CardExchange
)

func (t CardType) String() string {
	switch t {
	case CardChampion:
		return "Champion"
	case CardDraw:
		return "Draw"
	case CardExchange:
		return "Exchange"
	default:
		return "Unknown"
	}
}

func (t CardType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type Color int

const (
	ColorRed Color = iota
	ColorIndigo
	ColorOrange
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorIndigo:
		return "Indigo"
	case ColorOrange:
		return "Orange"
	default:
		return "Unknown"
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type Species int

const (
	Human Species = iota
	Elf
	Dwarf
	Orc
	Goblin
	Dragon
	Hobbit
	Centaur
	Minotaur
	Aven
	Cyclops
	Faun
	Fairy
	Koatl
	Lycan
)

var speciesNames = [...]string{
	"Human", "Elf", "Dwarf", "Orc", "Goblin", "Dragon", "Hobbit", "Centaur",
	"Minotaur", "Aven", "Cyclops", "Faun", "Fairy", "Koatl", "Lycan",
}

func (s Species) String() string {
	if s < 0 || int(s) >= len(speciesNames) {
		return "Unknown"
	}
	return speciesNames[s]
}

func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Order returns the faction the species belongs to.
func (s Species) Order() Order {
	switch s {
	case Human, Elf, Dwarf:
		return OrderDawn
	case Hobbit, Faun, Centaur:
		return OrderVerdant
	case Orc, Goblin, Minotaur:
		return OrderEmber
	case Dragon, Cyclops, Fairy:
		return OrderEternal
	case Aven, Koatl, Lycan:
		return OrderMoonlight
	default:
		panic(fmt.Sprintf("species %d has no order", int(s)))
	}
}

// Order groups three species into a faction.
type Order int

const (
	OrderDawn Order = iota
	OrderVerdant
	OrderEmber
	OrderEternal
	OrderMoonlight
)

func (o Order) String() string {
	switch o {
	case OrderDawn:
		return "Dawn Light"
	case OrderVerdant:
		return "Verdant Light"
	case OrderEmber:
		return "Ember Light"
	case OrderEternal:
		return "Eternal Light"
	case OrderMoonlight:
		return "Moonlight"
	default:
		return "Unknown"
	}
}

func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
