package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type MoveKind int

const (
	MovePass MoveKind = iota
	MovePlayChampions
	MovePlayDraw
	MovePlayExchange
)

func (k MoveKind) String() string {
	switch k {
	case MovePass:
		return "pass"
	case MovePlayChampions:
		return "champions"
	case MovePlayDraw:
		return "draw"
	case MovePlayExchange:
		return "exchange"
	default:
		return "unknown"
	}
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Move is a decision proposed by a strategy. Cards holds 1-3 champions for
// MovePlayChampions, exactly one card for MovePlayDraw and MovePlayExchange,
// and nothing for MovePass.
type Move struct {
	Kind  MoveKind    `json:"kind"`
	Cards []CardIndex `json:"cards,omitempty"`
}

func Pass() Move { return Move{Kind: MovePass} }

func PlayChampions(cards ...CardIndex) Move {
	return Move{Kind: MovePlayChampions, Cards: cards}
}

func PlayDraw(c CardIndex) Move { return Move{Kind: MovePlayDraw, Cards: []CardIndex{c}} }

func PlayExchange(c CardIndex) Move { return Move{Kind: MovePlayExchange, Cards: []CardIndex{c}} }

func (m Move) String() string {
	if m.Kind == MovePass {
		return "pass"
	}
	labels := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		if int(c) < DeckSize {
			labels[i] = Lookup(c).String()
		} else {
			labels[i] = fmt.Sprintf("#%d", c)
		}
	}
	return fmt.Sprintf("play %s: %s", m.Kind, strings.Join(labels, ", "))
}

// Equal reports whether both moves play the same cards in the same order.
func (m Move) Equal(o Move) bool {
	return m.Kind == o.Kind && slices.Equal(m.Cards, o.Cards)
}

// ErrIllegalMove is matched by every error Apply returns.
var ErrIllegalMove = errors.New("illegal move")

// IllegalMoveError explains why a move was rejected.
type IllegalMoveError struct {
	Player PlayerID
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move by %s (%s): %s", e.Player, e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

// Apply validates m for player p and executes it. A rejected move leaves the
// state untouched.
func (gs *GameState) Apply(p PlayerID, m Move) error {
	if reason := gs.check(p, m); reason != "" {
		return &IllegalMoveError{Player: p, Move: m, Reason: reason}
	}
	switch m.Kind {
	case MovePass:
		gs.emitPass(p)
	case MovePlayChampions:
		for _, c := range m.Cards {
			gs.PlayChampion(p, c)
		}
	case MovePlayDraw:
		gs.PlayDrawCard(p, m.Cards[0])
	case MovePlayExchange:
		gs.PlayExchangeCard(p, m.Cards[0])
	}
	return nil
}

// check returns why m is illegal, or "" if it may be applied.
func (gs *GameState) check(p PlayerID, m Move) string {
	if gs.Over() {
		return "game is over"
	}
	if p != gs.ToMove {
		return fmt.Sprintf("%s is to move", gs.ToMove)
	}
	pl := gs.Players[p]

	switch m.Kind {
	case MovePass:
		if len(m.Cards) != 0 {
			return "pass takes no cards"
		}
		return ""
	case MovePlayChampions:
		if len(m.Cards) == 0 {
			return "no champions given"
		}
		if pl.Combat.Len()+len(m.Cards) > MaxCombatSize {
			return fmt.Sprintf("combat zone holds at most %d champions", MaxCombatSize)
		}
		cost := 0
		for i, c := range m.Cards {
			if reason := inHand(pl, c); reason != "" {
				return reason
			}
			if slices.Contains(m.Cards[:i], c) {
				return fmt.Sprintf("card %d listed twice", c)
			}
			card := Lookup(c)
			if !card.IsChampion() {
				return fmt.Sprintf("card %d is not a champion", c)
			}
			cost += card.Cost
		}
		if cost > pl.Cash {
			return fmt.Sprintf("champions cost %d, only %d luna available", cost, pl.Cash)
		}
		return ""
	case MovePlayDraw, MovePlayExchange:
		if gs.Phase != PhaseAttack {
			return fmt.Sprintf("%s cards can only be played when attacking", m.Kind)
		}
		if len(m.Cards) != 1 {
			return fmt.Sprintf("%s takes exactly one card", m.Kind)
		}
		c := m.Cards[0]
		if reason := inHand(pl, c); reason != "" {
			return reason
		}
		card := Lookup(c)
		want := CardDraw
		if m.Kind == MovePlayExchange {
			want = CardExchange
		}
		if card.Type != want {
			return fmt.Sprintf("card %d is a %s card", c, card.Type)
		}
		if !pl.CanAfford(card) {
			return fmt.Sprintf("card costs %d, only %d luna available", card.Cost, pl.Cash)
		}
		if m.Kind == MovePlayExchange && !pl.HasChampionInHand() {
			return "no champion in hand to exchange"
		}
		return ""
	default:
		return fmt.Sprintf("unknown move kind %d", int(m.Kind))
	}
}

func inHand(pl *Player, c CardIndex) string {
	if int(c) >= DeckSize {
		return fmt.Sprintf("card index %d out of range", c)
	}
	if !pl.Hand.Contains(c) {
		return fmt.Sprintf("card %d is not in hand", c)
	}
	return ""
}

// LegalMoves lists every move the viewing player may make: pass first, then
// champion groups in hand order, then draw and exchange cards when attacking.
func LegalMoves(v *View) []Move {
	moves := []Move{Pass()}
	room := MaxCombatSize - len(v.You.Combat)

	var champions []*Card
	hasChampion := false
	for _, c := range v.You.Hand {
		card := Lookup(c)
		if card.IsChampion() {
			hasChampion = true
			if card.Cost <= v.You.Cash {
				champions = append(champions, card)
			}
		}
	}

	var group []CardIndex
	var walk func(start, cost int)
	walk = func(start, cost int) {
		for i := start; i < len(champions); i++ {
			c := champions[i]
			if cost+c.Cost > v.You.Cash {
				continue
			}
			group = append(group, c.Index)
			moves = append(moves, PlayChampions(slices.Clone(group)...))
			if len(group) < room {
				walk(i+1, cost+c.Cost)
			}
			group = group[:len(group)-1]
		}
	}
	if room > 0 {
		walk(0, 0)
	}

	if v.Phase != PhaseAttack {
		return moves
	}
	for _, c := range v.You.Hand {
		card := Lookup(c)
		if card.Cost > v.You.Cash {
			continue
		}
		switch card.Type {
		case CardDraw:
			moves = append(moves, PlayDraw(c))
		case CardExchange:
			if hasChampion {
				moves = append(moves, PlayExchange(c))
			}
		}
	}
	return moves
}
