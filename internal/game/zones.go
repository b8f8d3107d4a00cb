package game

import (
	"fmt"
	"slices"
)

// Deck is a bounded stack; the last element is the top card. Its limit is
// the number of cards the owner was dealt.
type Deck struct {
	limit int
	cards []CardIndex
}

func (d *Deck) Push(c CardIndex) {
	if len(d.cards) >= d.limit {
		panic(fmt.Sprintf("deck overflow pushing card %d (limit %d)", c, d.limit))
	}
	d.cards = append(d.cards, c)
}

// Pop removes the top card. ok is false when the deck is empty.
func (d *Deck) Pop() (c CardIndex, ok bool) {
	n := len(d.cards)
	if n == 0 {
		return 0, false
	}
	c = d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }
func (d *Deck) Len() int      { return len(d.cards) }

// Cards returns the deck bottom to top. Callers must not modify it.
func (d *Deck) Cards() []CardIndex { return d.cards }

// pile is an unordered zone with a hard capacity. Removal swaps the last
// element into the vacated slot.
type pile struct {
	name  string
	limit int
	cards []CardIndex
}

func (p *pile) Add(c CardIndex) {
	if len(p.cards) >= p.limit {
		panic(fmt.Sprintf("%s overflow adding card %d (limit %d)", p.name, c, p.limit))
	}
	p.cards = append(p.cards, c)
}

// Remove deletes c and reports whether it was present.
func (p *pile) Remove(c CardIndex) bool {
	i := slices.Index(p.cards, c)
	if i < 0 {
		return false
	}
	last := len(p.cards) - 1
	p.cards[i] = p.cards[last]
	p.cards = p.cards[:last]
	return true
}

func (p *pile) Contains(c CardIndex) bool { return slices.Contains(p.cards, c) }
func (p *pile) Len() int                  { return len(p.cards) }
func (p *pile) IsEmpty() bool             { return len(p.cards) == 0 }

// Cards returns the zone contents. Callers must not modify it.
func (p *pile) Cards() []CardIndex { return p.cards }

// take empties the zone and returns what it held.
func (p *pile) take() []CardIndex {
	out := p.cards
	p.cards = nil
	return out
}

type Hand struct{ pile }

type Discard struct{ pile }

// CombatZone holds the champions committed to the current combat.
type CombatZone struct{ pile }

// ClearInto moves every card in the zone to d.
func (z *CombatZone) ClearInto(d *Discard) {
	for _, c := range z.take() {
		d.Add(c)
	}
}

func newDeck(limit int) Deck    { return Deck{limit: limit} }
func newHand() Hand             { return Hand{pile{name: "hand", limit: MaxHandSize}} }
func newDiscard() Discard       { return Discard{pile{name: "discard", limit: MaxOwnedCards}} }
func newCombatZone() CombatZone { return CombatZone{pile{name: "combat zone", limit: MaxCombatSize}} }

func (d Deck) clone() Deck {
	d.cards = slices.Clone(d.cards)
	return d
}

func (p pile) clone() pile {
	p.cards = slices.Clone(p.cards)
	return p
}
