package game

import (
	"fmt"
	"slices"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// Card actions are the only code that moves cards between zones. Each
// re-validates its preconditions and panics on violation: a strategy that
// reaches here with an illegal move is a bug. Apply is the checked entry point.

// PlayChampion moves a champion from p's hand into p's combat zone and pays its cost.
func (gs *GameState) PlayChampion(p PlayerID, c CardIndex) {
	pl := gs.Players[p]
	card := Lookup(c)
	switch {
	case !card.IsChampion():
		panic(fmt.Sprintf("play champion: card %d is a %s", c, card.Type))
	case !pl.CanAfford(card):
		panic(fmt.Sprintf("play champion: %s cannot afford card %d (cost %d, cash %d)", p, c, card.Cost, pl.Cash))
	case !pl.Hand.Remove(c):
		panic(fmt.Sprintf("play champion: card %d not in %s's hand", c, p))
	}
	pl.Combat.Add(c)
	pl.Cash -= card.Cost
	gs.emit(func() log.GameEvent {
		return log.NewPlayChampionEvent(gs.Turn, gs.Phase.String(), int(p), card.String(), card.Cost)
	})
}

// PlayDrawCard pays for a draw/recall card, draws its cards and then discards it.
func (gs *GameState) PlayDrawCard(p PlayerID, c CardIndex) {
	pl := gs.Players[p]
	card := Lookup(c)
	switch {
	case card.Type != CardDraw:
		panic(fmt.Sprintf("play draw card: card %d is a %s", c, card.Type))
	case !pl.CanAfford(card):
		panic(fmt.Sprintf("play draw card: %s cannot afford card %d (cost %d, cash %d)", p, c, card.Cost, pl.Cash))
	case !pl.Hand.Remove(c):
		panic(fmt.Sprintf("play draw card: card %d not in %s's hand", c, p))
	}
	pl.Cash -= card.Cost
	release := gs.holdEvents()
	defer release()
	gs.emit(func() log.GameEvent {
		return log.NewPlayDrawEvent(gs.Turn, gs.Phase.String(), int(p), card.String(), card.Draw.Draw)
	})
	for i := 0; i < card.Draw.Draw; i++ {
		gs.DrawCard(p)
	}
	pl.Discard.Add(c)
}

// PlayExchangeCard trades p's weakest champion in hand for the card's lunas.
// p must hold at least one champion besides the exchange card.
func (gs *GameState) PlayExchangeCard(p PlayerID, c CardIndex) {
	pl := gs.Players[p]
	card := Lookup(c)
	switch {
	case card.Type != CardExchange:
		panic(fmt.Sprintf("play exchange card: card %d is a %s", c, card.Type))
	case !pl.CanAfford(card):
		panic(fmt.Sprintf("play exchange card: %s cannot afford card %d", p, c))
	case !pl.HasChampionInHand():
		panic(fmt.Sprintf("play exchange card: %s has no champion to trade", p))
	case !pl.Hand.Remove(c):
		panic(fmt.Sprintf("play exchange card: card %d not in %s's hand", c, p))
	}
	pl.Cash -= card.Cost

	traded := ExchangeTarget(pl.Hand.Cards())
	pl.Hand.Remove(traded)
	pl.Discard.Add(traded)
	pl.Cash += card.Exchange.Cash
	pl.Discard.Add(c)
	gs.emit(func() log.GameEvent {
		return log.NewPlayExchangeEvent(gs.Turn, gs.Phase.String(), int(p), card.String(), Lookup(traded).String(), card.Exchange.Cash)
	})
}

// ExchangeTarget returns the champion an exchange card would trade from hand.
// hand must contain a champion.
func ExchangeTarget(hand []CardIndex) CardIndex {
	picked := weakest(hand, 1, (*Card).IsChampion)
	if len(picked) == 0 {
		panic("exchange target: no champion in hand")
	}
	return picked[0]
}

// DrawCard moves the top card of p's deck into p's hand, reshuffling the
// discard pile into the deck first when the deck is empty. It reports false
// when both are empty and nothing was drawn.
func (gs *GameState) DrawCard(p PlayerID) bool {
	pl := gs.Players[p]
	if pl.Deck.IsEmpty() {
		gs.reshuffle(p)
	}
	c, ok := pl.Deck.Pop()
	if !ok {
		gs.emit(func() log.GameEvent { return log.NewEmptyDrawEvent(gs.Turn, gs.Phase.String(), int(p)) })
		return false
	}
	pl.Hand.Add(c)
	gs.emit(func() log.GameEvent { return log.NewDrawEvent(gs.Turn, gs.Phase.String(), int(p), Lookup(c).String()) })
	return true
}

// reshuffle shuffles the whole discard pile and pushes it onto the deck.
func (gs *GameState) reshuffle(p PlayerID) {
	pl := gs.Players[p]
	cards := pl.Discard.take()
	if len(cards) == 0 {
		return
	}
	rnd.Shuffle(gs.rng, cards)
	for _, c := range cards {
		pl.Deck.Push(c)
	}
	gs.emit(func() log.GameEvent { return log.NewReshuffleEvent(gs.Turn, gs.Phase.String(), int(p), len(cards)) })
}

// DiscardToHandLimit discards p's weakest cards until the hand holds
// HandLimit cards and returns what was discarded.
func (gs *GameState) DiscardToHandLimit(p PlayerID) []CardIndex {
	pl := gs.Players[p]
	excess := pl.Hand.Len() - HandLimit
	if excess <= 0 {
		return nil
	}
	dropped := weakest(pl.Hand.Cards(), excess, func(*Card) bool { return true })
	for _, c := range dropped {
		pl.Hand.Remove(c)
		pl.Discard.Add(c)
		gs.emit(func() log.GameEvent { return log.NewHandLimitDiscardEvent(gs.Turn, int(p), Lookup(c).String()) })
	}
	return dropped
}

// CollectLuna pays p the end-of-turn luna.
func (gs *GameState) CollectLuna(p PlayerID) {
	pl := gs.Players[p]
	pl.Cash++
	gs.emit(func() log.GameEvent { return log.NewCollectLunaEvent(gs.Turn, int(p), pl.Cash) })
}

// weakest returns up to n cards from cards, weakest first, considering only
// cards accepted by keep. Equal power is broken by the lower catalog index.
func weakest(cards []CardIndex, n int, keep func(*Card) bool) []CardIndex {
	var out []CardIndex
	for len(out) < n {
		best := -1
		for i, c := range cards {
			card := Lookup(c)
			if !keep(card) || slices.Contains(out, c) {
				continue
			}
			if best < 0 || weaker(card, Lookup(cards[best])) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		out = append(out, cards[best])
	}
	return out
}

func weaker(a, b *Card) bool {
	if a.Power != b.Power {
		return a.Power < b.Power
	}
	return a.Index < b.Index
}

func (gs *GameState) emitPass(p PlayerID) {
	gs.emit(func() log.GameEvent { return log.NewPassEvent(gs.Turn, gs.Phase.String(), int(p)) })
}
