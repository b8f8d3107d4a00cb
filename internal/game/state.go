package game

import (
	"fmt"
	"slices"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// Player holds one seat's counters and zones.
type Player struct {
	Energy  int
	Cash    int
	Deck    Deck
	Hand    Hand
	Discard Discard
	Combat  CombatZone
}

func newPlayer(deckLimit int) *Player {
	return &Player{
		Energy:  InitialEnergy,
		Deck:    newDeck(deckLimit),
		Hand:    newHand(),
		Discard: newDiscard(),
		Combat:  newCombatZone(),
	}
}

// CanAfford reports whether the player has the lunas to play c.
func (p *Player) CanAfford(c *Card) bool {
	return c.Cost <= p.Cash
}

// HasChampionInHand reports whether an exchange card would have something to trade.
func (p *Player) HasChampionInHand() bool {
	for _, c := range p.Hand.Cards() {
		if Lookup(c).IsChampion() {
			return true
		}
	}
	return false
}

func (p *Player) clone() *Player {
	c := *p
	c.Deck = p.Deck.clone()
	c.Hand = Hand{p.Hand.pile.clone()}
	c.Discard = Discard{p.Discard.pile.clone()}
	c.Combat = CombatZone{p.Combat.pile.clone()}
	return &c
}

// GameState is the authoritative snapshot of one game.
type GameState struct {
	Players [2]*Player
	Turn    int // 0 before the first turn
	Current PlayerID
	Phase   Phase
	ToMove  PlayerID
	Result  Result
	Mode    DeckMode

	rng     rnd.Source
	events  log.EventLogger // nil skips event construction
	held    []log.GameEvent
	holding bool
}

// NewGameState creates an empty game that draws all randomness from src.
// Call Setup or SetupDecks before playing.
func NewGameState(mode DeckMode, src rnd.Source) *GameState {
	return &GameState{
		Players: [2]*Player{newPlayer(MaxDeckSize), newPlayer(MaxDeckSize)},
		Current: PlayerA,
		ToMove:  PlayerA,
		Phase:   PhaseAttack,
		Result:  ResultActive,
		Mode:    mode,
		rng:     src,
	}
}

// SetLogger routes game events to l. A nil logger disables events.
func (gs *GameState) SetLogger(l log.EventLogger) {
	if l == log.Discard {
		l = nil
	}
	gs.events = l
}

// RNG returns the game's random stream.
func (gs *GameState) RNG() rnd.Source {
	return gs.rng
}

func (gs *GameState) Player(p PlayerID) *Player {
	return gs.Players[p]
}

func (gs *GameState) Opponent(p PlayerID) PlayerID {
	return p.Other()
}

// Over reports whether the game has a final result.
func (gs *GameState) Over() bool {
	return gs.Result != ResultActive
}

// Round is the number of full exchanges started, ceil(turn/2).
func (gs *GameState) Round() int {
	return (gs.Turn + 1) / 2
}

// Setup deals a random game: 78 of the 120 cards are drawn by a partial
// shuffle and dealt alternately into the two decks, then each player draws
// an opening hand.
func (gs *GameState) Setup(initialCash uint16) {
	indices := make([]CardIndex, DeckSize)
	for i := range indices {
		indices[i] = CardIndex(i)
	}
	dealt := 2 * MaxDeckSize
	rnd.PartialShuffle(gs.rng, indices, dealt)

	for _, p := range gs.Players {
		p.Deck = newDeck(MaxDeckSize)
		p.Cash = int(initialCash)
	}
	for i := 0; i < dealt; i += 2 {
		gs.Players[PlayerA].Deck.Push(indices[i])
		gs.Players[PlayerB].Deck.Push(indices[i+1])
	}
	gs.dealHands()
}

// SetupDecks starts a game from fixed deck lists, used for monochrome and
// custom games. Each list is shuffled before the opening hands are drawn.
// The lists must not share cards.
func (gs *GameState) SetupDecks(initialCash uint16, decks [2][]CardIndex) error {
	seen := make(map[CardIndex]bool)
	for p, list := range decks {
		if len(list) <= InitialHandSize || len(list) > MaxOwnedCards {
			return fmt.Errorf("deck %s has %d cards, want %d-%d", PlayerID(p), len(list), InitialHandSize+1, MaxOwnedCards)
		}
		for _, c := range list {
			if int(c) >= DeckSize {
				return fmt.Errorf("deck %s: card index %d out of range", PlayerID(p), c)
			}
			if seen[c] {
				return fmt.Errorf("card %d appears in more than one deck", c)
			}
			seen[c] = true
		}
	}

	for p, list := range decks {
		cards := slices.Clone(list)
		rnd.Shuffle(gs.rng, cards)
		pl := gs.Players[p]
		pl.Deck = newDeck(len(cards))
		pl.Cash = int(initialCash)
		for _, c := range cards {
			pl.Deck.Push(c)
		}
	}
	gs.dealHands()
	return nil
}

func (gs *GameState) dealHands() {
	for i := 0; i < InitialHandSize; i++ {
		for _, p := range gs.Players {
			c, ok := p.Deck.Pop()
			if !ok {
				panic("deck exhausted while dealing opening hands")
			}
			p.Hand.Add(c)
		}
	}
	for id, p := range gs.Players {
		gs.emit(func() log.GameEvent {
			return log.NewDealEvent(id, p.Deck.Len(), p.Hand.Len())
		})
	}
}

// MonochromeDecks builds the two single-colour decks: Indigo for A and
// Orange for B, each with 34 champions, three draw-2 cards, two draw-3 cards
// and one exchange card.
func MonochromeDecks() [2][]CardIndex {
	colors := [2]Color{ColorIndigo, ColorOrange}
	var decks [2][]CardIndex
	var draw2, draw3, exchange []CardIndex
	for _, c := range Catalog() {
		switch {
		case c.Type == CardDraw && c.Draw.Draw == 2:
			draw2 = append(draw2, c.Index)
		case c.Type == CardDraw:
			draw3 = append(draw3, c.Index)
		case c.Type == CardExchange:
			exchange = append(exchange, c.Index)
		}
	}
	for p, color := range colors {
		for _, c := range Catalog() {
			if c.IsChampion() && c.Champion.Color == color {
				decks[p] = append(decks[p], c.Index)
			}
		}
		decks[p] = append(decks[p], draw2[3*p:3*p+3]...)
		decks[p] = append(decks[p], draw3[2*p:2*p+2]...)
		decks[p] = append(decks[p], exchange[p])
	}
	return decks
}

// MulliganCandidates applies the automatic mulligan rule: count hand cards
// below the average power threshold (at most MulliganMax) and return that
// many of the weakest cards.
func (gs *GameState) MulliganCandidates(p PlayerID) []CardIndex {
	hand := gs.Players[p].Hand.Cards()
	n := 0
	for _, c := range hand {
		if n >= MulliganMax {
			break
		}
		if Lookup(c).Power < MulliganPowerCut {
			n++
		}
	}
	return weakest(hand, n, func(*Card) bool { return true })
}

// Mulligan discards the given cards from p's hand and draws as many
// replacements. At most MulliganMax cards may be returned.
func (gs *GameState) Mulligan(p PlayerID, cards []CardIndex) error {
	if len(cards) > MulliganMax {
		return fmt.Errorf("mulligan of %d cards exceeds the limit of %d", len(cards), MulliganMax)
	}
	pl := gs.Players[p]
	for i, c := range cards {
		if !pl.Hand.Contains(c) || slices.Contains(cards[:i], c) {
			return fmt.Errorf("card %d is not in %s's hand", c, p)
		}
	}
	for _, c := range cards {
		pl.Hand.Remove(c)
		pl.Discard.Add(c)
		gs.emit(func() log.GameEvent { return log.NewMulliganEvent(int(p), Lookup(c).String()) })
	}
	for range cards {
		gs.DrawCard(p)
	}
	return nil
}

// Clone returns a deep copy of the state driven by src, for exploring
// hypothetical moves. The copy does not log.
func (gs *GameState) Clone(src rnd.Source) *GameState {
	c := *gs
	c.Players = [2]*Player{gs.Players[0].clone(), gs.Players[1].clone()}
	c.rng = src
	c.events = nil
	c.held, c.holding = nil, false
	return &c
}

func (gs *GameState) emit(build func() log.GameEvent) {
	if gs.events == nil {
		return
	}
	if gs.holding {
		gs.held = append(gs.held, build())
		return
	}
	gs.events.Log(build())
}

// holdEvents queues events until the returned release is called, so an
// action whose cards pass through no zone is only observed once complete.
func (gs *GameState) holdEvents() (release func()) {
	gs.holding = true
	return func() {
		gs.holding = false
		held := gs.held
		gs.held = nil
		for _, e := range held {
			gs.events.Log(e)
		}
	}
}
