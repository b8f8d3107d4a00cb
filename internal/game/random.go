package game

import (
	"context"

	"github.com/JonathanFerron/oracle/internal/rnd"
)

// DefaultDefendProbability is how often the random defender blocks.
const DefaultDefendProbability = 0.47

// RandomStrategy is the reference strategy: a uniformly random affordable
// card when attacking, and at most one random champion when defending.
type RandomStrategy struct {
	DefendProbability float64
}

func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{DefendProbability: DefaultDefendProbability}
}

func (s *RandomStrategy) ChooseAttack(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	hand := v.You.Hand
	if len(hand) == 0 {
		return Pass(), nil
	}

	hasChampion := false
	for _, c := range hand {
		if Lookup(c).IsChampion() {
			hasChampion = true
			break
		}
	}
	var candidates []*Card
	for _, c := range hand {
		card := Lookup(c)
		if card.Cost > v.You.Cash {
			continue
		}
		if card.Type == CardExchange && !hasChampion {
			continue
		}
		candidates = append(candidates, card)
	}
	if len(candidates) == 0 {
		return Pass(), nil
	}

	card := candidates[rnd.Below(r, len(candidates))]
	switch card.Type {
	case CardChampion:
		return PlayChampions(card.Index), nil
	case CardDraw:
		return PlayDraw(card.Index), nil
	default:
		return PlayExchange(card.Index), nil
	}
}

func (s *RandomStrategy) ChooseDefense(ctx context.Context, v *View, r rnd.Source) (Move, error) {
	if len(v.You.Hand) == 0 {
		return Pass(), nil
	}
	if rnd.Float64(r) >= s.DefendProbability {
		return Pass(), nil
	}

	var candidates []CardIndex
	for _, c := range v.You.Hand {
		card := Lookup(c)
		if card.IsChampion() && card.Cost <= v.You.Cash {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return Pass(), nil
	}
	return PlayChampions(candidates[rnd.Below(r, len(candidates))]), nil
}
