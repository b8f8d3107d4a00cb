package game

// ComboCard is the part of a champion that matters for combo scoring.
type ComboCard struct {
	Species Species
	Color   Color
}

func (c ComboCard) order() Order { return c.Species.Order() }

func comboCards(zone []CardIndex) []ComboCard {
	out := make([]ComboCard, len(zone))
	for i, c := range zone {
		ch := Lookup(c).Champion
		out[i] = ComboCard{Species: ch.Species, Color: ch.Color}
	}
	return out
}

// ComboBonus scores 2-3 champions played together. Species matches are
// checked before order matches, and order before color. Any other card
// count scores 0.
func ComboBonus(cards []ComboCard, mode DeckMode) int {
	if len(cards) < 2 || len(cards) > MaxCombatSize {
		return 0
	}
	if mode == DeckRandom {
		return randomBonus(cards)
	}
	return prebuiltBonus(cards)
}

func randomBonus(cards []ComboCard) int {
	three := len(cards) == 3
	if n := maxSpecies(cards); n >= 2 {
		switch {
		case !three:
			return 10
		case n == 3:
			return 16
		case thirdSharesPairOrder(cards):
			return 14
		case thirdSharesPairColor(cards):
			return 13
		default:
			return 10
		}
	}
	if n := maxOrder(cards); n >= 2 {
		switch {
		case !three:
			return 7
		case n == 3:
			return 11
		case thirdSharesOrderPairColor(cards):
			return 9
		default:
			return 7
		}
	}
	if n := maxColor(cards); n >= 2 {
		if three && n == 3 {
			return 8
		}
		return 5
	}
	return 0
}

func prebuiltBonus(cards []ComboCard) int {
	three := len(cards) == 3
	if n := maxSpecies(cards); n >= 2 {
		switch {
		case !three:
			return 7
		case n == 3:
			return 12
		case thirdSharesPairOrder(cards):
			return 9
		default:
			return 7
		}
	}
	if n := maxOrder(cards); n >= 2 {
		if three && n == 3 {
			return 6
		}
		return 4
	}
	return 0
}

func maxSpecies(cards []ComboCard) int {
	var counts [len(speciesNames)]int
	best := 0
	for _, c := range cards {
		counts[c.Species]++
		best = max(best, counts[c.Species])
	}
	return best
}

func maxOrder(cards []ComboCard) int {
	var counts [OrderMoonlight + 1]int
	best := 0
	for _, c := range cards {
		counts[c.order()]++
		best = max(best, counts[c.order()])
	}
	return best
}

func maxColor(cards []ComboCard) int {
	var counts [ColorOrange + 1]int
	best := 0
	for _, c := range cards {
		counts[c.Color]++
		best = max(best, counts[c.Color])
	}
	return best
}

// splitPair separates three cards into a matching pair and the odd one out,
// using same to compare. ok is false if no pair exists.
func splitPair(cards []ComboCard, same func(a, b ComboCard) bool) (pair [2]ComboCard, odd ComboCard, ok bool) {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if same(cards[i], cards[j]) {
				return [2]ComboCard{cards[i], cards[j]}, cards[3-i-j], true
			}
		}
	}
	return pair, odd, false
}

func sameSpecies(a, b ComboCard) bool { return a.Species == b.Species }
func sameOrder(a, b ComboCard) bool   { return a.order() == b.order() }

func thirdSharesPairOrder(cards []ComboCard) bool {
	pair, odd, ok := splitPair(cards, sameSpecies)
	return ok && odd.Species != pair[0].Species && odd.order() == pair[0].order()
}

// thirdSharesPairColor compares against the later card of the species pair.
func thirdSharesPairColor(cards []ComboCard) bool {
	pair, odd, ok := splitPair(cards, sameSpecies)
	return ok && odd.Color == pair[1].Color
}

func thirdSharesOrderPairColor(cards []ComboCard) bool {
	pair, odd, ok := splitPair(cards, sameOrder)
	return ok && (odd.Color == pair[0].Color || odd.Color == pair[1].Color)
}
