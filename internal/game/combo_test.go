package game

import "testing"

func cc(s Species, c Color) ComboCard { return ComboCard{Species: s, Color: c} }

func TestComboBonusRandom(t *testing.T) {
	cases := []struct {
		name  string
		cards []ComboCard
		want  int
	}{
		{"species pair", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed)}, 10},
		{"three of a species", []ComboCard{cc(Elf, ColorRed), cc(Elf, ColorRed), cc(Elf, ColorRed)}, 16},
		{"pair plus same order", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed), cc(Elf, ColorIndigo)}, 14},
		{"pair plus same color", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed), cc(Hobbit, ColorRed)}, 13},
		{"pair plus nothing", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed), cc(Hobbit, ColorIndigo)}, 10},
		{"pair split around third", []ComboCard{cc(Orc, ColorRed), cc(Faun, ColorIndigo), cc(Orc, ColorIndigo)}, 13},
		{"order pair", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorIndigo)}, 7},
		{"three of an order", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorIndigo), cc(Dwarf, ColorOrange)}, 11},
		{"order pair plus color", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorIndigo), cc(Hobbit, ColorRed)}, 9},
		{"order pair, odd card matches second", []ComboCard{cc(Human, ColorRed), cc(Goblin, ColorOrange), cc(Dwarf, ColorOrange)}, 9},
		{"order pair plus nothing", []ComboCard{cc(Human, ColorRed), cc(Goblin, ColorIndigo), cc(Dwarf, ColorRed)}, 7},
		{"color pair", []ComboCard{cc(Human, ColorRed), cc(Goblin, ColorRed)}, 5},
		{"three of a color", []ComboCard{cc(Human, ColorOrange), cc(Goblin, ColorOrange), cc(Centaur, ColorOrange)}, 8},
		{"color pair of three", []ComboCard{cc(Human, ColorOrange), cc(Goblin, ColorOrange), cc(Centaur, ColorRed)}, 5},
		{"no match", []ComboCard{cc(Human, ColorRed), cc(Goblin, ColorIndigo)}, 0},
		{"single card", []ComboCard{cc(Human, ColorRed)}, 0},
		{"empty", nil, 0},
		{"four cards", []ComboCard{cc(Elf, ColorRed), cc(Elf, ColorRed), cc(Elf, ColorRed), cc(Elf, ColorRed)}, 0},
	}
	for _, tc := range cases {
		if got := ComboBonus(tc.cards, DeckRandom); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestComboBonusPrebuilt(t *testing.T) {
	cases := []struct {
		name  string
		cards []ComboCard
		want  int
	}{
		{"species pair", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed)}, 7},
		{"three of a species", []ComboCard{cc(Elf, ColorRed), cc(Elf, ColorRed), cc(Elf, ColorRed)}, 12},
		{"pair plus same order", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed), cc(Elf, ColorRed)}, 9},
		{"pair plus other order", []ComboCard{cc(Human, ColorRed), cc(Human, ColorRed), cc(Orc, ColorRed)}, 7},
		{"order pair", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorRed)}, 4},
		{"three of an order", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorRed), cc(Dwarf, ColorRed)}, 6},
		{"order pair of three", []ComboCard{cc(Human, ColorRed), cc(Elf, ColorRed), cc(Orc, ColorRed)}, 4},
		{"color only", []ComboCard{cc(Human, ColorRed), cc(Goblin, ColorRed)}, 0},
		{"single card", []ComboCard{cc(Human, ColorRed)}, 0},
	}
	for _, mode := range []DeckMode{DeckMonochrome, DeckCustom} {
		for _, tc := range cases {
			if got := ComboBonus(tc.cards, mode); got != tc.want {
				t.Errorf("%s/%s: got %d, want %d", mode, tc.name, got, tc.want)
			}
		}
	}
}

// TestComboBonusOrderInsensitive: the score only depends on the set of cards.
func TestComboBonusOrderInsensitive(t *testing.T) {
	sets := [][]ComboCard{
		{cc(Human, ColorRed), cc(Human, ColorRed), cc(Elf, ColorIndigo)},
		{cc(Human, ColorRed), cc(Elf, ColorIndigo), cc(Hobbit, ColorRed)},
		{cc(Orc, ColorOrange), cc(Dragon, ColorOrange), cc(Orc, ColorOrange)},
	}
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, set := range sets {
		for _, mode := range []DeckMode{DeckRandom, DeckMonochrome} {
			want := ComboBonus(set, mode)
			for _, p := range perms {
				got := ComboBonus([]ComboCard{set[p[0]], set[p[1]], set[p[2]]}, mode)
				if got != want {
					t.Errorf("%v permuted %v (%s): got %d, want %d", set, p, mode, got, want)
				}
			}
		}
	}
}
