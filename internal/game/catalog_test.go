package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	cards := Catalog()
	if len(cards) != DeckSize {
		t.Fatalf("catalog has %d cards", len(cards))
	}
	counts := map[CardType]int{}
	colors := map[Color]int{}
	for i, c := range cards {
		if int(c.Index) != i {
			t.Fatalf("card at position %d has index %d", i, c.Index)
		}
		counts[c.Type]++
		switch c.Type {
		case CardChampion:
			if c.Champion == nil || c.Draw != nil || c.Exchange != nil {
				t.Errorf("card %d: champion fields inconsistent", i)
			}
			colors[c.Champion.Color]++
		case CardDraw:
			if c.Draw == nil || c.Champion != nil {
				t.Errorf("card %d: draw fields inconsistent", i)
			}
		case CardExchange:
			if c.Exchange == nil || c.Champion != nil || c.Cost != 0 {
				t.Errorf("card %d: exchange fields inconsistent", i)
			}
		}
	}
	if counts[CardChampion] != 102 || counts[CardDraw] != 15 || counts[CardExchange] != 3 {
		t.Errorf("unexpected type counts %v", counts)
	}
	for _, color := range []Color{ColorRed, ColorIndigo, ColorOrange} {
		if colors[color] != 34 {
			t.Errorf("%s has %d champions, want 34", color, colors[color])
		}
	}
}

// TestDerivedMetrics: efficiency uses a 0.25 cost floor and power averages both efficiencies.
func TestDerivedMetrics(t *testing.T) {
	cases := []struct {
		idx             CardIndex
		attack, defense float64
		power           float64
	}{
		{0, 2.5, 2.5, 10},   // cost 0, d4+0
		{13, 7.5, 3.5, 5.5}, // cost 1, d6+4
		{102, 0, 0, 2},      // draw 2
		{111, 0, 0, 3},      // draw 3
		{117, 0, 0, 2.5},    // exchange
	}
	for _, tc := range cases {
		c := Lookup(tc.idx)
		if math.Abs(c.Power-tc.power) > 1e-9 {
			t.Errorf("card %d: power %v, want %v", tc.idx, c.Power, tc.power)
		}
		if c.Champion == nil {
			continue
		}
		if c.Champion.ExpectedAttack != tc.attack || c.Champion.ExpectedDefense != tc.defense {
			t.Errorf("card %d: expected attack/defense %v/%v", tc.idx, c.Champion.ExpectedAttack, c.Champion.ExpectedDefense)
		}
		if c.Champion.ID != int(tc.idx)+1 {
			t.Errorf("card %d: id %d", tc.idx, c.Champion.ID)
		}
	}
}

func TestSpeciesOrder(t *testing.T) {
	cases := map[Species]Order{
		Human: OrderDawn, Elf: OrderDawn, Dwarf: OrderDawn,
		Hobbit: OrderVerdant, Faun: OrderVerdant, Centaur: OrderVerdant,
		Orc: OrderEmber, Goblin: OrderEmber, Minotaur: OrderEmber,
		Dragon: OrderEternal, Cyclops: OrderEternal, Fairy: OrderEternal,
		Aven: OrderMoonlight, Koatl: OrderMoonlight, Lycan: OrderMoonlight,
	}
	for s, o := range cases {
		if s.Order() != o {
			t.Errorf("%s: order %s, want %s", s, s.Order(), o)
		}
	}
}

func TestLookupOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Lookup(DeckSize)
}

func TestParseCatalogRejects(t *testing.T) {
	good := string(catalogYAML)
	cases := map[string]string{
		"duplicate index": strings.Replace(good, "{index: 1,", "{index: 0,", 1),
		"bad species":     strings.Replace(good, "species: hobbit}", "species: gnome}", 1),
		"bad type":        strings.Replace(good, "type: exchange", "type: trap", 1),
		"truncated":       good[:strings.Index(good, "  - {index: 119")],
		"not yaml":        "cards: [",
	}
	for name, data := range cases {
		if _, err := ParseCatalog([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := `decks:
  - name: dawn rush
    cards: [0, 3, 11, 12, 34, 37, 45, 102]
  - name: too small
    cards: [1, 2]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseDeckFile(path); err == nil {
		t.Fatal("expected error for undersized deck")
	}

	data = `decks:
  - name: dawn rush
    cards: [0, 3, 11, 12, 34, 37, 45, 102]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	deck, err := DeckByNumber(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	if deck.Name != "dawn rush" || len(deck.Cards) != 8 {
		t.Errorf("unexpected deck %+v", deck)
	}
	if _, err := DeckByNumber(path, 2); err == nil {
		t.Error("expected error for missing deck 2")
	}
}

func TestDeckEntryIndicesRejectsDuplicates(t *testing.T) {
	d := DeckEntry{Name: "dup", Cards: []int{0, 1, 2, 3, 4, 5, 6, 6}}
	if _, err := d.Indices(); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestMonochromeDecks(t *testing.T) {
	decks := MonochromeDecks()
	want := [2]Color{ColorIndigo, ColorOrange}
	seen := map[CardIndex]bool{}
	for p, deck := range decks {
		if len(deck) != MaxOwnedCards {
			t.Fatalf("deck %d has %d cards", p, len(deck))
		}
		types := map[CardType]int{}
		for _, c := range deck {
			if seen[c] {
				t.Fatalf("card %d in both decks", c)
			}
			seen[c] = true
			card := Lookup(c)
			types[card.Type]++
			if card.IsChampion() && card.Champion.Color != want[p] {
				t.Errorf("deck %d holds %s champion %d", p, card.Champion.Color, c)
			}
		}
		if types[CardChampion] != 34 || types[CardDraw] != 5 || types[CardExchange] != 1 {
			t.Errorf("deck %d composition %v", p, types)
		}
	}
}
