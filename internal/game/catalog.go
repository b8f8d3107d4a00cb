package game

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var catalogYAML []byte

// CatalogFile is the top-level structure of cards.yaml.
type CatalogFile struct {
	Cards []CatalogEntry `yaml:"cards"`
}

// CatalogEntry is one row of the card table. Which fields apply depends on Type.
type CatalogEntry struct {
	Index   int     `yaml:"index"`
	Type    string  `yaml:"type"`
	Cost    int     `yaml:"cost"`
	Dice    int     `yaml:"dice"`
	Attack  int     `yaml:"attack"`
	Color   string  `yaml:"color"`
	Species string  `yaml:"species"`
	Draw    int     `yaml:"draw"`
	Choose  int     `yaml:"choose"`
	Cash    int     `yaml:"cash"`
	Power   float64 `yaml:"power"`
}

var (
	catalogOnce sync.Once
	catalog     []*Card
)

// Catalog returns all 120 cards ordered by index. The slice is shared and
// must not be modified.
func Catalog() []*Card {
	catalogOnce.Do(func() {
		cards, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded card catalog: %v", err))
		}
		catalog = cards
	})
	return catalog
}

// Lookup returns the card at idx. Panics if idx is outside the catalog.
func Lookup(idx CardIndex) *Card {
	cards := Catalog()
	if int(idx) >= len(cards) {
		panic(fmt.Sprintf("card not found in catalog: %d", idx))
	}
	return cards[idx]
}

// ParseCatalog decodes and validates a YAML card table.
func ParseCatalog(data []byte) ([]*Card, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if len(cf.Cards) != DeckSize {
		return nil, fmt.Errorf("catalog has %d cards, want %d", len(cf.Cards), DeckSize)
	}

	cards := make([]*Card, DeckSize)
	for _, e := range cf.Cards {
		if e.Index < 0 || e.Index >= DeckSize {
			return nil, fmt.Errorf("card index %d out of range", e.Index)
		}
		if cards[e.Index] != nil {
			return nil, fmt.Errorf("duplicate card index %d", e.Index)
		}
		card, err := e.toCard()
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", e.Index, err)
		}
		cards[e.Index] = card
	}
	return cards, nil
}

func (e CatalogEntry) toCard() (*Card, error) {
	if e.Cost < 0 {
		return nil, fmt.Errorf("negative cost %d", e.Cost)
	}
	card := &Card{Index: CardIndex(e.Index), Cost: e.Cost}

	switch e.Type {
	case "champion":
		if e.Dice < 1 || e.Dice > 255 {
			return nil, fmt.Errorf("invalid dice d%d", e.Dice)
		}
		color, err := parseColor(e.Color)
		if err != nil {
			return nil, err
		}
		species, err := parseSpecies(e.Species)
		if err != nil {
			return nil, err
		}
		card.Type = CardChampion
		card.Champion = &Champion{
			Dice:    uint8(e.Dice),
			Attack:  e.Attack,
			Color:   color,
			Species: species,
		}
		card.derive()
	case "draw":
		if e.Draw < 1 {
			return nil, fmt.Errorf("draw card must draw at least one card")
		}
		card.Type = CardDraw
		card.Draw = &DrawRecall{Draw: e.Draw, Choose: e.Choose}
		card.Power = e.Power
	case "exchange":
		card.Type = CardExchange
		card.Exchange = &Exchange{Cash: e.Cash}
		card.Power = e.Power
	default:
		return nil, fmt.Errorf("unknown card type %q", e.Type)
	}
	return card, nil
}

func parseColor(s string) (Color, error) {
	switch s {
	case "red":
		return ColorRed, nil
	case "indigo":
		return ColorIndigo, nil
	case "orange":
		return ColorOrange, nil
	default:
		return 0, fmt.Errorf("unknown color %q", s)
	}
}

func parseSpecies(s string) (Species, error) {
	for i, name := range speciesNames {
		if strings.EqualFold(s, name) {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("unknown species %q", s)
}

// --- Deck lists ---

// DeckFile lists prebuilt decks for DeckCustom games.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a named list of catalog indices.
type DeckEntry struct {
	Name  string `yaml:"name"`
	Cards []int  `yaml:"cards"`
}

// ParseDeckFile reads a YAML deck file and returns its decks by name, in file order.
func ParseDeckFile(path string) ([]DeckEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	for _, d := range df.Decks {
		if _, err := d.Indices(); err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
	}
	return df.Decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (DeckEntry, error) {
	decks, err := ParseDeckFile(path)
	if err != nil {
		return DeckEntry{}, err
	}
	if n < 1 || n > len(decks) {
		return DeckEntry{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(decks))
	}
	return decks[n-1], nil
}

// Indices validates the list and converts it to catalog indices. A deck must
// fill a starting hand plus at least one draw.
func (d DeckEntry) Indices() ([]CardIndex, error) {
	if len(d.Cards) <= InitialHandSize || len(d.Cards) > MaxOwnedCards {
		return nil, fmt.Errorf("deck has %d cards, want %d-%d", len(d.Cards), InitialHandSize+1, MaxOwnedCards)
	}
	seen := make(map[int]bool, len(d.Cards))
	out := make([]CardIndex, len(d.Cards))
	for i, c := range d.Cards {
		if c < 0 || c >= DeckSize {
			return nil, fmt.Errorf("card index %d out of range", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("card %d listed twice", c)
		}
		seen[c] = true
		out[i] = CardIndex(c)
	}
	return out, nil
}
