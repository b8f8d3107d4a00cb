package game

import "fmt"

// CardIndex addresses a card in the catalog (0-119). It is the only identity
// a card carries through the zones.
type CardIndex uint8

// Card is an immutable catalog entry. Exactly one of Champion, Draw and
// Exchange is set, matching Type.
type Card struct {
	Index CardIndex `json:"index"`
	Type  CardType  `json:"type"`
	Cost  int       `json:"cost"`
	Power float64   `json:"power"` // drives mulligan and hand-limit discards

	Champion *Champion   `json:"champion,omitempty"`
	Draw     *DrawRecall `json:"draw,omitempty"`
	Exchange *Exchange   `json:"exchange,omitempty"`
}

type Champion struct {
	ID      int     `json:"id"` // display number, index+1
	Dice    uint8   `json:"dice"`
	Attack  int     `json:"attack"`
	Color   Color   `json:"color"`
	Species Species `json:"species"`
	Order   Order   `json:"order"`

	ExpectedAttack    float64 `json:"expected_attack"`
	ExpectedDefense   float64 `json:"expected_defense"`
	AttackEfficiency  float64 `json:"attack_efficiency"`
	DefenseEfficiency float64 `json:"defense_efficiency"`
}

type DrawRecall struct {
	Draw   int `json:"draw"`   // cards drawn when played
	Choose int `json:"choose"` // recall budget, informational
}

type Exchange struct {
	Cash int `json:"cash"` // lunas gained for the traded champion
}

// IsChampion reports whether the card can enter a combat zone.
func (c *Card) IsChampion() bool {
	return c.Type == CardChampion
}

// String renders a short label used in logs and move lists.
func (c *Card) String() string {
	switch c.Type {
	case CardChampion:
		ch := c.Champion
		return fmt.Sprintf("#%d %s %s d%d+%d (cost %d)", c.Index, ch.Color, ch.Species, ch.Dice, ch.Attack, c.Cost)
	case CardDraw:
		return fmt.Sprintf("#%d Draw %d / recall %d (cost %d)", c.Index, c.Draw.Draw, c.Draw.Choose, c.Cost)
	case CardExchange:
		return fmt.Sprintf("#%d Exchange +%d luna (cost %d)", c.Index, c.Exchange.Cash, c.Cost)
	default:
		return fmt.Sprintf("#%d ?", c.Index)
	}
}

func (i CardIndex) String() string {
	return Lookup(i).String()
}

// derive fills in the champion's precomputed metrics and power.
func (c *Card) derive() {
	ch := c.Champion
	ch.ID = int(c.Index) + 1
	ch.Order = ch.Species.Order()
	ch.ExpectedDefense = float64(ch.Dice+1) / 2
	ch.ExpectedAttack = float64(ch.Attack) + ch.ExpectedDefense

	cost := float64(c.Cost)
	if cost < 0.25 {
		cost = 0.25
	}
	ch.AttackEfficiency = ch.ExpectedAttack / cost
	ch.DefenseEfficiency = ch.ExpectedDefense / cost
	c.Power = (ch.AttackEfficiency + ch.DefenseEfficiency) / 2
}
