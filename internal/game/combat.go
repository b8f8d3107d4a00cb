package game

import (
	"fmt"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// CombatResult summarises one resolved combat.
type CombatResult struct {
	Attacker     PlayerID `json:"attacker"`
	Defender     PlayerID `json:"defender"`
	Attack       int      `json:"attack"`
	Defense      int      `json:"defense"`
	AttackBonus  int      `json:"attack_bonus"`
	DefenseBonus int      `json:"defense_bonus"`
	Damage       int      `json:"damage"`
	Lethal       bool     `json:"lethal"`
}

// TotalAttack rolls each champion in p's combat zone and returns the sum of
// attack_base + roll plus the combo bonus. bonus is the combo part.
func (gs *GameState) TotalAttack(p PlayerID) (total, bonus int) {
	zone := gs.Players[p].Combat.Cards()
	for _, c := range zone {
		ch := Lookup(c).Champion
		total += ch.Attack + rnd.Dn(gs.rng, ch.Dice)
	}
	bonus = ComboBonus(comboCards(zone), gs.Mode)
	return total + bonus, bonus
}

// TotalDefense is TotalAttack without the attack bases.
func (gs *GameState) TotalDefense(p PlayerID) (total, bonus int) {
	zone := gs.Players[p].Combat.Cards()
	for _, c := range zone {
		total += rnd.Dn(gs.rng, Lookup(c).Champion.Dice)
	}
	bonus = ComboBonus(comboCards(zone), gs.Mode)
	return total + bonus, bonus
}

// ResolveCombat resolves the current player's attack against the opponent,
// applies damage, sets the result on a lethal hit and clears both combat
// zones into their owners' discard piles.
func (gs *GameState) ResolveCombat() CombatResult {
	att := gs.Current
	def := att.Other()
	res := CombatResult{Attacker: att, Defender: def}

	res.Attack, res.AttackBonus = gs.TotalAttack(att)
	res.Defense, res.DefenseBonus = gs.TotalDefense(def)
	res.Damage = max(res.Attack-res.Defense, 0)

	target := gs.Players[def]
	old := target.Energy
	target.Energy -= min(res.Damage, target.Energy)

	gs.emit(func() log.GameEvent {
		return log.NewCombatEvent(gs.Turn, int(att), fmt.Sprintf("%s attacks for %d (combo %d), %s defends with %d (combo %d): %d damage",
			att, res.Attack, res.AttackBonus, def, res.Defense, res.DefenseBonus, res.Damage))
	})
	if res.Damage > 0 {
		gs.emit(func() log.GameEvent { return log.NewEnergyChangeEvent(gs.Turn, int(def), old, target.Energy) })
	}

	gs.clearCombat(att)
	gs.clearCombat(def)

	if target.Energy == 0 {
		res.Lethal = true
		gs.Result = winFor(att)
		gs.emit(func() log.GameEvent {
			return log.NewWinEvent(gs.Turn, "Combat", int(att), fmt.Sprintf("%s reduced to 0 energy", def))
		})
	}
	return res
}

func (gs *GameState) clearCombat(p PlayerID) {
	pl := gs.Players[p]
	for _, c := range pl.Combat.Cards() {
		gs.emit(func() log.GameEvent { return log.NewDiscardEvent(gs.Turn, "Combat", int(p), Lookup(c).String(), "combat") })
	}
	pl.Combat.ClearInto(&pl.Discard)
}
