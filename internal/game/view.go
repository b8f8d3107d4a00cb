package game

import "slices"

// View is the game from one player's seat: the opponent's hand and both
// deck orders are hidden.
type View struct {
	Player   PlayerID `json:"player"`
	Turn     int      `json:"turn"`
	Round    int      `json:"round"`
	Phase    Phase    `json:"phase"`
	Current  PlayerID `json:"current"`
	ToMove   PlayerID `json:"to_move"`
	Result   Result   `json:"result"`
	Mode     DeckMode `json:"mode"`
	You      SideView `json:"you"`
	Opponent SideView `json:"opponent"`
}

// SideView shows one side of the table.
type SideView struct {
	Energy    int         `json:"energy"`
	Cash      int         `json:"cash"`
	HandCount int         `json:"hand_count"`
	Hand      []CardIndex `json:"hand,omitempty"` // only for "you"
	DeckCount int         `json:"deck_count"`
	Discard   []CardIndex `json:"discard"`
	Combat    []CardIndex `json:"combat"`
}

// BuildView projects gs for player p. The view shares nothing with gs.
func BuildView(gs *GameState, p PlayerID) *View {
	return &View{
		Player:   p,
		Turn:     gs.Turn,
		Round:    gs.Round(),
		Phase:    gs.Phase,
		Current:  gs.Current,
		ToMove:   gs.ToMove,
		Result:   gs.Result,
		Mode:     gs.Mode,
		You:      sideView(gs.Players[p], true),
		Opponent: sideView(gs.Players[p.Other()], false),
	}
}

func sideView(pl *Player, own bool) SideView {
	sv := SideView{
		Energy:    pl.Energy,
		Cash:      pl.Cash,
		HandCount: pl.Hand.Len(),
		DeckCount: pl.Deck.Len(),
		Discard:   slices.Clone(pl.Discard.Cards()),
		Combat:    slices.Clone(pl.Combat.Cards()),
	}
	if own {
		sv.Hand = slices.Clone(pl.Hand.Cards())
	}
	return sv
}

// IsYourMove reports whether the viewer has a decision pending.
func (v *View) IsYourMove() bool {
	return v.Result == ResultActive && v.ToMove == v.Player
}
