package game

import (
	"errors"
	"reflect"
	"testing"
)

// TestApplyRejects: illegal moves return ErrIllegalMove and change nothing.
func TestApplyRejects(t *testing.T) {
	// 13 and 47 cost 1, 27 costs 3, 102 is a draw card, 117 an exchange card.
	hand := []CardIndex{13, 47, 27, 102, 117, 0}
	cases := []struct {
		name   string
		player PlayerID
		phase  Phase
		cash   int
		move   Move
	}{
		{"wrong player", PlayerB, PhaseAttack, 30, Pass()},
		{"not in hand", PlayerA, PhaseAttack, 30, PlayChampions(81)},
		{"out of range", PlayerA, PhaseAttack, 30, PlayChampions(200)},
		{"duplicate", PlayerA, PhaseAttack, 30, PlayChampions(13, 13)},
		{"four champions", PlayerA, PhaseAttack, 30, PlayChampions(13, 47, 27, 0)},
		{"not a champion", PlayerA, PhaseAttack, 30, PlayChampions(102)},
		{"group too expensive", PlayerA, PhaseAttack, 3, PlayChampions(13, 27)},
		{"no cards", PlayerA, PhaseAttack, 30, PlayChampions()},
		{"draw while defending", PlayerA, PhaseDefense, 30, PlayDraw(102)},
		{"exchange while defending", PlayerA, PhaseDefense, 30, PlayExchange(117)},
		{"draw card is a champion", PlayerA, PhaseAttack, 30, PlayDraw(13)},
		{"draw unaffordable", PlayerA, PhaseAttack, 0, PlayDraw(102)},
		{"pass with cards", PlayerA, PhaseAttack, 30, Move{Kind: MovePass, Cards: []CardIndex{13}}},
		{"unknown kind", PlayerA, PhaseAttack, 30, Move{Kind: MoveKind(9)}},
	}
	for _, tc := range cases {
		gs := newTestState(newScriptedSource(), hand, nil)
		gs.Phase = tc.phase
		gs.Players[PlayerA].Cash = tc.cash
		before := BuildView(gs, PlayerA)

		err := gs.Apply(tc.player, tc.move)
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("%s: got %v, want ErrIllegalMove", tc.name, err)
			continue
		}
		var ime *IllegalMoveError
		if !errors.As(err, &ime) || ime.Reason == "" {
			t.Errorf("%s: error does not carry a reason: %v", tc.name, err)
		}
		if after := BuildView(gs, PlayerA); !reflect.DeepEqual(before, after) {
			t.Errorf("%s: state changed by rejected move", tc.name)
		}
	}
}

// TestApplyExchangeNeedsChampion: an exchange card is never wasted.
func TestApplyExchangeNeedsChampion(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{102, 117}, nil)
	if err := gs.Apply(PlayerA, PlayExchange(117)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got %v", err)
	}
	if !gs.Players[PlayerA].Hand.Contains(117) {
		t.Fatal("exchange card left the hand")
	}
}

func TestApplyCombatZoneRoom(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{0, 1, 2, 34}, nil)
	if err := gs.Apply(PlayerA, PlayChampions(0, 1)); err != nil {
		t.Fatal(err)
	}
	if err := gs.Apply(PlayerA, PlayChampions(2, 34)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("fourth champion accepted: %v", err)
	}
	if err := gs.Apply(PlayerA, PlayChampions(2)); err != nil {
		t.Fatal(err)
	}
	if gs.Players[PlayerA].Combat.Len() != 3 {
		t.Fatalf("combat zone holds %d", gs.Players[PlayerA].Combat.Len())
	}
}

// TestApplyDefenderThreeChampions: the kernel lets a defender fill the zone.
func TestApplyDefenderThreeChampions(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{13}, []CardIndex{0, 1, 2})
	if err := gs.Apply(PlayerA, PlayChampions(13)); err != nil {
		t.Fatal(err)
	}
	gs.Phase = PhaseDefense
	gs.ToMove = PlayerB
	if err := gs.Apply(PlayerB, PlayChampions(0, 1, 2)); err != nil {
		t.Fatal(err)
	}
	if gs.Players[PlayerB].Combat.Len() != 3 {
		t.Fatal("defender champions not placed")
	}
}

func TestApplyAfterGameOver(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{0}, nil)
	gs.Result = ResultBWins
	if err := gs.Apply(PlayerA, Pass()); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got %v", err)
	}
}

func TestLegalMovesAttack(t *testing.T) {
	// 13, 47: cost 1. 27: cost 3. 102: draw cost 1. 117: exchange.
	gs := newTestState(newScriptedSource(), []CardIndex{13, 47, 27, 102, 117}, nil)
	gs.Players[PlayerA].Cash = 4
	got := LegalMoves(BuildView(gs, PlayerA))

	want := []Move{
		Pass(),
		PlayChampions(13),
		PlayChampions(13, 47),
		PlayChampions(13, 27),
		PlayChampions(47),
		PlayChampions(47, 27),
		PlayChampions(27),
		PlayDraw(102),
		PlayExchange(117),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d moves, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("move %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLegalMovesDefenseOnlyChampions(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{13}, []CardIndex{0, 102, 117})
	gs.Phase = PhaseDefense
	gs.ToMove = PlayerB
	moves := LegalMoves(BuildView(gs, PlayerB))
	if len(moves) != 2 || moves[0].Kind != MovePass || !moves[1].Equal(PlayChampions(0)) {
		t.Fatalf("got %v", moves)
	}
}

// TestLegalMovesAllApply: every listed move is accepted by Apply.
func TestLegalMovesAllApply(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{0, 1, 2, 13, 27, 102, 111, 117}, nil)
	for i := 0; i < 6; i++ {
		gs.Players[PlayerA].Deck.Push(CardIndex(40 + i))
	}
	gs.Players[PlayerA].Cash = 3
	for _, m := range LegalMoves(BuildView(gs, PlayerA)) {
		c := gs.Clone(newScriptedSource())
		if err := c.Apply(PlayerA, m); err != nil {
			t.Errorf("%s: %v", m, err)
		}
	}
}

func TestLegalMovesExchangeNeedsChampion(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{102, 117}, nil)
	for _, m := range LegalMoves(BuildView(gs, PlayerA)) {
		if m.Kind == MovePlayExchange {
			t.Fatal("exchange offered with no champion in hand")
		}
	}
}
