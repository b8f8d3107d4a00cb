package game

import (
	"slices"
	"testing"
)

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestDeckIsLIFO(t *testing.T) {
	d := newDeck(3)
	d.Push(5)
	d.Push(7)
	d.Push(9)
	for _, want := range []CardIndex{9, 7, 5} {
		c, ok := d.Pop()
		if !ok || c != want {
			t.Fatalf("Pop = %d, %v; want %d", c, ok, want)
		}
	}
	if _, ok := d.Pop(); ok || !d.IsEmpty() {
		t.Fatal("deck should be empty")
	}
}

func TestDeckOverflowPanics(t *testing.T) {
	d := newDeck(1)
	d.Push(1)
	expectPanic(t, "deck overflow", func() { d.Push(2) })
}

func TestPileRemoveSwaps(t *testing.T) {
	h := newHand()
	for _, c := range []CardIndex{1, 2, 3, 4} {
		h.Add(c)
	}
	if !h.Remove(2) {
		t.Fatal("Remove(2) = false")
	}
	if got := h.Cards(); !slices.Equal(got, []CardIndex{1, 4, 3}) {
		t.Errorf("after remove: %v", got)
	}
	if h.Remove(2) {
		t.Error("removing an absent card should report false")
	}
	if h.Contains(2) || !h.Contains(4) || h.Len() != 3 {
		t.Errorf("unexpected hand %v", h.Cards())
	}
}

func TestZoneCapacities(t *testing.T) {
	h := newHand()
	for i := 0; i < MaxHandSize; i++ {
		h.Add(CardIndex(i))
	}
	expectPanic(t, "hand overflow", func() { h.Add(99) })

	z := newCombatZone()
	z.Add(1)
	z.Add(2)
	z.Add(3)
	expectPanic(t, "combat overflow", func() { z.Add(4) })
}

func TestCombatZoneClearInto(t *testing.T) {
	z := newCombatZone()
	d := newDiscard()
	d.Add(50)
	z.Add(1)
	z.Add(2)
	z.ClearInto(&d)
	if !z.IsEmpty() {
		t.Fatal("combat zone not cleared")
	}
	if got := d.Cards(); !slices.Equal(got, []CardIndex{50, 1, 2}) {
		t.Errorf("discard = %v", got)
	}
}

// TestCloneIsDeep: mutating a clone leaves the original untouched.
func TestCloneIsDeep(t *testing.T) {
	gs := newTestState(newScriptedSource(), []CardIndex{0, 1}, []CardIndex{34})
	gs.Players[0].Deck.Push(5)
	c := gs.Clone(newScriptedSource())
	c.Players[0].Hand.Remove(0)
	c.Players[0].Deck.Pop()
	c.Players[1].Energy = 1
	if !gs.Players[0].Hand.Contains(0) || gs.Players[0].Deck.Len() != 1 || gs.Players[1].Energy != InitialEnergy {
		t.Fatal("clone shares state with original")
	}
}
