package state

import (
	"testing"

	"github.com/pable/go-dota-insight/internal/model"
)

func ev(t float64, kind model.EventKind, slot int, data model.Payload) model.Event {
	return model.Event{Time: t, Kind: kind, Slot: slot, Data: data}
}

func goldEv(t float64, slot, amount int) model.Event {
	return ev(t, model.EventGoldChange, slot, model.Payload{"amount": float64(amount)})
}

func xpEv(t float64, slot, amount int) model.Event {
	return ev(t, model.EventXPChange, slot, model.Payload{"amount": float64(amount)})
}

// snapshotAt finds the snapshot for (slot, time) or fails the test.
func snapshotAt(t *testing.T, snaps []model.Snapshot, slot int, at float64) model.Snapshot {
	t.Helper()
	for _, s := range snaps {
		if s.Slot == slot && s.Time == at {
			return s
		}
	}
	t.Fatalf("no snapshot for slot %d at %.0fs", slot, at)
	return model.Snapshot{}
}

func TestReconstruct_BoundaryCount(t *testing.T) {
	// 10-minute match at a 60s cadence: 10 boundaries, 10 players each.
	snaps := Reconstruct(1, nil, 600, 60)
	if got, want := len(snaps), 100; got != want {
		t.Fatalf("snapshot count = %d, want %d", got, want)
	}
	// Boundaries are 60..600 inclusive; none at 0.
	for _, s := range snaps {
		if s.Time < 60 || s.Time > 600 {
			t.Errorf("snapshot at unexpected time %.0f", s.Time)
		}
	}
}

func TestReconstruct_GoldAccumulates(t *testing.T) {
	events := []model.Event{
		goldEv(10, 0, 100),
		goldEv(50, 0, 40),
		goldEv(60, 0, 25),  // exactly on the boundary: included
		goldEv(61, 0, 999), // after: next window
	}
	snaps := Reconstruct(1, events, 120, 60)

	if got := snapshotAt(t, snaps, 0, 60).Gold; got != 165 {
		t.Errorf("gold at 60s = %d, want 165", got)
	}
	if got := snapshotAt(t, snaps, 0, 120).Gold; got != 1164 {
		t.Errorf("gold at 120s = %d, want 1164", got)
	}
}

func TestReconstruct_NegativeGold(t *testing.T) {
	// Deaths drain gold; the running total may dip.
	events := []model.Event{
		goldEv(10, 3, 200),
		goldEv(20, 3, -150),
	}
	snaps := Reconstruct(1, events, 60, 60)
	if got := snapshotAt(t, snaps, 3, 60).Gold; got != 50 {
		t.Errorf("gold = %d, want 50", got)
	}
}

func TestReconstruct_XPDrivesLevel(t *testing.T) {
	events := []model.Event{
		xpEv(30, 2, 600), // exactly the level-3 threshold
	}
	snaps := Reconstruct(1, events, 60, 60)
	s := snapshotAt(t, snaps, 2, 60)
	if s.XP != 600 {
		t.Errorf("xp = %d, want 600", s.XP)
	}
	if s.Level != 3 {
		t.Errorf("level = %d, want 3", s.Level)
	}
}

func TestReconstruct_ItemsAppendInOrder(t *testing.T) {
	events := []model.Event{
		ev(100, model.EventItemPurchase, 4, model.Payload{"item": "boots"}),
		ev(200, model.EventItemPurchase, 4, model.Payload{"item": "magic_wand"}),
	}
	snaps := Reconstruct(1, events, 240, 60)
	s := snapshotAt(t, snaps, 4, 240)
	if len(s.Items) != 2 || s.Items[0] != "boots" || s.Items[1] != "magic_wand" {
		t.Errorf("items = %v, want [boots magic_wand]", s.Items)
	}
	// Earlier snapshots are not retroactively mutated: at 120s only boots
	// have been bought, and the later wand purchase must not leak back in.
	early := snapshotAt(t, snaps, 4, 120)
	if len(early.Items) != 1 || early.Items[0] != "boots" {
		t.Errorf("items at 120s = %v, want [boots]", early.Items)
	}
	if first := snapshotAt(t, snaps, 4, 60); len(first.Items) != 0 {
		t.Errorf("items at 60s = %v, want none before any purchase", first.Items)
	}
}

func TestReconstruct_MalformedEventsIgnored(t *testing.T) {
	events := []model.Event{
		ev(10, model.EventGoldChange, 0, model.Payload{}),              // no amount
		ev(20, model.EventGoldChange, 42, model.Payload{"amount": 50}), // bad slot
		ev(30, model.EventKind("warp_gate"), 0, model.Payload{}),       // unknown kind
		goldEv(40, 0, 75),
	}
	snaps := Reconstruct(1, events, 60, 60)
	if got := snapshotAt(t, snaps, 0, 60).Gold; got != 75 {
		t.Errorf("gold = %d, want 75", got)
	}
}

func TestReconstruct_OutOfOrderEventsSorted(t *testing.T) {
	events := []model.Event{
		goldEv(50, 1, 30),
		goldEv(5, 1, 10),
	}
	snaps := Reconstruct(1, events, 60, 60)
	if got := snapshotAt(t, snaps, 1, 60).Gold; got != 40 {
		t.Errorf("gold = %d, want 40", got)
	}
}

func TestReconstruct_PositionAndHero(t *testing.T) {
	events := []model.Event{
		ev(10, model.EventPosition, 7, model.Payload{"x": 100.0, "y": 150.0, "hero": "axe"}),
		ev(40, model.EventPosition, 7, model.Payload{"x": 110.0}),
	}
	snaps := Reconstruct(1, events, 60, 60)
	s := snapshotAt(t, snaps, 7, 60)
	if s.X != 110 || s.Y != 150 {
		t.Errorf("position = (%.0f,%.0f), want (110,150)", s.X, s.Y)
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{229, 1},
		{230, 2},
		{599, 2},
		{600, 3},
		{49745, 30},
		{999999, 30},
	}
	for _, tc := range tests {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}
