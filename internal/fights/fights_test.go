package fights

import (
	"testing"

	"github.com/pable/go-dota-insight/internal/model"
)

// kill builds a kill event. attacker/target are hero names; targetSlot < 0
// omits the slot from the payload.
func kill(t float64, attacker, target string, targetSlot int) model.Event {
	data := model.Payload{"attacker": attacker, "target": target}
	if targetSlot >= 0 {
		data["target_slot"] = float64(targetSlot)
	}
	return model.Event{Time: t, Kind: model.EventKill, Data: data}
}

func illusionKill(t float64, attacker, target string) model.Event {
	return model.Event{Time: t, Kind: model.EventKill, Data: model.Payload{
		"attacker": attacker, "target": target, "target_illusion": true,
	}}
}

func TestDetect_ClusterWithinWindow(t *testing.T) {
	// Three kills at 100, 105, 110 with three heroes involved: one fight.
	events := []model.Event{
		kill(100, "axe", "lina", 5),
		kill(105, "axe", "lion", 6),
		kill(110, "lina", "axe", 0),
	}
	fights := Detect(events, nil)
	if len(fights) != 1 {
		t.Fatalf("fights = %d, want 1", len(fights))
	}
	f := fights[0]
	if f.StartTime != 100 || f.EndTime != 110 {
		t.Errorf("fight span = [%.0f,%.0f], want [100,110]", f.StartTime, f.EndTime)
	}
	if f.TotalKills() != 3 {
		t.Errorf("kills = %d, want 3", f.TotalKills())
	}
}

func TestDetect_GapStartsNewCluster(t *testing.T) {
	// The 140s kill is 30s after the previous one: a separate cluster that
	// is too small to be a fight.
	events := []model.Event{
		kill(100, "axe", "lina", 5),
		kill(105, "axe", "lion", 6),
		kill(110, "lina", "axe", 0),
		kill(140, "axe", "lina", 5),
	}
	fights := Detect(events, nil)
	if len(fights) != 1 {
		t.Fatalf("fights = %d, want 1", len(fights))
	}
	if fights[0].EndTime != 110 {
		t.Errorf("end = %.0f, want 110", fights[0].EndTime)
	}
}

func TestDetect_ChainExtendsWindow(t *testing.T) {
	// Each kill is within 20s of the previous one even though the whole
	// span exceeds 20s; it is still one fight.
	events := []model.Event{
		kill(100, "axe", "lina", 5),
		kill(118, "axe", "lion", 6),
		kill(136, "lina", "axe", 0),
		kill(154, "lion", "sven", 1),
	}
	fights := Detect(events, nil)
	if len(fights) != 1 {
		t.Fatalf("fights = %d, want 1", len(fights))
	}
	if fights[0].StartTime != 100 || fights[0].EndTime != 154 {
		t.Errorf("fight span = [%.0f,%.0f], want [100,154]", fights[0].StartTime, fights[0].EndTime)
	}
}

func TestDetect_TooFewParticipants(t *testing.T) {
	// A solo kill exchange between two heroes is not a teamfight.
	events := []model.Event{
		kill(100, "axe", "lina", 5),
		kill(110, "lina", "axe", 0),
	}
	if fights := Detect(events, nil); len(fights) != 0 {
		t.Fatalf("fights = %d, want 0", len(fights))
	}
}

func TestDetect_IllusionKillsIgnored(t *testing.T) {
	events := []model.Event{
		illusionKill(100, "axe", "lancer_illusion"),
		illusionKill(105, "lina", "lancer_illusion"),
		illusionKill(110, "lion", "lancer_illusion"),
	}
	if fights := Detect(events, nil); len(fights) != 0 {
		t.Fatalf("fights = %d, want 0", len(fights))
	}
}

func TestDetect_WinnerFromVictimSlots(t *testing.T) {
	// Dire loses two heroes, Radiant one: Radiant wins the fight.
	events := []model.Event{
		kill(100, "axe", "lina", 5),
		kill(104, "sven", "lion", 6),
		kill(109, "lina", "axe", 0),
	}
	fights := Detect(events, nil)
	if len(fights) != 1 {
		t.Fatalf("fights = %d, want 1", len(fights))
	}
	f := fights[0]
	if f.RadiantLosses != 1 || f.DireLosses != 2 {
		t.Errorf("losses = %d/%d, want 1/2", f.RadiantLosses, f.DireLosses)
	}
	if f.Winner() != model.SideRadiant {
		t.Errorf("winner = %v, want Radiant", f.Winner())
	}
}

func TestDetect_RosterFallbackAndUnresolved(t *testing.T) {
	roster := map[string]int{"axe": 0, "lina": 5}
	events := []model.Event{
		kill(100, "axe", "lina", -1),    // resolved via roster → Dire
		kill(105, "lina", "axe", -1),    // resolved via roster → Radiant
		kill(110, "lion", "roshan", -1), // not in roster: counts nowhere
	}
	fights := Detect(events, roster)
	if len(fights) != 1 {
		t.Fatalf("fights = %d, want 1", len(fights))
	}
	f := fights[0]
	if f.RadiantLosses != 1 || f.DireLosses != 1 {
		t.Errorf("losses = %d/%d, want 1/1", f.RadiantLosses, f.DireLosses)
	}
	if f.Winner() != model.SideNone {
		t.Errorf("winner = %v, want none on a tie", f.Winner())
	}
}

func TestDetect_NoKills(t *testing.T) {
	events := []model.Event{
		{Time: 100, Kind: model.EventGoldChange, Slot: 0, Data: model.Payload{"amount": 40.0}},
	}
	if fights := Detect(events, nil); fights != nil {
		t.Fatalf("fights = %v, want nil", fights)
	}
}
