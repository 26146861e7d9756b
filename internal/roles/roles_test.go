package roles

import (
	"testing"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
)

func player(slot, heroID, gpm, lastHits int) model.MatchPlayer {
	return model.MatchPlayer{Slot: slot, HeroID: heroID, GPM: gpm, LastHits: lastHits}
}

// standardLanes gives both teams a 2-1-2 layout.
func standardLanes() map[int]model.Lane {
	return map[int]model.Lane{
		0: model.LaneSafe, 1: model.LaneMid, 2: model.LaneOff,
		3: model.LaneSafe, 4: model.LaneOff,
		5: model.LaneSafe, 6: model.LaneMid, 7: model.LaneOff,
		8: model.LaneSafe, 9: model.LaneOff,
	}
}

func TestClassify_StandardDraft(t *testing.T) {
	players := []model.MatchPlayer{
		player(0, herodata.AntiMage, 700, 300),     // hard carry, top farm
		player(1, herodata.StormSpirit, 600, 250),  // mid hero in mid
		player(2, herodata.Axe, 450, 150),          // offlaner
		player(3, herodata.CrystalMaiden, 250, 30), // hard support, lowest farm
		player(4, herodata.Mirana, 350, 60),        // flex → pos 4
	}
	got := Classify(standardLanes(), players)

	want := map[int]model.Role{
		0: model.RoleCarry,
		1: model.RoleMid,
		2: model.RoleOfflane,
		3: model.RoleHardSupport,
		4: model.RoleSoftSupport,
	}
	for slot, role := range want {
		if got[slot] != role {
			t.Errorf("slot %d role = %v, want %v", slot, got[slot], role)
		}
	}
}

func TestClassify_SoleHardCarryTakesCarry(t *testing.T) {
	// Spectre is the only hard carry; it takes position 1 even with the
	// lowest farm on the team.
	players := []model.MatchPlayer{
		player(0, herodata.Tiny, 700, 300),
		player(1, herodata.Invoker, 600, 250),
		player(2, herodata.Mars, 450, 150),
		player(3, herodata.Spectre, 200, 40),
		player(4, herodata.Lion, 300, 20),
	}
	got := Classify(standardLanes(), players)

	if got[3] != model.RoleCarry {
		t.Errorf("slot 3 role = %v, want Carry", got[3])
	}
}

func TestClassify_HardSupportNeverCore(t *testing.T) {
	// Crystal Maiden with inflated farm still cannot be position 1 or 2.
	players := []model.MatchPlayer{
		player(0, herodata.CrystalMaiden, 800, 200), // hard support, top farm
		player(1, herodata.Puck, 600, 250),
		player(2, herodata.Tidehunter, 450, 150),
		player(3, herodata.Slark, 500, 220),
		player(4, herodata.Rubick, 300, 20),
	}
	got := Classify(standardLanes(), players)

	if r := got[0]; r == model.RoleCarry || r == model.RoleMid {
		t.Errorf("hard support assigned core role %v", r)
	}
}

func TestClassify_AllRolesExactlyOnce(t *testing.T) {
	players := []model.MatchPlayer{
		player(0, herodata.Medusa, 650, 280),
		player(1, herodata.VoidSpirit, 620, 240),
		player(2, herodata.Bristleback, 480, 160),
		player(3, herodata.WitchDoctor, 260, 25),
		player(4, herodata.Tiny, 380, 90),
		player(5, herodata.PhantomLancer, 640, 270),
		player(6, herodata.EmberSpirit, 590, 230),
		player(7, herodata.Doom, 470, 140),
		player(8, herodata.Jakiro, 240, 30),
		player(9, herodata.Pudge, 360, 70),
	}
	got := Classify(standardLanes(), players)

	for _, slots := range [][]int{{0, 1, 2, 3, 4}, {5, 6, 7, 8, 9}} {
		seen := make(map[model.Role]int)
		for _, slot := range slots {
			seen[got[slot]]++
		}
		for r := model.RoleCarry; r <= model.RoleHardSupport; r++ {
			if seen[r] != 1 {
				t.Errorf("team %v: role %v assigned %d times", slots, r, seen[r])
			}
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	players := []model.MatchPlayer{
		player(0, herodata.Kunkka, 400, 100),
		player(1, herodata.Zeus, 400, 100),
		player(2, herodata.SandKing, 400, 100),
		player(3, herodata.Bane, 400, 100),
		player(4, herodata.OgreMagi, 400, 100),
	}
	lanes := map[int]model.Lane{
		0: model.LaneJungle, 1: model.LaneJungle, 2: model.LaneJungle,
		3: model.LaneJungle, 4: model.LaneJungle,
	}

	first := Classify(lanes, players)
	for i := 0; i < 10; i++ {
		again := Classify(lanes, players)
		for slot, role := range first {
			if again[slot] != role {
				t.Fatalf("run %d: slot %d role = %v, first run %v", i, slot, again[slot], role)
			}
		}
	}
}

func TestClassify_PartialTeam(t *testing.T) {
	// A roster with only three players still gets distinct roles.
	players := []model.MatchPlayer{
		player(0, herodata.AntiMage, 700, 300),
		player(1, herodata.Puck, 600, 250),
		player(3, herodata.Lich, 250, 30),
	}
	got := Classify(standardLanes(), players)
	if len(got) != 3 {
		t.Fatalf("assigned %d players, want 3", len(got))
	}
	seen := make(map[model.Role]bool)
	for slot, r := range got {
		if r == model.RoleNone {
			t.Errorf("slot %d has no role", slot)
		}
		if seen[r] {
			t.Errorf("role %v assigned twice", r)
		}
		seen[r] = true
	}
}
