package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
)

func opts() Options { return DefaultOptions() }

func TestScore_WinWithNoFindings(t *testing.T) {
	if got := Score(nil, true, opts()); got != 60 {
		t.Errorf("score = %v, want 60", got)
	}
	if got := Score(nil, false, opts()); got != 50 {
		t.Errorf("score = %v, want 50", got)
	}
}

func TestScore_SeverityWeights(t *testing.T) {
	findings := []model.Finding{
		{Severity: model.SeverityCritical, Confidence: 1.0}, // -8
		{Severity: model.SeverityWarning, Confidence: 0.5},  // -2
	}
	if got := Score(findings, false, opts()); got != 40 {
		t.Errorf("score = %v, want 40", got)
	}
}

func TestScore_InfoOnlyCountsPositiveTitles(t *testing.T) {
	findings := []model.Finding{
		{Severity: model.SeverityInfo, Confidence: 1.0, Title: "Above-average gold income"}, // +5
		{Severity: model.SeverityInfo, Confidence: 1.0, Title: "Skipped common item: bkb"},  // neutral
	}
	if got := Score(findings, false, opts()); got != 55 {
		t.Errorf("score = %v, want 55", got)
	}
}

func TestScore_Clamped(t *testing.T) {
	var pile []model.Finding
	for i := 0; i < 20; i++ {
		pile = append(pile, model.Finding{Severity: model.SeverityCritical, Confidence: 1.0})
	}
	if got := Score(pile, false, opts()); got != 0 {
		t.Errorf("score = %v, want clamp at 0", got)
	}

	pile = nil
	for i := 0; i < 20; i++ {
		pile = append(pile, model.Finding{Severity: model.SeverityInfo, Confidence: 1.0, Title: "Strong objective conversion"})
	}
	if got := Score(pile, true, opts()); got != 100 {
		t.Errorf("score = %v, want clamp at 100", got)
	}
}

func TestSummary(t *testing.T) {
	findings := []model.Finding{
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityWarning},
		{Severity: model.SeverityWarning},
		{Severity: model.SeverityInfo},
	}
	got := Summary(findings, true, herodata.Juggernaut, model.RoleCarry)
	want := "Victory as Carry (Juggernaut). 1 critical issue(s) identified. 2 area(s) for improvement. 1 positive observation(s)."
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestSummary_CleanGame(t *testing.T) {
	got := Summary(nil, false, herodata.Lion, model.RoleHardSupport)
	if !strings.HasPrefix(got, "Defeat as Hard Support (Lion).") {
		t.Errorf("summary = %q, want defeat prefix", got)
	}
	if !strings.Contains(got, "Solid performance overall.") {
		t.Errorf("summary = %q, want solid-performance note", got)
	}
}

// ---- Pipeline ----

func tenPlayers() []model.MatchPlayer {
	heroes := [10]int{
		herodata.Juggernaut, herodata.StormSpirit, herodata.Axe, herodata.CrystalMaiden, herodata.Mirana,
		herodata.PhantomLancer, herodata.Puck, herodata.Mars, herodata.Lich, herodata.Pudge,
	}
	gpms := [10]int{700, 600, 450, 250, 350, 680, 590, 460, 240, 330}
	var out []model.MatchPlayer
	for i := 0; i < 10; i++ {
		out = append(out, model.MatchPlayer{
			MatchID: 42, Slot: i, HeroID: heroes[i],
			GPM: gpms[i], XPM: gpms[i] + 50,
			Kills: 5, Deaths: 5, Assists: 8, LastHits: gpms[i] / 3,
		})
	}
	return out
}

func testInput() Input {
	return Input{
		Match: model.Match{
			MatchID: 42, DurationSecs: 2400, RadiantWin: true, AvgRating: 3200, Patch: "7.36",
		},
		Players:    tenPlayers(),
		TargetSlot: 0,
	}
}

func TestAnalyze_UnknownSlot(t *testing.T) {
	in := testInput()
	in.TargetSlot = 7
	in.Players = in.Players[:5] // Dire roster missing
	if _, err := Analyze(context.Background(), nil, opts(), in); err == nil {
		t.Fatal("expected error for a slot not in the roster")
	}
}

func TestAnalyze_ProducesScoredResult(t *testing.T) {
	out, err := Analyze(context.Background(), nil, opts(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := out.Analysis
	if a.MatchID != 42 || a.Slot != 0 {
		t.Errorf("analysis identity = (%d, %d), want (42, 0)", a.MatchID, a.Slot)
	}
	if a.ID == "" {
		t.Error("analysis has no ID")
	}
	if a.Score < 0 || a.Score > 100 {
		t.Errorf("score %v out of range", a.Score)
	}
	if a.Summary == "" {
		t.Error("empty summary")
	}
	// Every player got a lane and a role written back.
	for _, p := range out.Players {
		if p.Lane == model.LaneNone || p.Role == model.RoleNone {
			t.Errorf("slot %d missing lane/role: %v/%v", p.Slot, p.Lane, p.Role)
		}
	}
}

func TestAnalyze_DeterministicWithoutBaseline(t *testing.T) {
	first, err := Analyze(context.Background(), nil, opts(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Analyze(context.Background(), nil, opts(), testInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(again.Analysis.Score-first.Analysis.Score) > 1e-9 {
			t.Fatalf("score changed between runs: %v vs %v", again.Analysis.Score, first.Analysis.Score)
		}
		if len(again.Analysis.Findings) != len(first.Analysis.Findings) {
			t.Fatalf("finding count changed: %d vs %d", len(again.Analysis.Findings), len(first.Analysis.Findings))
		}
		for j, f := range again.Analysis.Findings {
			if f.Title != first.Analysis.Findings[j].Title {
				t.Fatalf("finding order changed at %d: %q vs %q", j, f.Title, first.Analysis.Findings[j].Title)
			}
		}
	}
}

func TestAnalyze_ReconstructsSnapshotsFromEvents(t *testing.T) {
	in := testInput()
	in.Events = []model.Event{
		{Time: 30, Kind: model.EventGoldChange, Slot: 0, Data: model.Payload{"amount": 500.0}},
		{Time: 40, Kind: model.EventPosition, Slot: 0, Data: model.Payload{"x": 200.0, "y": 30.0, "hero": "juggernaut"}},
	}
	out, err := Analyze(context.Background(), nil, opts(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Snapshots) == 0 {
		t.Fatal("no snapshots reconstructed")
	}
	// Position data should have pulled slot 0 into the Radiant safe lane.
	for _, p := range out.Players {
		if p.Slot == 0 && p.Lane != model.LaneSafe {
			t.Errorf("slot 0 lane = %v, want Safe", p.Lane)
		}
	}
}

func TestRoster(t *testing.T) {
	events := []model.Event{
		{Time: 10, Kind: model.EventPosition, Slot: 0, Data: model.Payload{"hero": "juggernaut"}},
		{Time: 12, Kind: model.EventPosition, Slot: 5, Data: model.Payload{"hero": "phantom_lancer"}},
		{Time: 20, Kind: model.EventPosition, Slot: 0, Data: model.Payload{"hero": "juggernaut"}},
		{Time: 25, Kind: model.EventGoldChange, Slot: 1, Data: model.Payload{"amount": 40.0}},
	}
	roster := Roster(events)
	if len(roster) != 2 {
		t.Fatalf("roster size = %d, want 2", len(roster))
	}
	if roster["juggernaut"] != 0 || roster["phantom_lancer"] != 5 {
		t.Errorf("roster = %v", roster)
	}
}
