// Package analysis orchestrates the full pipeline for one (match, player)
// pair: state reconstruction, lane and role inference, teamfight detection,
// baseline resolution, the detector run, and the final score and summary.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pable/go-dota-insight/internal/baseline"
	"github.com/pable/go-dota-insight/internal/detect"
	"github.com/pable/go-dota-insight/internal/fights"
	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/lanes"
	"github.com/pable/go-dota-insight/internal/model"
	"github.com/pable/go-dota-insight/internal/roles"
	"github.com/pable/go-dota-insight/internal/state"
)

// Options are the pipeline-level tunables.
type Options struct {
	SnapshotIntervalSecs int
	FightWindowSecs      float64
	FightMinParticipants int
	WinBonus             float64
	CriticalWeight       float64
	WarningWeight        float64
	InfoWeight           float64
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		SnapshotIntervalSecs: state.DefaultIntervalSecs,
		FightWindowSecs:      fights.WindowSecs,
		FightMinParticipants: fights.MinParticipants,
		WinBonus:             10,
		CriticalWeight:       8,
		WarningWeight:        4,
		InfoWeight:           5,
	}
}

// Input is everything Analyze needs. Snapshots may be empty, in which case
// they are reconstructed from the events. Baselines may be nil when no
// reference data exists.
type Input struct {
	Match      model.Match
	Players    []model.MatchPlayer
	Events     []model.Event
	Snapshots  []model.Snapshot
	TargetSlot int
	Baselines  baseline.Store
}

// Output is the full pipeline product: the analysis itself plus the
// intermediate artifacts, so callers can persist or render them.
type Output struct {
	Analysis  model.Analysis
	Players   []model.MatchPlayer // lane and role written back
	Snapshots []model.Snapshot
	Fights    []model.Teamfight
	Baseline  *model.Baseline
}

// Analyze runs the pipeline. It returns an error only when the analysis is
// not computable at all (the target slot is absent from the roster); faulty
// detectors are logged and contribute nothing.
func Analyze(ctx context.Context, log *slog.Logger, opts Options, in Input) (*Output, error) {
	if log == nil {
		log = slog.Default()
	}

	players := make([]model.MatchPlayer, len(in.Players))
	copy(players, in.Players)

	targetIdx := -1
	for i, p := range players {
		if p.Slot == in.TargetSlot {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("slot %d not in match %d roster", in.TargetSlot, in.Match.MatchID)
	}

	snapshots := in.Snapshots
	if len(snapshots) == 0 && len(in.Events) > 0 {
		snapshots = state.Reconstruct(in.Match.MatchID, in.Events, in.Match.DurationSecs, opts.SnapshotIntervalSecs)
		log.Debug("reconstructed snapshots", "match", in.Match.MatchID, "count", len(snapshots))
	}

	laneBySlot := lanes.Infer(snapshots, players)
	roleBySlot := roles.Classify(laneBySlot, players)
	for i := range players {
		players[i].Lane = laneBySlot[players[i].Slot]
		players[i].Role = roleBySlot[players[i].Slot]
	}
	target := players[targetIdx]

	roster := Roster(in.Events)
	fightList := fights.DetectWith(in.Events, roster, opts.FightWindowSecs, opts.FightMinParticipants)

	var resolved *model.Baseline
	if in.Baselines != nil {
		key := model.BaselineKey{
			HeroID:  target.HeroID,
			Role:    target.Role,
			Patch:   in.Match.Patch,
			Bracket: baseline.Bracket(in.Match.AvgRating),
		}
		b, err := baseline.Resolve(in.Baselines, key)
		if err != nil {
			return nil, fmt.Errorf("resolve baseline: %w", err)
		}
		resolved = b
	}

	isRadiant := target.Side() == model.SideRadiant
	won := in.Match.RadiantWin == isRadiant

	dctx := &detect.Context{
		MatchID:      in.Match.MatchID,
		Slot:         target.Slot,
		HeroID:       target.HeroID,
		Role:         target.Role,
		Lane:         target.Lane,
		DurationSecs: in.Match.DurationSecs,
		IsRadiant:    isRadiant,
		Won:          won,
		Player:       target,
		Events:       in.Events,
		Snapshots:    snapshots,
		Players:      players,
		Fights:       fightList,
		Roster:       roster,
	}
	if resolved != nil {
		dctx.Baseline = &resolved.Metrics
	}

	var findings []model.Finding
	for _, res := range detect.Run(ctx, detect.Registry(), dctx) {
		if res.Err != nil {
			log.Error("detector failed", "detector", res.Detector, "match", in.Match.MatchID, "err", res.Err)
			continue
		}
		findings = append(findings, res.Findings...)
	}

	score := Score(findings, won, opts)
	summary := Summary(findings, won, target.HeroID, target.Role)

	log.Info("analysis complete",
		"match", in.Match.MatchID, "slot", target.Slot,
		"score", score, "findings", len(findings))

	return &Output{
		Analysis: model.Analysis{
			ID:       uuid.NewString(),
			MatchID:  in.Match.MatchID,
			Slot:     target.Slot,
			Score:    score,
			Summary:  summary,
			Patch:    in.Match.Patch,
			Findings: findings,
		},
		Players:   players,
		Snapshots: snapshots,
		Fights:    fightList,
		Baseline:  resolved,
	}, nil
}

// Roster maps hero names seen in position payloads to their slots.
func Roster(events []model.Event) map[string]int {
	roster := make(map[string]int)
	for _, e := range events {
		if e.Kind != model.EventPosition || e.Slot < 0 || e.Slot > 9 {
			continue
		}
		if hero := e.Data.Str("hero"); hero != "" {
			if _, seen := roster[hero]; !seen {
				roster[hero] = e.Slot
			}
		}
	}
	return roster
}

// positiveWords mark info findings that should raise the score.
var positiveWords = []string{"above", "fast", "strong", "active", "deathless", "good"}

// Score folds findings into a 0-100 composite. The score starts neutral at
// 50; negative findings subtract their severity weight scaled by confidence,
// positive observations add, and a win grants a flat bonus.
func Score(findings []model.Finding, won bool, opts Options) float64 {
	score := 50.0
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityCritical:
			score -= opts.CriticalWeight * f.Confidence
		case model.SeverityWarning:
			score -= opts.WarningWeight * f.Confidence
		case model.SeverityInfo:
			title := strings.ToLower(f.Title)
			for _, w := range positiveWords {
				if strings.Contains(title, w) {
					score += opts.InfoWeight * f.Confidence
					break
				}
			}
		}
	}
	if won {
		score += opts.WinBonus
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Summary renders a short natural-language recap of the findings.
func Summary(findings []model.Finding, won bool, heroID int, role model.Role) string {
	outcome := "Defeat"
	if won {
		outcome = "Victory"
	}

	var critical, warnings, positives int
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityWarning:
			warnings++
		case model.SeverityInfo:
			positives++
		}
	}

	parts := []string{fmt.Sprintf("%s as %s (%s).", outcome, role, herodata.HeroName(heroID))}
	if critical > 0 {
		parts = append(parts, fmt.Sprintf("%d critical issue(s) identified.", critical))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d area(s) for improvement.", warnings))
	}
	if positives > 0 {
		parts = append(parts, fmt.Sprintf("%d positive observation(s).", positives))
	}
	if critical == 0 && warnings == 0 {
		parts = append(parts, "Solid performance overall.")
	}
	return strings.Join(parts, " ")
}
