// Package detect holds the finding detectors. Each detector examines one
// aspect of a player's game and produces confidence-weighted findings.
//
// Detectors are pure: they read the shared Context and never mutate it, so
// the runner executes them concurrently. Results are collected positionally
// to keep the output order fixed regardless of scheduling.
package detect

import (
	"context"
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

// Context carries everything a detector may need. All fields are read-only
// once the runner starts.
type Context struct {
	MatchID      int64
	Slot         int
	HeroID       int
	Role         model.Role
	Lane         model.Lane
	DurationSecs int
	IsRadiant    bool
	Won          bool

	Player    model.MatchPlayer
	Baseline  *model.BaselineMetrics
	Events    []model.Event
	Snapshots []model.Snapshot
	Players   []model.MatchPlayer
	Fights    []model.Teamfight

	// Roster maps hero name (as it appears in event payloads) to canonical
	// slot, for resolving kill victims.
	Roster map[string]int
}

// TeamPlayers returns the analyzed player's teammates including themselves,
// and the enemy team.
func (c *Context) TeamPlayers() (team, enemy []model.MatchPlayer) {
	for _, p := range c.Players {
		if (p.Side() == model.SideRadiant) == c.IsRadiant {
			team = append(team, p)
		} else {
			enemy = append(enemy, p)
		}
	}
	return team, enemy
}

// Side returns the analyzed player's side.
func (c *Context) Side() model.Side {
	if c.IsRadiant {
		return model.SideRadiant
	}
	return model.SideDire
}

// VictimSlot resolves which slot died on a kill event, or -1 when the
// victim cannot be identified. Illusion deaths resolve to -1.
func (c *Context) VictimSlot(kill model.Event) int {
	if kill.Kind != model.EventKill || kill.Data.Bool("target_illusion") {
		return -1
	}
	if slot, ok := kill.Data.Int("target_slot"); ok && slot >= 0 && slot <= 9 {
		return slot
	}
	if target := kill.Data.Str("target"); target != "" {
		if slot, ok := c.Roster[target]; ok {
			return slot
		}
	}
	return -1
}

// Detector is one analysis pass. Analyze must not mutate the context; an
// empty finding slice means nothing noteworthy, an error means the detector
// could not run.
type Detector interface {
	Name() string
	Category() string
	Analyze(ctx context.Context, c *Context) ([]model.Finding, error)
}

// Result is one detector's outcome.
type Result struct {
	Detector string
	Findings []model.Finding
	Err      error
}

// Registry returns the full detector set in its fixed evaluation order.
func Registry() []Detector {
	return []Detector{
		&FarmingDetector{},
		&DeathsDetector{},
		&ItemsDetector{},
		&VisionDetector{},
		&ObjectivesDetector{},
		&DraftDetector{},
		&TeamDetector{},
	}
}

// Run executes the detectors concurrently and returns one Result per
// detector, in registry order. A panicking detector yields an error Result
// instead of taking the run down.
func Run(ctx context.Context, detectors []Detector, c *Context) []Result {
	results := make([]Result, len(detectors))
	done := make(chan struct{})

	for i, d := range detectors {
		go func(i int, d Detector) {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result{Detector: d.Name(), Err: fmt.Errorf("detector panic: %v", r)}
				}
				done <- struct{}{}
			}()
			findings, err := d.Analyze(ctx, c)
			results[i] = Result{Detector: d.Name(), Findings: findings, Err: err}
		}(i, d)
	}
	for range detectors {
		<-done
	}
	return results
}

// finding builds a Finding with the detector's identity filled in and no
// attached game time.
func finding(d Detector, sev model.Severity, conf float64, title, desc string) model.Finding {
	return model.Finding{
		Detector:    d.Name(),
		Category:    d.Category(),
		Severity:    sev,
		Confidence:  conf,
		Title:       title,
		Description: desc,
		Time:        -1,
	}
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
