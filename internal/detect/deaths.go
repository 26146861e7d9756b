package detect

import (
	"context"
	"fmt"

	"github.com/pable/go-dota-insight/internal/baseline"
	"github.com/pable/go-dota-insight/internal/model"
)

// DeathsDetector examines death count, death timing, and kill participation.
type DeathsDetector struct{}

func (d *DeathsDetector) Name() string     { return "death_context" }
func (d *DeathsDetector) Category() string { return "deaths" }

func (d *DeathsDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	deaths := c.Player.Deaths

	if deaths == 0 {
		f := finding(d, model.SeverityInfo, 0.95,
			"Deathless game",
			"Zero deaths this game. Excellent survivability.")
		f.Data = map[string]any{"deaths": 0}
		return []model.Finding{f}, nil
	}

	var findings []model.Finding

	if c.Baseline != nil {
		cmp := baseline.Compare(float64(deaths), c.Baseline.AvgDeaths, c.Baseline.StdDeaths)
		if cmp.Available && cmp.Z > 2.0 {
			sev := model.SeverityWarning
			if cmp.Z > 3.0 {
				sev = model.SeverityCritical
			}
			f := finding(d, sev, min64(0.9, 0.5+cmp.Z*0.12),
				"Significantly more deaths than average",
				fmt.Sprintf("%d deaths is %.0f above the baseline of %.1f for this hero/role/bracket.",
					deaths, cmp.Deviation, cmp.Avg))
			f.Data = comparisonData(cmp)
			findings = append(findings, f)
		}
	}

	// Count deaths in the laning phase from the event stream.
	earlyDeaths := 0
	for _, e := range c.Events {
		if e.Kind != model.EventKill {
			continue
		}
		if c.VictimSlot(e) == c.Slot && e.Time < 600 {
			earlyDeaths++
		}
	}
	if earlyDeaths >= 3 {
		f := finding(d, model.SeverityWarning, 0.75,
			"Multiple early deaths",
			fmt.Sprintf("%d deaths in the first 10 minutes. This suggests a difficult laning phase or aggressive positioning that was punished.", earlyDeaths))
		f.Time = 600
		f.Data = map[string]any{"early_deaths": earlyDeaths, "laning_phase": true}
		findings = append(findings, f)
	}

	if kda := c.Player.KDA(); kda < 1.5 && c.Role.IsCore() {
		f := finding(d, model.SeverityWarning, 0.7,
			"Low KDA ratio for core role",
			fmt.Sprintf("KDA of %.1f (%d/%d/%d) is below expectations for a position %d player.",
				kda, c.Player.Kills, deaths, c.Player.Assists, c.Role))
		f.Data = map[string]any{
			"kda": kda, "kills": c.Player.Kills, "deaths": deaths, "assists": c.Player.Assists,
		}
		findings = append(findings, f)
	}

	return findings, nil
}
