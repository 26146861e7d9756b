package detect

import (
	"context"
	"fmt"

	"github.com/pable/go-dota-insight/internal/baseline"
	"github.com/pable/go-dota-insight/internal/model"
)

// FarmingDetector compares gold and experience income against the cohort
// baseline. Needs a baseline; without one it stays silent.
type FarmingDetector struct{}

func (d *FarmingDetector) Name() string     { return "farming_efficiency" }
func (d *FarmingDetector) Category() string { return "farming" }

func (d *FarmingDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	if c.Baseline == nil {
		return nil, nil
	}
	var findings []model.Finding

	gpm := baseline.Compare(float64(c.Player.GPM), c.Baseline.AvgGPM, c.Baseline.StdGPM)
	if gpm.Available {
		switch {
		case gpm.Z < -1.5:
			sev := model.SeverityCritical
			if gpm.Z > -2.5 {
				sev = model.SeverityWarning
			}
			f := finding(d, sev, min64(0.9, 0.5+abs64(gpm.Z)*0.15),
				"Below-average gold income",
				fmt.Sprintf("GPM of %d is %.0f below the baseline average of %.0f for this hero/role/bracket (z=%.1f).",
					c.Player.GPM, abs64(gpm.Deviation), gpm.Avg, gpm.Z))
			f.Data = comparisonData(gpm)
			findings = append(findings, f)
		case gpm.Z > 1.5:
			f := finding(d, model.SeverityInfo, min64(0.9, 0.5+gpm.Z*0.15),
				"Above-average gold income",
				fmt.Sprintf("GPM of %d is %.0f above the baseline average of %.0f for this hero/role/bracket (z=%.1f).",
					c.Player.GPM, gpm.Deviation, gpm.Avg, gpm.Z))
			f.Data = comparisonData(gpm)
			findings = append(findings, f)
		}
	}

	xpm := baseline.Compare(float64(c.Player.XPM), c.Baseline.AvgXPM, c.Baseline.StdXPM)
	if xpm.Available && xpm.Z < -1.5 {
		f := finding(d, model.SeverityWarning, min64(0.85, 0.5+abs64(xpm.Z)*0.12),
			"Below-average experience income",
			fmt.Sprintf("XPM of %d is %.0f below the baseline (%.0f). This suggests time spent dead, inefficient rotations, or contested farm.",
				c.Player.XPM, abs64(xpm.Deviation), xpm.Avg))
		f.Data = comparisonData(xpm)
		findings = append(findings, f)
	}

	// Laning-phase gold pace check for farm-priority roles.
	if c.Role == model.RoleCarry || c.Role == model.RoleMid {
		if snap, ok := tenMinuteSnapshot(c); ok && c.Baseline.AvgGPM > 0 {
			expected := c.Baseline.AvgGPM * 10
			if float64(snap.Gold)/expected < 0.7 {
				f := finding(d, model.SeverityWarning, 0.6,
					"Weak laning phase farm",
					fmt.Sprintf("Gold at 10 minutes (%d) is significantly below the expected pace for this hero and role.", snap.Gold))
				f.Time = 600
				f.Data = map[string]any{"gold_10": snap.Gold, "expected": expected}
				findings = append(findings, f)
			}
		}
	}

	return findings, nil
}

// tenMinuteSnapshot finds the player's snapshot nearest the 10-minute mark.
func tenMinuteSnapshot(c *Context) (model.Snapshot, bool) {
	for _, s := range c.Snapshots {
		if s.Slot == c.Slot && s.Time >= 540 && s.Time <= 660 {
			return s, true
		}
	}
	return model.Snapshot{}, false
}

func comparisonData(cmp baseline.Comparison) map[string]any {
	return map[string]any{
		"observed":     cmp.Observed,
		"baseline_avg": cmp.Avg,
		"baseline_std": cmp.Std,
		"z_score":      cmp.Z,
		"deviation":    cmp.Deviation,
	}
}
