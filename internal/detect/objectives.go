package detect

import (
	"context"
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

// objectiveWindowSecs bounds how long after a won fight an objective take
// still counts as converting the advantage.
const objectiveWindowSecs = 90

// ObjectivesDetector measures whether won teamfights turned into towers or
// Roshan.
type ObjectivesDetector struct{}

func (d *ObjectivesDetector) Name() string     { return "objective_conversion" }
func (d *ObjectivesDetector) Category() string { return "objectives" }

func (d *ObjectivesDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	if len(c.Fights) == 0 {
		return nil, nil
	}

	var objectiveTimes []float64
	for _, e := range c.Events {
		if e.Kind == model.EventBuildingKill || e.Kind == model.EventRoshanKill {
			objectiveTimes = append(objectiveTimes, e.Time)
		}
	}

	side := c.Side()
	fightsWon, converted := 0, 0
	var missedAt []float64
	for _, f := range c.Fights {
		if f.Winner() != side {
			continue
		}
		fightsWon++
		took := false
		for _, t := range objectiveTimes {
			if f.EndTime < t && t <= f.EndTime+objectiveWindowSecs {
				took = true
				break
			}
		}
		if took {
			converted++
		} else {
			missedAt = append(missedAt, f.EndTime)
		}
	}
	if fightsWon == 0 {
		return nil, nil
	}

	rate := float64(converted) / float64(fightsWon)
	var findings []model.Finding
	switch {
	case fightsWon >= 3 && rate < 0.4:
		if len(missedAt) > 5 {
			missedAt = missedAt[:5]
		}
		f := finding(d, model.SeverityWarning, min64(0.85, 0.5+float64(fightsWon)*0.08),
			"Low objective conversion after fights",
			fmt.Sprintf("Won %d teamfights but only converted %d into objectives (%.0f%%). Taking towers or Roshan after winning fights accelerates advantage.",
				fightsWon, converted, rate*100))
		f.Data = map[string]any{
			"fights_won": fightsWon, "fights_converted": converted,
			"conversion_rate": rate, "missed_at": missedAt,
		}
		findings = append(findings, f)
	case fightsWon >= 2 && rate >= 0.7:
		f := finding(d, model.SeverityInfo, 0.75,
			"Strong objective conversion",
			fmt.Sprintf("Converted %d of %d won fights into objectives (%.0f%%). Efficient use of advantages.",
				converted, fightsWon, rate*100))
		f.Data = map[string]any{
			"fights_won": fightsWon, "fights_converted": converted, "conversion_rate": rate,
		}
		findings = append(findings, f)
	}
	return findings, nil
}
