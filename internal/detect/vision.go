package detect

import (
	"context"
	"fmt"
	"math"

	"github.com/pable/go-dota-insight/internal/model"
)

// Expected ward counts per ten minutes for support players.
const (
	expectedObsPer10Min    = 2.5
	expectedSentryPer10Min = 1.5
)

// VisionDetector checks ward placement rates for supports and dewarding for
// everyone.
type VisionDetector struct{}

func (d *VisionDetector) Name() string     { return "vision_control" }
func (d *VisionDetector) Category() string { return "vision" }

func (d *VisionDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	var obsPlaced, sentryPlaced, nightObs, dewards int
	for _, e := range c.Events {
		if e.Slot != c.Slot {
			continue
		}
		switch e.Kind {
		case model.EventWardPlaced:
			switch e.Data.Str("ward_type") {
			case "observer":
				obsPlaced++
				if nearNightfall(e.Time) {
					nightObs++
				}
			case "sentry":
				sentryPlaced++
			}
		case model.EventWardKilled:
			dewards++
		}
	}

	periods := math.Max(1, float64(c.DurationSecs)/600)
	isSupport := c.Role.IsSupport()

	var findings []model.Finding
	if isSupport {
		obsRate := float64(obsPlaced) / periods
		if obsRate < expectedObsPer10Min*0.5 {
			f := finding(d, model.SeverityWarning, 0.7,
				"Low observer ward usage",
				fmt.Sprintf("Placed %d observer wards in a %d min game (%.1f per 10 min). Expected ~%.1f per 10 min for position %d.",
					obsPlaced, c.DurationSecs/60, obsRate, expectedObsPer10Min, c.Role))
			f.Data = map[string]any{
				"obs_placed": obsPlaced, "obs_rate_per_10min": obsRate, "expected_rate": expectedObsPer10Min,
			}
			findings = append(findings, f)
		}

		sentryRate := float64(sentryPlaced) / periods
		if sentryRate < expectedSentryPer10Min*0.4 {
			f := finding(d, model.SeverityInfo, 0.6,
				"Low sentry ward usage",
				fmt.Sprintf("Placed %d sentry wards (%.1f per 10 min). Consider more active dewarding.",
					sentryPlaced, sentryRate))
			f.Data = map[string]any{"sentry_placed": sentryPlaced, "sentry_rate_per_10min": sentryRate}
			findings = append(findings, f)
		}
	}

	if dewards >= 3 {
		f := finding(d, model.SeverityInfo, 0.8,
			"Active dewarding",
			fmt.Sprintf("Destroyed %d enemy wards, contributing to vision control.", dewards))
		f.Data = map[string]any{"wards_dewarded": dewards}
		findings = append(findings, f)
	}

	if isSupport && obsPlaced > 0 {
		if ratio := float64(nightObs) / float64(obsPlaced); ratio > 0.3 {
			f := finding(d, model.SeverityInfo, 0.5,
				"Good ward timing awareness",
				fmt.Sprintf("%d of %d observer wards placed near nightfall transitions, suggesting awareness of vision timing.",
					nightObs, obsPlaced))
			f.Data = map[string]any{"night_wards": nightObs, "total_obs": obsPlaced}
			findings = append(findings, f)
		}
	}

	return findings, nil
}

// nearNightfall reports whether a game time is within 30 seconds of a
// day/night transition (every 5 minutes).
func nearNightfall(t float64) bool {
	cycle := math.Mod(t, 300)
	return cycle < 30 || cycle > 270
}
