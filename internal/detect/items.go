package detect

import (
	"context"
	"fmt"
	"sort"

	"github.com/pable/go-dota-insight/internal/model"
)

// ItemsDetector compares the player's key item completion times against the
// cohort's typical timings.
type ItemsDetector struct{}

func (d *ItemsDetector) Name() string     { return "item_timing" }
func (d *ItemsDetector) Category() string { return "items" }

func (d *ItemsDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	if c.Baseline == nil || len(c.Baseline.ItemTimings) == 0 {
		return nil, nil
	}

	// First purchase time per item for the analyzed player.
	bought := make(map[string]float64)
	for _, e := range c.Events {
		if e.Kind != model.EventItemPurchase || e.Slot != c.Slot {
			continue
		}
		item := e.Data.Str("item")
		if item == "" {
			continue
		}
		if _, seen := bought[item]; !seen {
			bought[item] = e.Time
		}
	}

	// Iterate baseline items in name order so output is stable.
	items := make([]string, 0, len(c.Baseline.ItemTimings))
	for item := range c.Baseline.ItemTimings {
		items = append(items, item)
	}
	sort.Strings(items)

	var findings []model.Finding
	for _, item := range items {
		baselineSecs := c.Baseline.ItemTimings[item]
		actualSecs, ok := bought[item]
		if !ok {
			f := finding(d, model.SeverityInfo, 0.4,
				fmt.Sprintf("Skipped common item: %s", item),
				fmt.Sprintf("The item '%s' is typically purchased by this hero/role but was not bought this game. This may be a deliberate adaptation or a missed timing.", item))
			f.Data = map[string]any{"item": item, "baseline_timing": baselineSecs, "purchased": false}
			findings = append(findings, f)
			continue
		}

		deviation := actualSecs - baselineSecs
		switch {
		case deviation > 180:
			sev := model.SeverityWarning
			if deviation > 360 {
				sev = model.SeverityCritical
			}
			f := finding(d, sev, min64(0.85, 0.5+(deviation/600)*0.3),
				fmt.Sprintf("Late %s", item),
				fmt.Sprintf("Completed %s at %.1f min, which is %.1f min behind the baseline of %.1f min.",
					item, actualSecs/60, deviation/60, baselineSecs/60))
			f.Time = actualSecs
			f.Data = itemData(item, actualSecs, baselineSecs, deviation)
			findings = append(findings, f)
		case deviation < -120:
			f := finding(d, model.SeverityInfo, min64(0.8, 0.5+abs64(deviation)/600*0.3),
				fmt.Sprintf("Fast %s", item),
				fmt.Sprintf("Completed %s at %.1f min, which is %.1f min ahead of the baseline of %.1f min.",
					item, actualSecs/60, abs64(deviation)/60, baselineSecs/60))
			f.Time = actualSecs
			f.Data = itemData(item, actualSecs, baselineSecs, deviation)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

func itemData(item string, actual, base, deviation float64) map[string]any {
	return map[string]any{
		"item":           item,
		"actual_time":    actual,
		"baseline_time":  base,
		"deviation_secs": deviation,
	}
}
