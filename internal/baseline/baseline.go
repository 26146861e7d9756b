// Package baseline resolves reference cohorts and compares observed
// performance against them as z-scores.
package baseline

import (
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

// Rating bracket boundaries, half-open [low, high).
var brackets = [5]struct{ low, high int }{
	{0, 1540},     // Herald/Guardian
	{1540, 2310},  // Crusader/Archon
	{2310, 3080},  // Legend/Ancient
	{3080, 3850},  // Divine
	{3850, 99999}, // Immortal
}

// Bracket converts a match rating to a bracket number 1-5. An unknown
// rating (0 or negative) lands in the middle bracket.
func Bracket(rating int) int {
	if rating <= 0 {
		return 3
	}
	for i, b := range brackets {
		if rating >= b.low && rating < b.high {
			return i + 1
		}
	}
	return 5
}

// ZScore computes (observed - mean) / std, or 0 when std is 0.
func ZScore(observed, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (observed - mean) / std
}

// Comparison is one metric measured against its cohort.
type Comparison struct {
	Observed  float64
	Avg       float64
	Std       float64
	Z         float64
	Deviation float64
	Available bool
}

// Compare measures an observed value against a cohort mean and spread. The
// comparison is unavailable when the cohort never recorded the statistic
// (both avg and std zero).
func Compare(observed, avg, std float64) Comparison {
	if avg == 0 && std == 0 {
		return Comparison{Observed: observed}
	}
	return Comparison{
		Observed:  observed,
		Avg:       avg,
		Std:       std,
		Z:         ZScore(observed, avg, std),
		Deviation: observed - avg,
		Available: true,
	}
}

// Store is the lookup surface the resolver needs. Each method returns
// (nil, nil) when no row matches.
type Store interface {
	// Baseline fetches the exact (hero, role, patch, bracket) row.
	Baseline(key model.BaselineKey) (*model.Baseline, error)
	// BaselineAnyBracket fetches any row for (hero, role, patch).
	BaselineAnyBracket(heroID int, role model.Role, patch string) (*model.Baseline, error)
	// BaselineAnyPatch fetches any row for (hero, role).
	BaselineAnyPatch(heroID int, role model.Role) (*model.Baseline, error)
}

// Resolve finds the best-matching baseline for a cohort key, widening the
// match step by step: exact, then any bracket on the same patch, then any
// patch and bracket. Returns (nil, nil) when no cohort exists at all.
func Resolve(store Store, key model.BaselineKey) (*model.Baseline, error) {
	if key.Patch != "" {
		b, err := store.Baseline(key)
		if err != nil {
			return nil, fmt.Errorf("baseline exact lookup: %w", err)
		}
		if b != nil {
			return b, nil
		}

		b, err = store.BaselineAnyBracket(key.HeroID, key.Role, key.Patch)
		if err != nil {
			return nil, fmt.Errorf("baseline patch lookup: %w", err)
		}
		if b != nil {
			return b, nil
		}
	}

	b, err := store.BaselineAnyPatch(key.HeroID, key.Role)
	if err != nil {
		return nil, fmt.Errorf("baseline hero lookup: %w", err)
	}
	return b, nil
}
