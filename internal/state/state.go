// Package state rebuilds per-player timelines from the normalized event
// stream. It replays events in time order and emits an immutable snapshot of
// every player at fixed boundaries.
package state

import (
	"sort"

	"github.com/pable/go-dota-insight/internal/model"
)

// DefaultIntervalSecs is the snapshot cadence.
const DefaultIntervalSecs = 60

// playerState is the mutable running state for a single player during
// reconstruction.
type playerState struct {
	slot   int
	hero   string
	x, y   float64
	gold   int
	xp     int
	level  int
	items  []string
	deaths int
}

func (s *playerState) snapshot(matchID int64, t float64) model.Snapshot {
	items := make([]string, len(s.items))
	copy(items, s.items)
	return model.Snapshot{
		MatchID: matchID,
		Slot:    s.slot,
		Time:    t,
		X:       s.x,
		Y:       s.y,
		Gold:    s.gold,
		XP:      s.xp,
		Level:   s.level,
		Items:   items,
	}
}

// Reconstruct replays events and produces one snapshot per player at every
// interval boundary up to and including the match duration. Events with
// time <= boundary are applied before the boundary's snapshots are taken.
// Snapshots are emitted in (time, slot) order, ten per boundary.
func Reconstruct(matchID int64, events []model.Event, durationSecs, intervalSecs int) []model.Snapshot {
	if intervalSecs <= 0 {
		intervalSecs = DefaultIntervalSecs
	}

	states := make([]*playerState, 10)
	for slot := 0; slot < 10; slot++ {
		states[slot] = &playerState{slot: slot, level: 1}
	}

	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	var snaps []model.Snapshot
	idx := 0
	for boundary := intervalSecs; boundary <= durationSecs; boundary += intervalSecs {
		for idx < len(sorted) && sorted[idx].Time <= float64(boundary) {
			apply(states, sorted[idx])
			idx++
		}
		for slot := 0; slot < 10; slot++ {
			snaps = append(snaps, states[slot].snapshot(matchID, float64(boundary)))
		}
	}
	return snaps
}

func apply(states []*playerState, ev model.Event) {
	// Kill events attribute a death to the victim by hero identity, so they
	// are handled before the actor-slot check.
	if ev.Kind == model.EventKill {
		target := ev.Data.Str("target")
		if target != "" && !ev.Data.Bool("target_illusion") {
			for _, s := range states {
				if s.hero == target {
					s.deaths++
					break
				}
			}
		}
		return
	}

	if ev.Slot < 0 || ev.Slot > 9 {
		return
	}
	s := states[ev.Slot]

	switch ev.Kind {
	case model.EventPosition:
		if x, ok := ev.Data.Float("x"); ok {
			s.x = x
		}
		if y, ok := ev.Data.Float("y"); ok {
			s.y = y
		}
		if hero := ev.Data.Str("hero"); hero != "" {
			s.hero = hero
		}
	case model.EventGoldChange:
		if amount, ok := ev.Data.Int("amount"); ok {
			s.gold += amount
		}
	case model.EventXPChange:
		if amount, ok := ev.Data.Int("amount"); ok {
			s.xp += amount
			s.level = LevelForXP(s.xp)
		}
	case model.EventItemPurchase:
		if item := ev.Data.Str("item"); item != "" {
			s.items = append(s.items, item)
		}
	}
}

// xpLadder holds cumulative XP thresholds per level; index = level.
var xpLadder = []int{
	0, 0, 230, 600, 1080, 1660, 2260, 2980, 3730, 4620, 5550,
	6520, 7530, 8580, 9805, 11055, 12330, 13630, 14955, 16455,
	18045, 19645, 21495, 23595, 25945, 28545, 31645, 35245, 39445, 44245, 49745,
}

// LevelForXP converts cumulative XP to a hero level, minimum 1.
func LevelForXP(xp int) int {
	for level := len(xpLadder) - 1; level > 0; level-- {
		if xp >= xpLadder[level] {
			return level
		}
	}
	return 1
}
