// Package lanes infers which lane each player occupied during the laning
// phase from position snapshots.
//
// Map coordinates are the parser's 0-256 unit approximation:
// Radiant's safe lane runs along the bottom edge, Dire's along the top, and
// mid follows the diagonal.
package lanes

import (
	"github.com/pable/go-dota-insight/internal/model"
)

const (
	// LaningPhaseEndSecs bounds the sample window.
	LaningPhaseEndSecs = 600

	midLow        = 70
	midHigh       = 180
	midDiagonal   = 50
	botYThreshold = 70
	topYThreshold = 180
	rightX        = 180
	leftX         = 70
)

// region is a map area before team-relative lane naming.
type region int

const (
	regionJungle region = iota
	regionMid
	regionBot
	regionTop
)

// classify maps a single position into a map region. The bot and top bands
// are kept tight so jungle positions near a lane do not get counted as lane
// presence.
func classify(x, y float64) region {
	if x >= midLow && x <= midHigh && y >= midLow && y <= midHigh {
		d := x - y
		if d < 0 {
			d = -d
		}
		if d < midDiagonal {
			return regionMid
		}
	}
	if y < botYThreshold && x > rightX {
		return regionBot
	}
	if y > topYThreshold && x < leftX {
		return regionTop
	}
	return regionJungle
}

// Infer assigns a lane to every one of the ten slots from laning-phase
// snapshot positions. Players without any position samples fall back to
// their externally supplied lane hint, defaulting to jungle.
func Infer(snapshots []model.Snapshot, players []model.MatchPlayer) map[int]model.Lane {
	hints := make(map[int]model.Lane)
	for _, p := range players {
		if p.LaneHint >= model.LaneSafe && p.LaneHint <= model.LaneJungle {
			hints[p.Slot] = p.LaneHint
		}
	}

	counts := make(map[int]map[region]int)
	order := make(map[int][]region) // first-seen order breaks count ties
	for _, s := range snapshots {
		if s.Time > LaningPhaseEndSecs {
			continue
		}
		if counts[s.Slot] == nil {
			counts[s.Slot] = make(map[region]int)
		}
		r := classify(s.X, s.Y)
		if counts[s.Slot][r] == 0 {
			order[s.Slot] = append(order[s.Slot], r)
		}
		counts[s.Slot][r]++
	}

	assigned := make(map[int]model.Lane)
	for slot, regionCounts := range counts {
		top := order[slot][0]
		for _, r := range order[slot][1:] {
			if regionCounts[r] > regionCounts[top] {
				top = r
			}
		}
		assigned[slot] = laneFor(slot, top)
	}

	for slot := 0; slot < 10; slot++ {
		if _, ok := assigned[slot]; !ok {
			if hint, ok := hints[slot]; ok {
				assigned[slot] = hint
			} else {
				assigned[slot] = model.LaneJungle
			}
		}
	}
	return assigned
}

// laneFor converts a map region to a team-relative lane. Bottom is
// Radiant's safe lane and Dire's off lane; top is mirrored.
func laneFor(slot int, r region) model.Lane {
	radiant := model.SideOfSlot(slot) == model.SideRadiant
	switch r {
	case regionMid:
		return model.LaneMid
	case regionBot:
		if radiant {
			return model.LaneSafe
		}
		return model.LaneOff
	case regionTop:
		if radiant {
			return model.LaneOff
		}
		return model.LaneSafe
	default:
		return model.LaneJungle
	}
}
