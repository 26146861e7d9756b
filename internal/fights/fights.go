// Package fights clusters kill events into teamfights.
//
// Kills that land within a short window of the previous kill belong to the
// same cluster; a cluster with enough distinct heroes involved is a
// teamfight. Each fight's losses are attributed to the victim's team so a
// winner can be called.
package fights

import (
	"sort"

	"github.com/pable/go-dota-insight/internal/model"
)

const (
	// WindowSecs is the maximum gap between consecutive kills of one fight.
	WindowSecs = 20
	// MinParticipants is the minimum distinct heroes involved.
	MinParticipants = 3
)

// Detect finds teamfights in the event stream. Illusion deaths never count.
// roster maps hero name to canonical slot and is used to resolve a victim's
// team when the kill payload carries no target slot; unresolvable victims
// count toward neither side.
func Detect(events []model.Event, roster map[string]int) []model.Teamfight {
	return DetectWith(events, roster, WindowSecs, MinParticipants)
}

// DetectWith is Detect with explicit clustering parameters.
func DetectWith(events []model.Event, roster map[string]int, windowSecs float64, minParticipants int) []model.Teamfight {
	var kills []model.Event
	for _, e := range events {
		if e.Kind == model.EventKill && !e.Data.Bool("target_illusion") {
			kills = append(kills, e)
		}
	}
	if len(kills) == 0 {
		return nil
	}
	sort.SliceStable(kills, func(i, j int) bool {
		return kills[i].Time < kills[j].Time
	})

	var clusters [][]model.Event
	current := []model.Event{kills[0]}
	for _, k := range kills[1:] {
		if k.Time-current[len(current)-1].Time <= windowSecs {
			current = append(current, k)
		} else {
			clusters = append(clusters, current)
			current = []model.Event{k}
		}
	}
	clusters = append(clusters, current)

	var fights []model.Teamfight
	for _, cluster := range clusters {
		participants := make(map[string]struct{})
		for _, k := range cluster {
			if a := k.Data.Str("attacker"); a != "" {
				participants[a] = struct{}{}
			}
			if t := k.Data.Str("target"); t != "" {
				participants[t] = struct{}{}
			}
		}
		if len(participants) < minParticipants {
			continue
		}

		fight := model.Teamfight{
			StartTime:    cluster[0].Time,
			EndTime:      cluster[len(cluster)-1].Time,
			Kills:        cluster,
			Participants: participants,
		}
		for _, k := range cluster {
			switch victimSide(k, roster) {
			case model.SideRadiant:
				fight.RadiantLosses++
			case model.SideDire:
				fight.DireLosses++
			}
		}
		fights = append(fights, fight)
	}
	return fights
}

// victimSide resolves which team lost a hero on a kill: a target_slot in the
// payload wins, then a roster lookup by the victim's hero name.
func victimSide(kill model.Event, roster map[string]int) model.Side {
	if slot, ok := kill.Data.Int("target_slot"); ok {
		return model.SideOfSlot(slot)
	}
	target := kill.Data.Str("target")
	if target == "" {
		return model.SideNone
	}
	if slot, ok := roster[target]; ok {
		return model.SideOfSlot(slot)
	}
	return model.SideNone
}
