// Package roles assigns the five positional roles per team from lane
// assignments, hero archetypes, and farm priority.
//
// Assignment runs in stages: hero-constrained picks first (a hard carry is
// never a support and vice versa), then lane plus creep-score ordering, then
// a farm-priority fill for whatever is left. All orderings are stable so the
// result is deterministic for a given roster.
package roles

import (
	"sort"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
)

// Classify assigns a role to every player, per team.
func Classify(lanes map[int]model.Lane, players []model.MatchPlayer) map[int]model.Role {
	out := make(map[int]model.Role)

	var radiant, dire []model.MatchPlayer
	for _, p := range players {
		if model.SideOfSlot(p.Slot) == model.SideRadiant {
			radiant = append(radiant, p)
		} else {
			dire = append(dire, p)
		}
	}
	if len(radiant) > 0 {
		assignTeam(radiant, lanes, out)
	}
	if len(dire) > 0 {
		assignTeam(dire, lanes, out)
	}
	return out
}

func forbidden(heroID int, role model.Role) bool {
	_, forbids := herodata.PreferredRoles(heroID)
	for _, r := range forbids {
		if model.Role(r) == role {
			return true
		}
	}
	return false
}

func assignTeam(players []model.MatchPlayer, lanes map[int]model.Lane, out map[int]model.Role) {
	assigned := make(map[model.Role]bool)

	byFarm := make([]model.MatchPlayer, len(players))
	copy(byFarm, players)
	sort.SliceStable(byFarm, func(i, j int) bool {
		return byFarm[i].GPM > byFarm[j].GPM
	})

	// Stage 1: the highest-farm hard carry is position 1.
	for _, p := range byFarm {
		if herodata.IsHardCarry(p.HeroID) && !assigned[model.RoleCarry] {
			out[p.Slot] = model.RoleCarry
			assigned[model.RoleCarry] = true
			break
		}
	}

	// Stage 2: mid lane, or a mid-archetype hero, is position 2.
	for _, p := range players {
		if _, done := out[p.Slot]; done {
			continue
		}
		if (lanes[p.Slot] == model.LaneMid || herodata.IsMid(p.HeroID)) && !assigned[model.RoleMid] {
			out[p.Slot] = model.RoleMid
			assigned[model.RoleMid] = true
			break
		}
	}

	// Stage 3: the lowest-farm hard support is position 5.
	for i := len(byFarm) - 1; i >= 0; i-- {
		p := byFarm[i]
		if _, done := out[p.Slot]; done {
			continue
		}
		if herodata.IsHardSupport(p.HeroID) && !assigned[model.RoleHardSupport] {
			out[p.Slot] = model.RoleHardSupport
			assigned[model.RoleHardSupport] = true
			break
		}
	}

	// Stage 4: safe lane by creep score; the top farmer is the carry, the
	// rest are supports.
	safe := unassignedInLane(players, lanes, out, model.LaneSafe)
	for i, p := range safe {
		switch {
		case i == 0 && !assigned[model.RoleCarry] && !forbidden(p.HeroID, model.RoleCarry):
			out[p.Slot] = model.RoleCarry
			assigned[model.RoleCarry] = true
		case !assigned[model.RoleHardSupport] && !forbidden(p.HeroID, model.RoleHardSupport):
			out[p.Slot] = model.RoleHardSupport
			assigned[model.RoleHardSupport] = true
		case !assigned[model.RoleSoftSupport] && !forbidden(p.HeroID, model.RoleSoftSupport):
			out[p.Slot] = model.RoleSoftSupport
			assigned[model.RoleSoftSupport] = true
		}
	}

	// Stage 5: off lane by creep score; the top farmer is position 3.
	off := unassignedInLane(players, lanes, out, model.LaneOff)
	for i, p := range off {
		switch {
		case i == 0 && !assigned[model.RoleOfflane] && !forbidden(p.HeroID, model.RoleOfflane):
			out[p.Slot] = model.RoleOfflane
			assigned[model.RoleOfflane] = true
		case !assigned[model.RoleSoftSupport] && !forbidden(p.HeroID, model.RoleSoftSupport):
			out[p.Slot] = model.RoleSoftSupport
			assigned[model.RoleSoftSupport] = true
		}
	}

	// Stage 6: fill remaining roles by farm priority, skipping forbidden
	// combinations when possible.
	var remaining []model.Role
	for r := model.RoleCarry; r <= model.RoleHardSupport; r++ {
		if !assigned[r] {
			remaining = append(remaining, r)
		}
	}
	for _, p := range byFarm {
		if _, done := out[p.Slot]; done {
			continue
		}
		picked := -1
		for i, r := range remaining {
			if !forbidden(p.HeroID, r) {
				picked = i
				break
			}
		}
		if picked < 0 && len(remaining) > 0 {
			picked = 0
		}
		if picked >= 0 {
			out[p.Slot] = remaining[picked]
			remaining = append(remaining[:picked], remaining[picked+1:]...)
		}
	}

	// Stage 7: anyone still without a role gets one from their archetype.
	for _, p := range players {
		if _, done := out[p.Slot]; done {
			continue
		}
		switch {
		case herodata.IsHardCarry(p.HeroID):
			out[p.Slot] = model.RoleCarry
		case herodata.IsHardSupport(p.HeroID):
			out[p.Slot] = model.RoleHardSupport
		default:
			out[p.Slot] = model.RoleOfflane
		}
	}
}

// unassignedInLane returns the team's unassigned players in the given lane,
// ordered by last hits descending (stable).
func unassignedInLane(players []model.MatchPlayer, lanes map[int]model.Lane, out map[int]model.Role, lane model.Lane) []model.MatchPlayer {
	var in []model.MatchPlayer
	for _, p := range players {
		if _, done := out[p.Slot]; done {
			continue
		}
		if lanes[p.Slot] == lane {
			in = append(in, p)
		}
	}
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].LastHits > in[j].LastHits
	})
	return in
}
