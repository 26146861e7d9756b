package detect

import (
	"context"
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

// TeamDetector compares aggregate team performance, lane matchups, support
// participation, and composition balance.
type TeamDetector struct{}

func (d *TeamDetector) Name() string     { return "team_analysis" }
func (d *TeamDetector) Category() string { return "team" }

type teamStats struct {
	kills, deaths, assists  int
	heroDamage, towerDamage int
	lastHits                int
	avgGPM, avgXPM          float64
}

func aggregate(players []model.MatchPlayer) teamStats {
	var s teamStats
	for _, p := range players {
		s.kills += p.Kills
		s.deaths += p.Deaths
		s.assists += p.Assists
		s.heroDamage += p.HeroDamage
		s.towerDamage += p.TowerDamage
		s.lastHits += p.LastHits
		s.avgGPM += float64(p.GPM)
		s.avgXPM += float64(p.XPM)
	}
	if n := len(players); n > 0 {
		s.avgGPM /= float64(n)
		s.avgXPM /= float64(n)
	}
	return s
}

func (d *TeamDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	team, enemy := c.TeamPlayers()
	ts, es := aggregate(team), aggregate(enemy)

	var findings []model.Finding

	// Kill balance.
	killDiff := ts.kills - es.kills
	if killDiff >= 10 {
		f := finding(d, model.SeverityInfo, min64(0.9, float64(killDiff)/30),
			"Team fight dominance",
			fmt.Sprintf("Your team secured %d more kills than the enemy (%d vs %d). Strong team fighting performance.",
				killDiff, ts.kills, es.kills))
		f.Data = map[string]any{"team_kills": ts.kills, "enemy_kills": es.kills, "kill_difference": killDiff}
		findings = append(findings, f)
	} else if killDiff <= -10 {
		f := finding(d, model.SeverityWarning, min64(0.85, float64(-killDiff)/30),
			"Team fight disadvantage",
			fmt.Sprintf("Your team had %d fewer kills (%d vs %d). Consider avoiding fights or improving coordination.",
				-killDiff, ts.kills, es.kills))
		f.Data = map[string]any{"team_kills": ts.kills, "enemy_kills": es.kills, "kill_difference": killDiff}
		findings = append(findings, f)
	}

	// Economy: GPM gap scaled to a match-long gold estimate.
	goldDiff := (ts.avgGPM - es.avgGPM) * 5 * (float64(c.DurationSecs) / 60)
	if goldDiff >= 10000 {
		f := finding(d, model.SeverityInfo, min64(0.85, goldDiff/30000),
			"Gold advantage",
			fmt.Sprintf("Your team had ~%.0fk gold advantage (avg GPM: %.0f vs %.0f). Good economic performance.",
				goldDiff/1000, ts.avgGPM, es.avgGPM))
		f.Data = map[string]any{"team_avg_gpm": ts.avgGPM, "enemy_avg_gpm": es.avgGPM, "estimated_gold_diff": goldDiff}
		findings = append(findings, f)
	} else if goldDiff <= -10000 {
		f := finding(d, model.SeverityWarning, min64(0.8, -goldDiff/30000),
			"Gold disadvantage",
			fmt.Sprintf("Your team was ~%.0fk gold behind (avg GPM: %.0f vs %.0f). Farm more efficiently or take advantageous fights.",
				-goldDiff/1000, ts.avgGPM, es.avgGPM))
		f.Data = map[string]any{"team_avg_gpm": ts.avgGPM, "enemy_avg_gpm": es.avgGPM, "estimated_gold_diff": goldDiff}
		findings = append(findings, f)
	}

	// Objective pressure.
	towerRatio := float64(ts.towerDamage) / float64(maxInt(1, es.towerDamage))
	if ts.towerDamage > 5000 && towerRatio >= 1.5 {
		f := finding(d, model.SeverityInfo, min64(0.8, towerRatio/3),
			"Strong objective focus",
			fmt.Sprintf("Your team dealt %d tower damage (%.1fx enemy). Good objective-focused play.",
				ts.towerDamage, towerRatio))
		f.Data = map[string]any{"team_tower_damage": ts.towerDamage, "enemy_tower_damage": es.towerDamage, "tower_ratio": towerRatio}
		findings = append(findings, f)
	} else if es.towerDamage > 5000 && towerRatio <= 0.6 {
		ratioConf := 1 / maxFloat(0.1, towerRatio) / 3
		f := finding(d, model.SeverityWarning, min64(0.75, ratioConf),
			"Low objective damage",
			fmt.Sprintf("Your team dealt only %d tower damage vs enemy's %d. Prioritize taking objectives after won fights.",
				ts.towerDamage, es.towerDamage))
		f.Data = map[string]any{"team_tower_damage": ts.towerDamage, "enemy_tower_damage": es.towerDamage, "tower_ratio": towerRatio}
		findings = append(findings, f)
	}

	// Hero damage output.
	if dmgDiff := ts.heroDamage - es.heroDamage; dmgDiff >= 20000 {
		f := finding(d, model.SeverityInfo, min64(0.8, float64(dmgDiff)/50000),
			"High team damage output",
			fmt.Sprintf("Your team dealt %.0fk more hero damage (%.0fk total). Strong damage contribution in fights.",
				float64(dmgDiff)/1000, float64(ts.heroDamage)/1000))
		f.Data = map[string]any{"team_hero_damage": ts.heroDamage, "enemy_hero_damage": es.heroDamage, "damage_diff": dmgDiff}
		findings = append(findings, f)
	}

	findings = append(findings, d.analyzeLanes(team, enemy)...)
	findings = append(findings, d.analyzeSupports(team)...)
	findings = append(findings, d.analyzeComposition(team)...)
	return findings, nil
}

// analyzeLanes compares creep score and deaths lane by lane.
func (d *TeamDetector) analyzeLanes(team, enemy []model.MatchPlayer) []model.Finding {
	byLane := func(players []model.MatchPlayer, lane model.Lane) (cs, deaths int, present bool) {
		for _, p := range players {
			if p.Lane == lane {
				cs += p.LastHits
				deaths += p.Deaths
				present = true
			}
		}
		return cs, deaths, present
	}

	laneNames := []struct {
		lane model.Lane
		name string
	}{
		{model.LaneSafe, "Safe Lane"},
		{model.LaneMid, "Mid Lane"},
		{model.LaneOff, "Off Lane"},
	}

	var findings []model.Finding
	for _, ln := range laneNames {
		teamCS, teamDeaths, teamPresent := byLane(team, ln.lane)
		enemyCS, enemyDeaths, enemyPresent := byLane(enemy, ln.lane)
		if !teamPresent || !enemyPresent {
			continue
		}

		csDiff := teamCS - enemyCS
		deathDiff := teamDeaths - enemyDeaths
		if abs(csDiff) < 30 && abs(deathDiff) < 3 {
			continue
		}

		won := csDiff > 20 || (csDiff >= 0 && deathDiff < -2)
		lost := csDiff < -20 || (csDiff <= 0 && deathDiff > 2)
		conf := min64(0.75, float64(abs(csDiff))/60+float64(abs(deathDiff))/5)
		data := map[string]any{
			"lane": int(ln.lane), "lane_name": ln.name, "cs_diff": csDiff, "death_diff": deathDiff,
		}

		if won {
			f := finding(d, model.SeverityInfo, conf,
				fmt.Sprintf("%s won", ln.name),
				fmt.Sprintf("Your %s had +%d CS advantage and %d fewer deaths. Strong laning phase.",
					lowerLane(ln.name), csDiff, abs(deathDiff)))
			f.Data = data
			findings = append(findings, f)
		} else if lost {
			f := finding(d, model.SeverityWarning, min64(0.7, conf),
				fmt.Sprintf("%s lost", ln.name),
				fmt.Sprintf("Your %s had %d CS deficit and %d more deaths. Consider earlier rotations.",
					lowerLane(ln.name), csDiff, deathDiff))
			f.Data = data
			findings = append(findings, f)
		}
	}
	return findings
}

func (d *TeamDetector) analyzeSupports(team []model.MatchPlayer) []model.Finding {
	var supports []model.MatchPlayer
	teamKills := 0
	for _, p := range team {
		teamKills += p.Kills
		if p.Role.IsSupport() {
			supports = append(supports, p)
		}
	}
	if len(supports) == 0 || teamKills == 0 {
		return nil
	}

	supportAssists := 0
	for _, p := range supports {
		supportAssists += p.Assists
	}
	participation := float64(supportAssists) / float64(teamKills)

	if participation >= 0.7 {
		f := finding(d, model.SeverityInfo, min64(0.8, participation),
			"High support participation",
			fmt.Sprintf("Supports participated in %.0f%% of kills (%d assists). Excellent team coordination.",
				participation*100, supportAssists))
		f.Data = map[string]any{
			"support_assists": supportAssists, "team_kills": teamKills, "participation_rate": participation,
		}
		return []model.Finding{f}
	}
	if participation <= 0.3 && teamKills >= 15 {
		f := finding(d, model.SeverityWarning, 0.6,
			"Low support participation",
			fmt.Sprintf("Supports only participated in %.0f%% of kills. Better positioning and smoke rotations could help.",
				participation*100))
		f.Data = map[string]any{
			"support_assists": supportAssists, "team_kills": teamKills, "participation_rate": participation,
		}
		return []model.Finding{f}
	}
	return nil
}

func (d *TeamDetector) analyzeComposition(team []model.MatchPlayer) []model.Finding {
	var cores, supports int
	var hasCarry, hasMid bool
	var roles []int
	for _, p := range team {
		if p.Role == model.RoleNone {
			continue
		}
		roles = append(roles, int(p.Role))
		if p.Role.IsCore() {
			cores++
		} else {
			supports++
		}
		hasCarry = hasCarry || p.Role == model.RoleCarry
		hasMid = hasMid || p.Role == model.RoleMid
	}

	var findings []model.Finding
	if !hasCarry && !hasMid {
		f := finding(d, model.SeverityWarning, 0.6,
			"Unusual team composition",
			"No clear position 1 or 2 detected. Ensure farm priority is understood within the team.")
		f.Data = map[string]any{"roles_detected": roles}
		findings = append(findings, f)
	}
	if cores >= 4 {
		f := finding(d, model.SeverityInfo, 0.65,
			"Greedy lineup",
			fmt.Sprintf("Your team has %d core heroes. Ensure good early game to secure farm for everyone.", cores))
		f.Data = map[string]any{"core_count": cores, "support_count": supports}
		findings = append(findings, f)
	}
	return findings
}

func lowerLane(name string) string {
	switch name {
	case "Safe Lane":
		return "safe lane"
	case "Mid Lane":
		return "mid lane"
	default:
		return "off lane"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
