package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
)

// DraftDetector evaluates the draft phase: intra-team synergies, counter
// picks in both directions, and the overall draft advantage.
type DraftDetector struct{}

func (d *DraftDetector) Name() string     { return "draft_analysis" }
func (d *DraftDetector) Category() string { return "draft" }

func (d *DraftDetector) Analyze(_ context.Context, c *Context) ([]model.Finding, error) {
	team, enemy := c.TeamPlayers()
	teamHeroes := heroIDs(team)
	enemyHeroes := heroIDs(enemy)

	teamName, enemyName := "Radiant", "Dire"
	if !c.IsRadiant {
		teamName, enemyName = enemyName, teamName
	}

	teamSynergies := herodata.TeamSynergies(teamHeroes)
	enemySynergies := herodata.TeamSynergies(enemyHeroes)
	ourCounters, theirCounters := herodata.TeamCounters(teamHeroes, enemyHeroes)

	var findings []model.Finding

	if strong := atLeast(teamSynergies, 0.75); len(strong) > 0 {
		descs := make([]string, 0, 3)
		for _, m := range top(strong, 3) {
			descs = append(descs, fmt.Sprintf("%s + %s (%.0f%%)",
				herodata.HeroName(m.HeroA), herodata.HeroName(m.HeroB), m.Score*100))
		}
		f := finding(d, model.SeverityInfo, min64(0.9, avgScore(strong)),
			"Strong team synergies",
			fmt.Sprintf("Your team has strong hero combinations: %s. Coordinate with these heroes for maximum impact.",
				strings.Join(descs, ", ")))
		f.Data = map[string]any{"synergies": matchupData(strong), "team": teamName}
		findings = append(findings, f)
	}

	if total := totalScore(teamSynergies); len(teamSynergies) == 0 || total < 0.5 {
		f := finding(d, model.SeverityWarning, 0.6,
			"Limited draft synergy",
			"Your team's draft lacks strong hero combinations. Focus on individual hero strengths rather than combo plays.")
		f.Data = map[string]any{"total_synergy_score": total, "team": teamName}
		findings = append(findings, f)
	}

	if strong := atLeast(ourCounters, 0.75); len(strong) > 0 {
		descs := make([]string, 0, 3)
		for _, m := range top(strong, 3) {
			descs = append(descs, fmt.Sprintf("%s counters %s",
				herodata.HeroName(m.HeroB), herodata.HeroName(m.HeroA)))
		}
		f := finding(d, model.SeverityInfo, min64(0.85, avgScore(strong)),
			"Good counter picks",
			fmt.Sprintf("Your team has effective counters: %s. Prioritize targeting these heroes.",
				strings.Join(descs, "; ")))
		f.Data = map[string]any{"counters": matchupData(strong), "team": teamName}
		findings = append(findings, f)
	}

	if hard := atLeast(theirCounters, 0.75); len(hard) > 0 {
		avg := avgScore(hard)
		sev := model.SeverityWarning
		if len(hard) >= 3 || avg >= 0.85 {
			sev = model.SeverityCritical
		}

		var desc string
		if m, ok := counterOf(hard, c.HeroID); ok {
			desc = fmt.Sprintf("Your hero (%s) is countered by %s (%.0f%% effectiveness). Play cautiously and consider itemizing defensively.",
				herodata.HeroName(c.HeroID), herodata.HeroName(m.HeroB), m.Score*100)
		} else {
			descs := make([]string, 0, 3)
			for _, m := range top(hard, 3) {
				descs = append(descs, fmt.Sprintf("%s by %s",
					herodata.HeroName(m.HeroA), herodata.HeroName(m.HeroB)))
			}
			desc = fmt.Sprintf("Teammates countered: %s. Support these heroes and help them survive.",
				strings.Join(descs, "; "))
		}

		_, playerCountered := counterOf(hard, c.HeroID)
		f := finding(d, sev, avg, "Draft countered by enemy", desc)
		f.Data = map[string]any{
			"countered": matchupData(hard), "player_hero_countered": playerCountered, "enemy_team": enemyName,
		}
		findings = append(findings, f)
	}

	if strong := atLeast(enemySynergies, 0.80); len(strong) > 0 {
		descs := make([]string, 0, 2)
		for _, m := range top(strong, 2) {
			descs = append(descs, fmt.Sprintf("%s + %s",
				herodata.HeroName(m.HeroA), herodata.HeroName(m.HeroB)))
		}
		f := finding(d, model.SeverityWarning, 0.7,
			"Beware enemy combos",
			fmt.Sprintf("Enemy team has dangerous combinations: %s. Avoid grouping or position carefully in fights.",
				strings.Join(descs, ", ")))
		f.Data = map[string]any{"enemy_synergies": matchupData(strong), "enemy_team": enemyName}
		findings = append(findings, f)
	}

	synergyTotal := totalScore(teamSynergies)
	counterTotal := totalScore(ourCounters)
	counteredTotal := totalScore(theirCounters)
	advantage := synergyTotal + counterTotal - counteredTotal

	if abs64(advantage) >= 1.0 {
		data := map[string]any{
			"draft_score":     advantage,
			"synergy_score":   synergyTotal,
			"counter_score":   counterTotal,
			"countered_score": counteredTotal,
		}
		if advantage > 0 {
			f := finding(d, model.SeverityInfo, min64(0.8, advantage/3),
				"Draft advantage",
				"Your team has a drafting advantage with better synergies and counter picks. Play around your draft strengths.")
			f.Data = data
			findings = append(findings, f)
		} else {
			f := finding(d, model.SeverityWarning, min64(0.75, abs64(advantage)/3),
				"Draft disadvantage",
				"Your team is at a drafting disadvantage. Focus on outplaying mechanically and avoid direct confrontations where counters are most effective.")
			f.Data = data
			findings = append(findings, f)
		}
	}

	return findings, nil
}

func heroIDs(players []model.MatchPlayer) []int {
	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.HeroID)
	}
	return ids
}

func atLeast(ms []herodata.Matchup, threshold float64) []herodata.Matchup {
	var out []herodata.Matchup
	for _, m := range ms {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	return out
}

func top(ms []herodata.Matchup, n int) []herodata.Matchup {
	if len(ms) > n {
		return ms[:n]
	}
	return ms
}

func totalScore(ms []herodata.Matchup) float64 {
	var sum float64
	for _, m := range ms {
		sum += m.Score
	}
	return sum
}

func avgScore(ms []herodata.Matchup) float64 {
	if len(ms) == 0 {
		return 0
	}
	return totalScore(ms) / float64(len(ms))
}

// counterOf finds the matchup where the given hero is the one countered.
func counterOf(ms []herodata.Matchup, heroID int) (herodata.Matchup, bool) {
	for _, m := range ms {
		if m.HeroA == heroID {
			return m, true
		}
	}
	return herodata.Matchup{}, false
}

func matchupData(ms []herodata.Matchup) []map[string]any {
	out := make([]map[string]any, 0, len(ms))
	for _, m := range ms {
		out = append(out, map[string]any{"hero_a": m.HeroA, "hero_b": m.HeroB, "score": m.Score})
	}
	return out
}
