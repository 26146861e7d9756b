// Package report renders matches, fights, and analyses as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, m model.Match) {
	winner := "Dire"
	if m.RadiantWin {
		winner = "Radiant"
	}
	fmt.Fprintf(w, "\nMatch: %d  |  Date: %s  |  Duration: %s  |  Winner: %s  |  Patch: %s\n\n",
		m.MatchID, m.StartTime, formatDuration(m.DurationSecs), winner, m.Patch)
}

// PrintMatchList prints the stored match index.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("MATCH", "DATE", "DURATION", "WINNER", "RATING", "PATCH", "ANALYSES")

	for _, m := range matches {
		winner := "Dire"
		if m.RadiantWin {
			winner = "Radiant"
		}
		rating := "—"
		if m.AvgRating > 0 {
			rating = strconv.Itoa(m.AvgRating)
		}
		table.Append(
			strconv.FormatInt(m.MatchID, 10),
			m.StartTime,
			formatDuration(m.DurationSecs),
			winner,
			rating,
			m.Patch,
			strconv.Itoa(m.Analyses),
		)
	}
	table.Render()
}

// PrintPlayerTable prints the scoreboard. If focusSlot is non-negative, that
// player's row is marked with ">".
func PrintPlayerTable(w io.Writer, players []model.MatchPlayer, focusSlot int) {
	table := newTable(w)
	table.Header(" ", "SIDE", "HERO", "NAME", "LANE", "ROLE",
		"K", "D", "A", "KDA", "GPM", "XPM", "LH", "DN", "HERO_DMG", "TOWER_DMG", "LVL")

	for _, p := range players {
		marker := " "
		if focusSlot >= 0 && p.Slot == focusSlot {
			marker = ">"
		}
		name := p.Name
		if name == "" {
			name = "Anonymous"
		}
		table.Append(
			marker,
			p.Side().String(),
			herodata.HeroName(p.HeroID),
			name,
			laneLabel(p.Lane),
			p.Role.String(),
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			fmt.Sprintf("%.2f", p.KDA()),
			strconv.Itoa(p.GPM),
			strconv.Itoa(p.XPM),
			strconv.Itoa(p.LastHits),
			strconv.Itoa(p.Denies),
			strconv.Itoa(p.HeroDamage),
			strconv.Itoa(p.TowerDamage),
			strconv.Itoa(p.Level),
		)
	}
	table.Render()
}

// PrintFights prints the detected teamfight timeline.
func PrintFights(w io.Writer, fights []model.Teamfight) {
	if len(fights) == 0 {
		fmt.Fprintln(w, "No teamfights detected.")
		return
	}

	table := newTable(w)
	table.Header("#", "START", "END", "DURATION", "KILLS", "HEROES", "RAD_LOSS", "DIRE_LOSS", "WINNER")

	for i, f := range fights {
		winner := "—"
		if side := f.Winner(); side != model.SideNone {
			winner = side.String()
		}
		table.Append(
			strconv.Itoa(i+1),
			formatDuration(int(f.StartTime)),
			formatDuration(int(f.EndTime)),
			fmt.Sprintf("%.0fs", f.Duration()),
			strconv.Itoa(f.TotalKills()),
			strconv.Itoa(len(f.Participants)),
			strconv.Itoa(f.RadiantLosses),
			strconv.Itoa(f.DireLosses),
			winner,
		)
	}
	table.Render()
}

// PrintAnalysis prints the score, summary, and findings of one analysis.
func PrintAnalysis(w io.Writer, a model.Analysis) {
	fmt.Fprintf(w, "\nScore: %.1f/100\n%s\n\n", a.Score, a.Summary)
	PrintFindings(w, a.Findings)
}

// PrintFindings prints the finding table plus full descriptions.
func PrintFindings(w io.Writer, findings []model.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	table := newTable(w)
	table.Header("#", "SEVERITY", "CATEGORY", "CONF", "TIME", "TITLE")

	for i, f := range findings {
		at := "—"
		if f.Time >= 0 {
			at = formatDuration(int(f.Time))
		}
		table.Append(
			strconv.Itoa(i+1),
			strings.ToUpper(string(f.Severity)),
			f.Category,
			fmt.Sprintf("%.0f%%", f.Confidence*100),
			at,
			f.Title,
		)
	}
	table.Render()

	fmt.Fprintln(w)
	for i, f := range findings {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, f.Title, f.Description)
	}
}

func laneLabel(l model.Lane) string {
	switch l {
	case model.LaneSafe:
		return "Safe"
	case model.LaneMid:
		return "Mid"
	case model.LaneOff:
		return "Off"
	case model.LaneJungle:
		return "Jungle"
	default:
		return "—"
	}
}

func formatDuration(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
