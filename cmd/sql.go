package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the insight database",
	Long: `Run an arbitrary SQL query against the insight database and print results as a table.

Schema overview:
  matches(match_id, start_time, duration_secs, radiant_win, avg_rating, patch)
  match_players(match_id, slot, account_id TEXT, name, hero_id, kills, deaths,
    assists, gpm, xpm, last_hits, denies, hero_damage, tower_damage, level,
    lane_hint, lane, role)
  events(match_id, seq, time, kind, slot, data JSON)
  snapshots(match_id, slot, time, x, y, gold, xp, level, items JSON)
  hero_baselines(hero_id, role, patch, bracket, avg_gpm, std_gpm, avg_xpm,
    std_xpm, avg_kills, avg_deaths, std_deaths, win_rate, item_timings JSON, sample_size)
  analyses(id, match_id, slot, score, summary, patch, created_at)
  findings(analysis_id, seq, detector, category, severity, confidence, title,
    description, time, data JSON)

Note: account_id is stored as TEXT. Use quotes: WHERE account_id = '101'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
