package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/analysis"
	"github.com/pable/go-dota-insight/internal/fights"
	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var fightsCmd = &cobra.Command{
	Use:   "fights <match-id>",
	Short: "Show the teamfight timeline of a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runFights,
}

func runFights(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		fmt.Fprintf(os.Stderr, "No match stored with id %d\n", matchID)
		return nil
	}

	events, err := db.GetEvents(matchID)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	roster := analysis.Roster(events)
	detected := fights.DetectWith(events, roster, cfg.FightWindowSecs, cfg.FightMinParticipants)

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintFights(os.Stdout, detected)
	return nil
}
