package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var showSlot int

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show a stored match and its analyses",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showSlot, "slot", -1, "highlight a player slot and print their analysis")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	players, err := db.GetPlayers(matchID)
	if err != nil {
		return fmt.Errorf("query players: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintPlayerTable(os.Stdout, players, showSlot)

	if showSlot >= 0 {
		a, err := db.GetAnalysis(matchID, showSlot)
		if err != nil {
			return fmt.Errorf("query analysis: %w", err)
		}
		if a == nil {
			fmt.Fprintf(os.Stdout, "\nSlot %d has no analysis yet. Run 'dotainsight analyze %d %d'.\n",
				showSlot, matchID, showSlot)
			return nil
		}
		report.PrintAnalysis(os.Stdout, *a)
		return nil
	}

	analyses, err := db.ListAnalyses(matchID)
	if err != nil {
		return fmt.Errorf("query analyses: %w", err)
	}
	if len(analyses) == 0 {
		fmt.Fprintf(os.Stdout, "\nNo analyses yet. Run 'dotainsight analyze %d <slot>'.\n", matchID)
		return nil
	}
	fmt.Fprintln(os.Stdout)
	for _, a := range analyses {
		fmt.Fprintf(os.Stdout, "Slot %d: %.1f/100  %s\n", a.Slot, a.Score, a.Summary)
	}
	fmt.Fprintf(os.Stdout, "\nUse --slot <n> to see a full report.\n")
	return nil
}
