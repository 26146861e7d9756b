package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/analysis"
	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var analyzeNoBaseline bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <match-id> <slot>",
	Short: "Analyze one player's performance in a stored match",
	Long: `Run the analysis pipeline for a single player: reconstruct timed
snapshots from the event stream, infer lanes and roles, detect teamfights,
compare against hero baselines, and store the scored findings.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoBaseline, "no-baseline", false, "skip baseline comparisons")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil || slot < 0 || slot > 9 {
		return fmt.Errorf("invalid slot %q: must be 0-9", args[1])
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
		return fmt.Errorf("match %d not stored; run 'dotainsight ingest' or 'dotainsight fetch' first", matchID)
	}

	players, err := db.GetPlayers(matchID)
	if err != nil {
		return fmt.Errorf("query players: %w", err)
	}
	events, err := db.GetEvents(matchID)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	snapshots, err := db.GetSnapshots(matchID)
	if err != nil {
		return fmt.Errorf("query snapshots: %w", err)
	}

	in := analysis.Input{
		Match:      *match,
		Players:    players,
		Events:     events,
		Snapshots:  snapshots,
		TargetSlot: slot,
	}
	if !analyzeNoBaseline {
		in.Baselines = db
	}

	out, err := analysis.Analyze(cmd.Context(), logger, analysisOptions(), in)
	if err != nil {
		return err
	}

	// Persist the derived artifacts so later commands can reuse them.
	if err := db.InsertPlayers(out.Players); err != nil {
		return fmt.Errorf("store lanes and roles: %w", err)
	}
	if len(snapshots) == 0 && len(out.Snapshots) > 0 {
		if err := db.InsertSnapshots(out.Snapshots); err != nil {
			return fmt.Errorf("store snapshots: %w", err)
		}
	}
	if err := db.SaveAnalysis(out.Analysis); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintPlayerTable(os.Stdout, out.Players, slot)
	report.PrintAnalysis(os.Stdout, out.Analysis)
	return nil
}
