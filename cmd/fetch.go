package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/opendota"
	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <match-id>",
	Short: "Fetch a match from the OpenDota API and store it",
	Long: `Fetch match metadata and the final scoreboard from OpenDota. The API
does not expose the replay event stream, so analyses of fetched matches
skip the event-driven detectors until events are ingested separately.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	var matchID int64
	if _, err := fmt.Sscanf(args[0], "%d", &matchID); err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.MatchExists(matchID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Match %d already stored.\n", matchID)
		return nil
	}

	client := opendota.NewClient(cfg.OpenDotaBaseURL, time.Duration(cfg.OpenDotaTimeoutSecs)*time.Second)

	logger.Info("fetching match", "match", matchID)
	resp, err := client.GetMatch(cmd.Context(), matchID)
	if err != nil {
		return fmt.Errorf("fetch match: %w", err)
	}

	match, players, err := resp.ToMatch()
	if err != nil {
		return err
	}

	if err := db.InsertMatch(match); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertPlayers(players); err != nil {
		return fmt.Errorf("insert players: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, match)
	report.PrintPlayerTable(os.Stdout, players, -1)
	return nil
}
