package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/ingest"
	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var (
	ingestEventsPath string
	ingestForce      bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <match.json>",
	Short: "Ingest a parsed match dump and store it",
	Long: `Ingest a replay-parser match dump. The document carries match metadata,
the ten-player roster, and optionally the event stream. A separate JSONL
event file can be supplied with --events.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestEventsPath, "events", "", "JSONL event stream to ingest alongside the document")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "re-ingest even if the match is already stored")
}

func runIngest(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	f, err := os.Open(docPath)
	if err != nil {
		return fmt.Errorf("open match document: %w", err)
	}
	defer f.Close()

	m, err := ingest.Decode(f)
	if err != nil {
		return err
	}

	exists, err := db.MatchExists(m.Match.MatchID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists && !ingestForce {
		fmt.Fprintf(os.Stdout, "Match %d already stored. Use --force to re-ingest.\n", m.Match.MatchID)
		return nil
	}

	events := m.Events
	if ingestEventsPath != "" {
		ef, err := os.Open(ingestEventsPath)
		if err != nil {
			return fmt.Errorf("open event stream: %w", err)
		}
		defer ef.Close()
		extra, err := ingest.DecodeEvents(ef)
		if err != nil {
			return err
		}
		events = append(events, extra...)
	}

	if err := db.InsertMatch(m.Match); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertPlayers(m.Players); err != nil {
		return fmt.Errorf("insert players: %w", err)
	}
	if err := db.InsertEvents(m.Match.MatchID, events); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	logger.Info("match ingested",
		"match", m.Match.MatchID, "players", len(m.Players), "events", len(events))

	report.PrintMatchSummary(os.Stdout, m.Match)
	report.PrintPlayerTable(os.Stdout, m.Players, -1)
	fmt.Fprintf(os.Stdout, "\nStored %d events. Run 'dotainsight analyze %d <slot>' next.\n",
		len(events), m.Match.MatchID)
	return nil
}
