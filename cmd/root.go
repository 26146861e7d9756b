package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/analysis"
	"github.com/pable/go-dota-insight/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "dotainsight",
	Short: "Dota 2 match insight tool",
	Long:  "Ingest Dota 2 match dumps and produce per-player performance analyses.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.LogLevel),
		}))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(fightsCmd)
	rootCmd.AddCommand(baselinesCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
}

// analysisOptions maps the loaded config onto pipeline options.
func analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.SnapshotIntervalSecs = cfg.SnapshotIntervalSecs
	opts.FightWindowSecs = cfg.FightWindowSecs
	opts.FightMinParticipants = cfg.FightMinParticipants
	opts.WinBonus = cfg.WinBonus
	opts.CriticalWeight = cfg.CriticalWeight
	opts.WarningWeight = cfg.WarningWeight
	opts.InfoWeight = cfg.InfoWeight
	return opts
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
