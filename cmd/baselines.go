package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/model"
	"github.com/pable/go-dota-insight/internal/storage"
)

var baselinesCmd = &cobra.Command{
	Use:   "baselines",
	Short: "Manage hero reference baselines",
}

var baselinesSeedCmd = &cobra.Command{
	Use:   "seed <baselines.json>",
	Short: "Load hero baselines from a JSON file",
	Long: `Load reference baselines from a JSON array. Each entry carries the
(hero_id, role, patch, bracket) key, the aggregate metrics, and a sample
size. Existing entries with the same key are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runBaselinesSeed,
}

func init() {
	baselinesCmd.AddCommand(baselinesSeedCmd)
}

// baselineDoc is one seed file entry. The metrics are embedded flat.
type baselineDoc struct {
	HeroID     int    `json:"hero_id"`
	Role       int    `json:"role"`
	Patch      string `json:"patch"`
	Bracket    int    `json:"bracket"`
	SampleSize int    `json:"sample_size"`
	model.BaselineMetrics
}

func runBaselinesSeed(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read baselines file: %w", err)
	}

	var docs []baselineDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return fmt.Errorf("decode baselines file: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("baselines file is empty")
	}

	baselines := make([]model.Baseline, 0, len(docs))
	for i, d := range docs {
		if d.HeroID <= 0 {
			return fmt.Errorf("entry %d: missing hero_id", i)
		}
		role := model.Role(d.Role)
		if role < model.RoleCarry || role > model.RoleHardSupport {
			return fmt.Errorf("entry %d: invalid role %d (want 1-5)", i, d.Role)
		}
		baselines = append(baselines, model.Baseline{
			Key: model.BaselineKey{
				HeroID:  d.HeroID,
				Role:    role,
				Patch:   d.Patch,
				Bracket: d.Bracket,
			},
			Metrics:    d.BaselineMetrics,
			SampleSize: d.SampleSize,
		})
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.UpsertBaselines(baselines); err != nil {
		return fmt.Errorf("store baselines: %w", err)
	}

	total, err := db.BaselineCount()
	if err != nil {
		return fmt.Errorf("count baselines: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Loaded %d baselines (%d total in store).\n", len(baselines), total)
	return nil
}
