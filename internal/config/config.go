// Package config defines tool configuration and its loading order.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds every tunable of the tool.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath points at the SQLite database file.
	DBPath string `koanf:"db_path"`

	// SnapshotIntervalSecs sets the spacing of reconstructed snapshots.
	SnapshotIntervalSecs int `koanf:"snapshot_interval_secs"`

	// FightWindowSecs is the max gap between kills of one teamfight.
	FightWindowSecs float64 `koanf:"fight_window_secs"`

	// FightMinParticipants is the distinct-hero floor for a teamfight.
	FightMinParticipants int `koanf:"fight_min_participants"`

	// Score weights.
	WinBonus       float64 `koanf:"win_bonus"`
	CriticalWeight float64 `koanf:"critical_weight"`
	WarningWeight  float64 `koanf:"warning_weight"`
	InfoWeight     float64 `koanf:"info_weight"`

	// OpenDotaBaseURL is the API root used by the fetch command.
	OpenDotaBaseURL string `koanf:"opendota_base_url"`

	// OpenDotaTimeoutSecs bounds a single API request.
	OpenDotaTimeoutSecs int `koanf:"opendota_timeout_secs"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		DBPath:               defaultDBPath(),
		SnapshotIntervalSecs: 60,
		FightWindowSecs:      20,
		FightMinParticipants: 3,
		WinBonus:             10,
		CriticalWeight:       8,
		WarningWeight:        4,
		InfoWeight:           5,
		OpenDotaBaseURL:      "https://api.opendota.com/api",
		OpenDotaTimeoutSecs:  30,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DOTAINSIGHT_CONFIG is set
//  3. env (prefix DOTAINSIGHT_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DOTAINSIGHT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// DOTAINSIGHT_DB_PATH -> db_path, DOTAINSIGHT_FIGHT_WINDOW_SECS -> fight_window_secs, ...
	envProvider := env.Provider("DOTAINSIGHT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "dotainsight_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.SnapshotIntervalSecs <= 0 {
		return nil, errors.New("snapshot_interval_secs must be positive")
	}
	if cfg.FightMinParticipants < 1 {
		return nil, errors.New("fight_min_participants must be at least 1")
	}
	return &cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dotainsight", "insight.db")
}
