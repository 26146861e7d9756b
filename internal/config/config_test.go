package config_test

import (
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-dota-insight/internal/config"
)

func TestConfigLoad(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.SnapshotIntervalSecs, convey.ShouldEqual, 60)
				convey.So(cfg.FightWindowSecs, convey.ShouldEqual, 20)
				convey.So(cfg.FightMinParticipants, convey.ShouldEqual, 3)
				convey.So(cfg.WinBonus, convey.ShouldEqual, 10)
				convey.So(cfg.OpenDotaBaseURL, convey.ShouldEqual, "https://api.opendota.com/api")
				convey.So(cfg.DBPath, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			_ = os.Setenv("DOTAINSIGHT_DB_PATH", "/tmp/test.db")
			_ = os.Setenv("DOTAINSIGHT_SNAPSHOT_INTERVAL_SECS", "30")
			_ = os.Setenv("DOTAINSIGHT_FIGHT_WINDOW_SECS", "25")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then env vars should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/test.db")
				convey.So(cfg.SnapshotIntervalSecs, convey.ShouldEqual, 30)
				convey.So(cfg.FightWindowSecs, convey.ShouldEqual, 25)
				convey.So(cfg.FightMinParticipants, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading from a YAML file", func() {
			yamlContent := `
log_level: debug
db_path: /tmp/file.db
snapshot_interval_secs: 120
critical_weight: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("DOTAINSIGHT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then file values should apply over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/file.db")
				convey.So(cfg.SnapshotIntervalSecs, convey.ShouldEqual, 120)
				convey.So(cfg.CriticalWeight, convey.ShouldEqual, 10)
				convey.So(cfg.WarningWeight, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When file and env vars are both set", func() {
			yamlContent := `
db_path: /tmp/file.db
snapshot_interval_secs: 120
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("DOTAINSIGHT_CONFIG", tmpFile)
			_ = os.Setenv("DOTAINSIGHT_DB_PATH", "/tmp/env.db")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then env vars win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/env.db")
				convey.So(cfg.SnapshotIntervalSecs, convey.ShouldEqual, 120)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("DOTAINSIGHT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When db_path is emptied", func() {
			_ = os.Setenv("DOTAINSIGHT_DB_PATH", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "db_path")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When snapshot interval is invalid", func() {
			_ = os.Setenv("DOTAINSIGHT_SNAPSHOT_INTERVAL_SECS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"DOTAINSIGHT_CONFIG",
		"DOTAINSIGHT_DB_PATH",
		"DOTAINSIGHT_LOG_LEVEL",
		"DOTAINSIGHT_SNAPSHOT_INTERVAL_SECS",
		"DOTAINSIGHT_FIGHT_WINDOW_SECS",
		"DOTAINSIGHT_FIGHT_MIN_PARTICIPANTS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "dotainsight-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
