package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

const baselineColumns = `hero_id, role, patch, bracket,
	avg_gpm, std_gpm, avg_xpm, std_xpm,
	avg_kills, avg_deaths, std_deaths,
	avg_last_hits_10, avg_last_hits_20,
	win_rate, item_timings, sample_size`

// UpsertBaselines bulk-inserts reference baselines in a transaction.
func (db *DB) UpsertBaselines(baselines []model.Baseline) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO hero_baselines(` + baselineColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range baselines {
		timings, err := json.Marshal(b.Metrics.ItemTimings)
		if err != nil {
			return fmt.Errorf("encode item timings: %w", err)
		}
		_, err = stmt.Exec(
			b.Key.HeroID, int(b.Key.Role), b.Key.Patch, b.Key.Bracket,
			b.Metrics.AvgGPM, b.Metrics.StdGPM, b.Metrics.AvgXPM, b.Metrics.StdXPM,
			b.Metrics.AvgKills, b.Metrics.AvgDeaths, b.Metrics.StdDeaths,
			b.Metrics.AvgLastHits10, b.Metrics.AvgLastHits20,
			b.Metrics.WinRate, string(timings), b.SampleSize,
		)
		if err != nil {
			return fmt.Errorf("upsert baseline hero %d role %d: %w", b.Key.HeroID, b.Key.Role, err)
		}
	}
	return tx.Commit()
}

// Baseline returns the baseline matching the key exactly, or nil.
func (db *DB) Baseline(key model.BaselineKey) (*model.Baseline, error) {
	row := db.conn.QueryRow(`
		SELECT `+baselineColumns+`
		FROM hero_baselines
		WHERE hero_id = ? AND role = ? AND patch = ? AND bracket = ?`,
		key.HeroID, int(key.Role), key.Patch, key.Bracket)
	return scanBaseline(row)
}

// BaselineAnyBracket returns a baseline for the hero, role, and patch from any
// skill bracket, preferring the largest sample.
func (db *DB) BaselineAnyBracket(heroID int, role model.Role, patch string) (*model.Baseline, error) {
	row := db.conn.QueryRow(`
		SELECT `+baselineColumns+`
		FROM hero_baselines
		WHERE hero_id = ? AND role = ? AND patch = ?
		ORDER BY sample_size DESC, bracket LIMIT 1`,
		heroID, int(role), patch)
	return scanBaseline(row)
}

// BaselineAnyPatch returns a baseline for the hero and role from any patch and
// bracket, preferring the largest sample.
func (db *DB) BaselineAnyPatch(heroID int, role model.Role) (*model.Baseline, error) {
	row := db.conn.QueryRow(`
		SELECT `+baselineColumns+`
		FROM hero_baselines
		WHERE hero_id = ? AND role = ?
		ORDER BY sample_size DESC, patch DESC, bracket LIMIT 1`,
		heroID, int(role))
	return scanBaseline(row)
}

// BaselineCount returns the number of stored baselines.
func (db *DB) BaselineCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM hero_baselines").Scan(&count)
	return count, err
}

func scanBaseline(row *sql.Row) (*model.Baseline, error) {
	var b model.Baseline
	var role int
	var timings string
	err := row.Scan(
		&b.Key.HeroID, &role, &b.Key.Patch, &b.Key.Bracket,
		&b.Metrics.AvgGPM, &b.Metrics.StdGPM, &b.Metrics.AvgXPM, &b.Metrics.StdXPM,
		&b.Metrics.AvgKills, &b.Metrics.AvgDeaths, &b.Metrics.StdDeaths,
		&b.Metrics.AvgLastHits10, &b.Metrics.AvgLastHits20,
		&b.Metrics.WinRate, &timings, &b.SampleSize,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Key.Role = model.Role(role)
	if err := json.Unmarshal([]byte(timings), &b.Metrics.ItemTimings); err != nil {
		return nil, fmt.Errorf("decode item timings: %w", err)
	}
	return &b, nil
}
