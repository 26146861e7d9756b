package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pable/go-dota-insight/internal/model"
)

// SaveAnalysis stores an analysis and its findings, replacing any previous
// analysis of the same (match, slot) pair.
func (db *DB) SaveAnalysis(a model.Analysis) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM findings WHERE analysis_id IN
			(SELECT id FROM analyses WHERE match_id = ? AND slot = ?)`,
		a.MatchID, a.Slot); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM analyses WHERE match_id = ? AND slot = ?",
		a.MatchID, a.Slot); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO analyses(id, match_id, slot, score, summary, patch)
		VALUES (?,?,?,?,?,?)`,
		a.ID, a.MatchID, a.Slot, a.Score, a.Summary, a.Patch); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO findings(analysis_id, seq, detector, category, severity, confidence, title, description, time, data)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range a.Findings {
		data, err := json.Marshal(f.Data)
		if err != nil {
			return fmt.Errorf("encode finding data: %w", err)
		}
		if _, err := stmt.Exec(a.ID, i, f.Detector, f.Category, string(f.Severity),
			f.Confidence, f.Title, f.Description, f.Time, string(data)); err != nil {
			return fmt.Errorf("insert finding %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetAnalysis returns the stored analysis for a (match, slot) pair with its
// findings, or nil when none exists.
func (db *DB) GetAnalysis(matchID int64, slot int) (*model.Analysis, error) {
	var a model.Analysis
	err := db.conn.QueryRow(`
		SELECT id, match_id, slot, score, summary, patch
		FROM analyses WHERE match_id = ? AND slot = ?`, matchID, slot).
		Scan(&a.ID, &a.MatchID, &a.Slot, &a.Score, &a.Summary, &a.Patch)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	findings, err := db.findings(a.ID)
	if err != nil {
		return nil, err
	}
	a.Findings = findings
	return &a, nil
}

// ListAnalyses returns all analyses of a match ordered by slot, findings included.
func (db *DB) ListAnalyses(matchID int64) ([]model.Analysis, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_id, slot, score, summary, patch
		FROM analyses WHERE match_id = ?
		ORDER BY slot`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Analysis
	for rows.Next() {
		var a model.Analysis
		if err := rows.Scan(&a.ID, &a.MatchID, &a.Slot, &a.Score, &a.Summary, &a.Patch); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		findings, err := db.findings(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Findings = findings
	}
	return out, nil
}

func (db *DB) findings(analysisID string) ([]model.Finding, error) {
	rows, err := db.conn.Query(`
		SELECT detector, category, severity, confidence, title, description, time, data
		FROM findings WHERE analysis_id = ?
		ORDER BY seq`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Finding
	for rows.Next() {
		var f model.Finding
		var severity, data string
		if err := rows.Scan(&f.Detector, &f.Category, &severity, &f.Confidence,
			&f.Title, &f.Description, &f.Time, &data); err != nil {
			return nil, err
		}
		f.Severity = model.Severity(severity)
		if err := json.Unmarshal([]byte(data), &f.Data); err != nil {
			return nil, fmt.Errorf("decode finding data: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
