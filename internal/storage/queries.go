package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-dota-insight/internal/model"
)

// MatchExists returns true if a match with the given ID is already stored.
func (db *DB) MatchExists(matchID int64) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(m model.Match) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(match_id, start_time, duration_secs, radiant_win, avg_rating, patch)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.StartTime, m.DurationSecs, boolInt(m.RadiantWin), m.AvgRating, m.Patch,
	)
	return err
}

// InsertPlayers bulk-inserts match player rows in a transaction.
func (db *DB) InsertPlayers(players []model.MatchPlayer) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO match_players(
			match_id, slot, account_id, name, hero_id,
			kills, deaths, assists, gpm, xpm, last_hits, denies,
			hero_damage, tower_damage, hero_healing, level,
			lane_hint, lane, role
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(
			p.MatchID, p.Slot, strconv.FormatUint(p.AccountID, 10), p.Name, p.HeroID,
			p.Kills, p.Deaths, p.Assists, p.GPM, p.XPM, p.LastHits, p.Denies,
			p.HeroDamage, p.TowerDamage, p.HeroHealing, p.Level,
			laneHintText(p.LaneHint), int(p.Lane), int(p.Role),
		)
		if err != nil {
			return fmt.Errorf("insert match_players slot %d: %w", p.Slot, err)
		}
	}
	return tx.Commit()
}

// InsertEvents replaces the event log for a match. The slice order becomes
// the stored sequence.
func (db *DB) InsertEvents(matchID int64, events []model.Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE match_id = ?", matchID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events(match_id, seq, time, kind, slot, data)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range events {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return fmt.Errorf("encode event %d payload: %w", i, err)
		}
		if _, err := stmt.Exec(matchID, i, e.Time, string(e.Kind), e.Slot, string(data)); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// InsertSnapshots bulk-inserts snapshot rows in a transaction.
func (db *DB) InsertSnapshots(snaps []model.Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO snapshots(match_id, slot, time, x, y, gold, xp, level, items)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range snaps {
		items, err := json.Marshal(s.Items)
		if err != nil {
			return fmt.Errorf("encode snapshot items: %w", err)
		}
		_, err = stmt.Exec(s.MatchID, s.Slot, s.Time, s.X, s.Y, s.Gold, s.XP, s.Level, string(items))
		if err != nil {
			return fmt.Errorf("insert snapshot slot %d t=%.0f: %w", s.Slot, s.Time, err)
		}
	}
	return tx.Commit()
}

// GetMatch returns the stored match, or nil when unknown.
func (db *DB) GetMatch(matchID int64) (*model.Match, error) {
	var m model.Match
	var radiantWin int
	err := db.conn.QueryRow(`
		SELECT match_id, start_time, duration_secs, radiant_win, avg_rating, patch
		FROM matches WHERE match_id = ?`, matchID).
		Scan(&m.MatchID, &m.StartTime, &m.DurationSecs, &radiantWin, &m.AvgRating, &m.Patch)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.RadiantWin = radiantWin != 0
	return &m, nil
}

// GetPlayers returns the ten player rows of a match ordered by slot.
func (db *DB) GetPlayers(matchID int64) ([]model.MatchPlayer, error) {
	rows, err := db.conn.Query(`
		SELECT slot, account_id, name, hero_id,
		       kills, deaths, assists, gpm, xpm, last_hits, denies,
		       hero_damage, tower_damage, hero_healing, level,
		       lane_hint, lane, role
		FROM match_players WHERE match_id = ?
		ORDER BY slot`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchPlayer
	for rows.Next() {
		var p model.MatchPlayer
		var accountIDStr, laneHint string
		var lane, role int
		if err := rows.Scan(
			&p.Slot, &accountIDStr, &p.Name, &p.HeroID,
			&p.Kills, &p.Deaths, &p.Assists, &p.GPM, &p.XPM, &p.LastHits, &p.Denies,
			&p.HeroDamage, &p.TowerDamage, &p.HeroHealing, &p.Level,
			&laneHint, &lane, &role,
		); err != nil {
			return nil, err
		}
		p.MatchID = matchID
		p.AccountID, _ = strconv.ParseUint(accountIDStr, 10, 64)
		p.LaneHint = model.ParseLane(laneHint)
		p.Lane = model.Lane(lane)
		p.Role = model.Role(role)
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetEvents returns the full event log of a match in stored order.
func (db *DB) GetEvents(matchID int64) ([]model.Event, error) {
	rows, err := db.conn.Query(`
		SELECT time, kind, slot, data
		FROM events WHERE match_id = ?
		ORDER BY seq`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		var kind, data string
		if err := rows.Scan(&e.Time, &kind, &e.Slot, &data); err != nil {
			return nil, err
		}
		e.Kind = model.EventKind(kind)
		if err := json.Unmarshal([]byte(data), &e.Data); err != nil {
			return nil, fmt.Errorf("decode event payload: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetSnapshots returns all snapshots of a match ordered by time then slot.
func (db *DB) GetSnapshots(matchID int64) ([]model.Snapshot, error) {
	rows, err := db.conn.Query(`
		SELECT slot, time, x, y, gold, xp, level, items
		FROM snapshots WHERE match_id = ?
		ORDER BY time, slot`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		var s model.Snapshot
		var items string
		if err := rows.Scan(&s.Slot, &s.Time, &s.X, &s.Y, &s.Gold, &s.XP, &s.Level, &items); err != nil {
			return nil, err
		}
		s.MatchID = matchID
		if err := json.Unmarshal([]byte(items), &s.Items); err != nil {
			return nil, fmt.Errorf("decode snapshot items: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListMatches returns all stored matches newest first, with their analysis count.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT m.match_id, m.start_time, m.duration_secs, m.radiant_win, m.avg_rating, m.patch,
		       COUNT(a.id)
		FROM matches m
		LEFT JOIN analyses a ON a.match_id = m.match_id
		GROUP BY m.match_id
		ORDER BY m.start_time DESC, m.match_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		var radiantWin int
		if err := rows.Scan(&s.MatchID, &s.StartTime, &s.DurationSecs, &radiantWin,
			&s.AvgRating, &s.Patch, &s.Analyses); err != nil {
			return nil, err
		}
		s.RadiantWin = radiantWin != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteMatch removes a match and all dependent rows.
func (db *DB) DeleteMatch(matchID int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM findings WHERE analysis_id IN (SELECT id FROM analyses WHERE match_id = ?)`,
		matchID); err != nil {
		return err
	}
	for _, table := range []string{"analyses", "snapshots", "events", "match_players", "matches"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ?", matchID); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// laneHintText renders a lane hint for the TEXT column; ParseLane reads it
// back. LaneNone stores as empty.
func laneHintText(l model.Lane) string {
	if l == model.LaneNone {
		return ""
	}
	return strings.ToLower(l.String())
}
