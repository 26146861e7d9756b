// Package opendota provides a minimal client for the OpenDota API.
package opendota

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pable/go-dota-insight/internal/ingest"
	"github.com/pable/go-dota-insight/internal/model"
)

// DefaultBaseURL is the public OpenDota API root.
const DefaultBaseURL = "https://api.opendota.com/api"

// Client is a minimal OpenDota API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an OpenDota client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// MatchResponse holds the fields we need from /matches/{id}.
type MatchResponse struct {
	MatchID    int64            `json:"match_id"`
	StartTime  int64            `json:"start_time"`
	Duration   int              `json:"duration"`
	RadiantWin bool             `json:"radiant_win"`
	AvgMMR     int              `json:"average_mmr"`
	Players    []PlayerResponse `json:"players"`
}

// PlayerResponse is one roster entry from /matches/{id}.
type PlayerResponse struct {
	PlayerSlot  int    `json:"player_slot"`
	AccountID   uint64 `json:"account_id"`
	Name        string `json:"personaname"`
	HeroID      int    `json:"hero_id"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	Assists     int    `json:"assists"`
	GPM         int    `json:"gold_per_min"`
	XPM         int    `json:"xp_per_min"`
	LastHits    int    `json:"last_hits"`
	Denies      int    `json:"denies"`
	HeroDamage  int    `json:"hero_damage"`
	TowerDamage int    `json:"tower_damage"`
	HeroHealing int    `json:"hero_healing"`
	Level       int    `json:"level"`
	LaneRole    int    `json:"lane_role"`
}

// HistoryItem is one entry from /players/{id}/matches.
type HistoryItem struct {
	MatchID    int64 `json:"match_id"`
	StartTime  int64 `json:"start_time"`
	Duration   int   `json:"duration"`
	PlayerSlot int   `json:"player_slot"`
	RadiantWin bool  `json:"radiant_win"`
	HeroID     int   `json:"hero_id"`
}

// get performs a GET request and JSON-decodes the response body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetMatch returns the details of a single match.
func (c *Client) GetMatch(ctx context.Context, matchID int64) (*MatchResponse, error) {
	var m MatchResponse
	if err := c.get(ctx, fmt.Sprintf("/matches/%d", matchID), &m); err != nil {
		return nil, err
	}
	if m.MatchID == 0 {
		return nil, fmt.Errorf("match %d not found", matchID)
	}
	return &m, nil
}

// GetMatchHistory returns up to limit recent matches for an account.
func (c *Client) GetMatchHistory(ctx context.Context, accountID uint64, limit int) ([]HistoryItem, error) {
	var items []HistoryItem
	path := fmt.Sprintf("/players/%d/matches?limit=%d", accountID, limit)
	if err := c.get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ToMatch converts an API response to domain types. The patch is derived
// from the match start time.
func (m *MatchResponse) ToMatch() (model.Match, []model.MatchPlayer, error) {
	start := time.Unix(m.StartTime, 0).UTC()
	out := model.Match{
		MatchID:      m.MatchID,
		StartTime:    start.Format(time.RFC3339),
		DurationSecs: m.Duration,
		RadiantWin:   m.RadiantWin,
		AvgRating:    m.AvgMMR,
		Patch:        PatchFor(start),
	}

	var players []model.MatchPlayer
	for _, p := range m.Players {
		slot := ingest.NormalizeSlot(p.PlayerSlot)
		if slot < 0 {
			return model.Match{}, nil, fmt.Errorf("match %d has invalid player slot %d", m.MatchID, p.PlayerSlot)
		}
		players = append(players, model.MatchPlayer{
			MatchID:     m.MatchID,
			Slot:        slot,
			AccountID:   p.AccountID,
			Name:        p.Name,
			HeroID:      p.HeroID,
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			Assists:     p.Assists,
			GPM:         p.GPM,
			XPM:         p.XPM,
			LastHits:    p.LastHits,
			Denies:      p.Denies,
			HeroDamage:  p.HeroDamage,
			TowerDamage: p.TowerDamage,
			HeroHealing: p.HeroHealing,
			Level:       p.Level,
			LaneHint:    laneHint(p.LaneRole),
		})
	}
	return out, players, nil
}

// knownPatches maps patch names to release dates, newest last.
var knownPatches = []struct {
	name     string
	released time.Time
}{
	{"7.35", time.Date(2023, 12, 14, 0, 0, 0, 0, time.UTC)},
	{"7.35b", time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)},
	{"7.36", time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC)},
	{"7.36b", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
	{"7.37", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
	{"7.37b", time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)},
	{"7.37c", time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
	{"7.37d", time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)},
}

// PatchFor returns the latest patch released on or before the given time,
// or empty when the time predates every known patch.
func PatchFor(t time.Time) string {
	patch := ""
	for _, p := range knownPatches {
		if !p.released.After(t) {
			patch = p.name
		}
	}
	return patch
}

// laneHint maps OpenDota's lane_role (1 safe, 2 mid, 3 off, 4 jungle) to a
// Lane hint for the classifier's position-less fallback.
func laneHint(laneRole int) model.Lane {
	switch laneRole {
	case 1:
		return model.LaneSafe
	case 2:
		return model.LaneMid
	case 3:
		return model.LaneOff
	case 4:
		return model.LaneJungle
	default:
		return model.LaneNone
	}
}
