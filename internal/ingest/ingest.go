// Package ingest decodes replay-parser dumps into domain types. A dump is a
// JSON match document plus an event stream, either embedded in the document
// or supplied as a separate JSONL file with one raw event per line.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pable/go-dota-insight/internal/model"
)

// heroPrefix is carried by entity names in combat log events.
const heroPrefix = "npc_dota_hero_"

// ticksPerSecond converts replay ticks to game seconds.
const ticksPerSecond = 30

// rawTypeMap normalizes parser event types. Combat log constants and short
// names both appear in the wild depending on the parser version.
var rawTypeMap = map[string]model.EventKind{
	"DOTA_COMBATLOG_DEATH":    model.EventKill,
	"DOTA_COMBATLOG_PURCHASE": model.EventItemPurchase,
	"DOTA_COMBATLOG_GOLD":     model.EventGoldChange,
	"DOTA_COMBATLOG_XP":       model.EventXPChange,
	"DOTA_COMBATLOG_ABILITY":  model.EventAbilityUse,
	"kill":                    model.EventKill,
	"item_purchase":           model.EventItemPurchase,
	"gold_change":             model.EventGoldChange,
	"xp_change":               model.EventXPChange,
	"ability_use":             model.EventAbilityUse,
	"ward_placed":             model.EventWardPlaced,
	"ward_killed":             model.EventWardKilled,
	"building_kill":           model.EventBuildingKill,
	"roshan_killed":           model.EventRoshanKill,
	"roshan_kill":             model.EventRoshanKill,
	"rune_pickup":             model.EventRunePickup,
	"player_position":         model.EventPosition,
	"position":                model.EventPosition,
}

// Document is the top-level match dump.
type Document struct {
	MatchID      int64       `json:"match_id"`
	StartTime    string      `json:"start_time"`
	DurationSecs int         `json:"duration"`
	RadiantWin   bool        `json:"radiant_win"`
	AvgRating    int         `json:"avg_mmr"`
	Patch        string      `json:"patch"`
	Players      []PlayerDoc `json:"players"`
	Events       []RawEvent  `json:"events"`
}

// PlayerDoc is one roster entry of a match dump. PlayerSlot uses Valve
// indexing (Radiant 0-4, Dire 128-132) or canonical 0-9.
type PlayerDoc struct {
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
	LaneHint    string `json:"lane"`
}

// RawEvent is an unprocessed parser event.
type RawEvent map[string]any

// Match holds a fully decoded dump.
type Match struct {
	Match   model.Match
	Players []model.MatchPlayer
	Events  []model.Event
}

// Decode reads and normalizes a match document.
func Decode(r io.Reader) (*Match, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode match document: %w", err)
	}
	if doc.MatchID == 0 {
		return nil, fmt.Errorf("match document has no match_id")
	}
	if doc.DurationSecs <= 0 {
		return nil, fmt.Errorf("match %d has invalid duration %d", doc.MatchID, doc.DurationSecs)
	}
	if len(doc.Players) == 0 {
		return nil, fmt.Errorf("match %d has no players", doc.MatchID)
	}

	out := &Match{
		Match: model.Match{
			MatchID:      doc.MatchID,
			StartTime:    doc.StartTime,
			DurationSecs: doc.DurationSecs,
			RadiantWin:   doc.RadiantWin,
			AvgRating:    doc.AvgRating,
			Patch:        doc.Patch,
		},
	}

	for _, p := range doc.Players {
		slot := NormalizeSlot(p.PlayerSlot)
		if slot < 0 {
			return nil, fmt.Errorf("match %d has invalid player slot %d", doc.MatchID, p.PlayerSlot)
		}
		out.Players = append(out.Players, model.MatchPlayer{
			MatchID:     doc.MatchID,
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
			LaneHint:    model.ParseLane(p.LaneHint),
		})
	}

	out.Events = MapEvents(doc.Events)
	return out, nil
}

// DecodeEvents reads a JSONL event stream. Blank lines are skipped; an
// undecodable line is an error.
func DecodeEvents(r io.Reader) ([]model.Event, error) {
	var raws []RawEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw RawEvent
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("decode event line %d: %w", lineNo, err)
		}
		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event stream: %w", err)
	}
	return MapEvents(raws), nil
}

// MapEvents normalizes raw events, dropping the unrecognized ones.
func MapEvents(raws []RawEvent) []model.Event {
	var out []model.Event
	for _, raw := range raws {
		if e, ok := MapEvent(raw); ok {
			out = append(out, e)
		}
	}
	return out
}

// MapEvent converts one raw parser event to a domain event. The second
// return is false when the event type is unknown or irrelevant.
func MapEvent(raw RawEvent) (model.Event, bool) {
	p := model.Payload(raw)

	rawType := p.Str("type")
	if rawType == "" {
		rawType = p.Str("event_type")
	}
	kind, ok := rawTypeMap[rawType]
	if !ok {
		return model.Event{}, false
	}

	e := model.Event{
		Time: eventTime(p),
		Kind: kind,
		Slot: eventSlot(p),
		Data: model.Payload{},
	}

	switch kind {
	case model.EventKill:
		e.Data["attacker"] = StripHeroPrefix(p.Str("attackerName"))
		e.Data["target"] = StripHeroPrefix(p.Str("targetName"))
		e.Data["attacker_illusion"] = p.Bool("attackerIllusion")
		e.Data["target_illusion"] = p.Bool("targetIllusion")
		if slot, ok := p.Int("target_slot"); ok {
			e.Data["target_slot"] = float64(NormalizeSlot(slot))
		}
	case model.EventItemPurchase:
		item := p.Str("valueName")
		if item == "" {
			item = p.Str("item")
		}
		e.Data["item"] = strings.TrimPrefix(item, "item_")
		e.Data["hero"] = StripHeroPrefix(p.Str("targetName"))
	case model.EventGoldChange, model.EventXPChange:
		amount, _ := p.Float("value")
		if a, ok := p.Float("amount"); ok {
			amount = a
		}
		e.Data["amount"] = amount
		e.Data["hero"] = StripHeroPrefix(p.Str("targetName"))
	case model.EventWardPlaced:
		e.Data["ward_type"] = wardType(p)
		e.Data["hero"] = StripHeroPrefix(p.Str("player"))
		copyFloat(p, e.Data, "x")
		copyFloat(p, e.Data, "y")
	case model.EventWardKilled:
		e.Data["ward_type"] = wardType(p)
		e.Data["killer"] = StripHeroPrefix(p.Str("killer"))
	case model.EventBuildingKill:
		e.Data["building"] = p.Str("building")
		e.Data["team"] = p.Str("team")
	case model.EventRoshanKill:
		e.Data["team"] = p.Str("team")
		e.Data["killer"] = StripHeroPrefix(p.Str("killer"))
	case model.EventPosition:
		copyFloat(p, e.Data, "x")
		copyFloat(p, e.Data, "y")
		e.Data["hero"] = StripHeroPrefix(p.Str("hero"))
	case model.EventAbilityUse:
		e.Data["ability"] = p.Str("inflictorName")
		e.Data["hero"] = StripHeroPrefix(p.Str("attackerName"))
	case model.EventRunePickup:
		e.Data["rune_type"] = p.Str("rune_type")
		e.Data["hero"] = StripHeroPrefix(p.Str("hero"))
	}

	return e, true
}

// NormalizeSlot converts Valve player slots (Radiant 0-4, Dire 128-132) to
// canonical 0-9 indexing. Canonical slots pass through. Returns -1 for
// anything else.
func NormalizeSlot(slot int) int {
	switch {
	case slot >= 0 && slot <= 9:
		return slot
	case slot >= 128 && slot <= 132:
		return slot - 128 + 5
	default:
		return -1
	}
}

// StripHeroPrefix removes the npc_dota_hero_ prefix from entity names.
func StripHeroPrefix(name string) string {
	return strings.TrimPrefix(name, heroPrefix)
}

func eventTime(p model.Payload) float64 {
	if t, ok := p.Float("time"); ok {
		return t
	}
	if t, ok := p.Float("game_time_secs"); ok {
		return t
	}
	if tick, ok := p.Float("tick"); ok {
		return tick / ticksPerSecond
	}
	return 0
}

func eventSlot(p model.Payload) int {
	for _, key := range []string{"playerSlot", "player_slot", "slot"} {
		if s, ok := p.Int(key); ok {
			return NormalizeSlot(s)
		}
	}
	return -1
}

func wardType(p model.Payload) string {
	if wt := p.Str("ward_type"); wt != "" {
		return wt
	}
	return "observer"
}

func copyFloat(src, dst model.Payload, key string) {
	if v, ok := src.Float(key); ok {
		dst[key] = v
	}
}
