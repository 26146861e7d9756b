package model

import "strings"

// Side represents which team a player is on.
type Side int

const (
	SideNone    Side = 0
	SideRadiant Side = 1
	SideDire    Side = 2
)

func (s Side) String() string {
	switch s {
	case SideRadiant:
		return "Radiant"
	case SideDire:
		return "Dire"
	default:
		return "?"
	}
}

// SideOfSlot maps a canonical player slot (0-9) to its team.
func SideOfSlot(slot int) Side {
	if slot < 0 || slot > 9 {
		return SideNone
	}
	if slot < 5 {
		return SideRadiant
	}
	return SideDire
}

// Lane is the early-game map assignment of a player.
type Lane int

const (
	LaneNone   Lane = 0
	LaneSafe   Lane = 1
	LaneMid    Lane = 2
	LaneOff    Lane = 3
	LaneJungle Lane = 4
)

func (l Lane) String() string {
	switch l {
	case LaneSafe:
		return "Safe"
	case LaneMid:
		return "Mid"
	case LaneOff:
		return "Off"
	case LaneJungle:
		return "Jungle"
	default:
		return "?"
	}
}

// ParseLane converts an external lane label to a Lane. Parsers and APIs use
// short and long forms interchangeably; anything else maps to LaneNone.
func ParseLane(s string) Lane {
	switch strings.ToLower(s) {
	case "safe", "safelane", "safe_lane":
		return LaneSafe
	case "mid", "middle", "midlane":
		return LaneMid
	case "off", "offlane", "off_lane":
		return LaneOff
	case "jungle", "roaming":
		return LaneJungle
	default:
		return LaneNone
	}
}

// Role is one of the five positional archetypes.
type Role int

const (
	RoleNone        Role = 0
	RoleCarry       Role = 1
	RoleMid         Role = 2
	RoleOfflane     Role = 3
	RoleSoftSupport Role = 4
	RoleHardSupport Role = 5
)

func (r Role) String() string {
	switch r {
	case RoleCarry:
		return "Carry"
	case RoleMid:
		return "Mid"
	case RoleOfflane:
		return "Offlane"
	case RoleSoftSupport:
		return "Soft Support"
	case RoleHardSupport:
		return "Hard Support"
	default:
		return "Unknown"
	}
}

// IsCore reports whether the role is a farm-priority position (1-3).
func (r Role) IsCore() bool {
	return r == RoleCarry || r == RoleMid || r == RoleOfflane
}

// IsSupport reports whether the role is a support position (4-5).
func (r Role) IsSupport() bool {
	return r == RoleSoftSupport || r == RoleHardSupport
}

// ---- Normalized events consumed from the external replay parser ----

// EventKind is the normalized event vocabulary. Unrecognized kinds pass
// through the pipeline as no-ops.
type EventKind string

const (
	EventKill         EventKind = "kill"
	EventItemPurchase EventKind = "item_purchase"
	EventGoldChange   EventKind = "gold_change"
	EventXPChange     EventKind = "xp_change"
	EventWardPlaced   EventKind = "ward_placed"
	EventWardKilled   EventKind = "ward_killed"
	EventBuildingKill EventKind = "building_kill"
	EventRoshanKill   EventKind = "roshan_kill"
	EventPosition     EventKind = "position"
	EventAbilityUse   EventKind = "ability_use"
	EventRunePickup   EventKind = "rune_pickup"
)

// Payload is the loosely typed data bag attached to an event. Accessors
// default on missing or mistyped fields; replay parsers routinely omit them.
type Payload map[string]any

func (p Payload) Str(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (p Payload) Int(key string) (int, bool) {
	f, ok := p.Float(key)
	return int(f), ok
}

func (p Payload) Bool(key string) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return false
}

// Event is a single normalized match event. Slot is the canonical acting
// player slot (0-9), or -1 when the event has no actor.
type Event struct {
	Time float64   `json:"time"`
	Kind EventKind `json:"kind"`
	Slot int       `json:"slot"`
	Data Payload   `json:"data"`
}

// ---- Match and player records ----

// Match holds the per-match header row.
type Match struct {
	MatchID      int64
	StartTime    string // "YYYY-MM-DD HH:MM"
	DurationSecs int
	RadiantWin   bool
	AvgRating    int // matchmaking rating; 0 = unknown
	Patch        string
}

// MatchPlayer holds one player's end-of-game stat line plus the lane and
// role assignments written back by the analysis pipeline.
type MatchPlayer struct {
	MatchID   int64
	Slot      int // canonical 0-9
	AccountID uint64
	Name      string
	HeroID    int

	Kills       int
	Deaths      int
	Assists     int
	GPM         int
	XPM         int
	LastHits    int
	Denies      int
	HeroDamage  int
	TowerDamage int
	HeroHealing int
	Level       int

	LaneHint Lane // externally supplied hint, used when position data is absent
	Lane     Lane // inferred by the lane classifier
	Role     Role // inferred by the role classifier
}

func (p *MatchPlayer) Side() Side {
	return SideOfSlot(p.Slot)
}

// KDA returns (kills+assists)/deaths, or kills+assists when deathless.
func (p *MatchPlayer) KDA() float64 {
	ka := float64(p.Kills + p.Assists)
	if p.Deaths == 0 {
		return ka
	}
	return ka / float64(p.Deaths)
}

// ---- Pipeline products ----

// Snapshot is one player's reconstructed state at a sampling boundary.
type Snapshot struct {
	MatchID int64
	Slot    int
	Time    float64
	X, Y    float64
	Gold    int
	XP      int
	Level   int
	Items   []string
}

// Teamfight is a temporal cluster of kills involving enough distinct heroes
// to count as a coordinated fight.
type Teamfight struct {
	StartTime     float64
	EndTime       float64
	Kills         []Event
	Participants  map[string]struct{}
	RadiantLosses int
	DireLosses    int
}

func (f *Teamfight) Duration() float64 {
	return f.EndTime - f.StartTime
}

func (f *Teamfight) TotalKills() int {
	return len(f.Kills)
}

// Winner returns the side with strictly fewer hero losses, or SideNone on a
// tie.
func (f *Teamfight) Winner() Side {
	switch {
	case f.RadiantLosses < f.DireLosses:
		return SideRadiant
	case f.DireLosses < f.RadiantLosses:
		return SideDire
	default:
		return SideNone
	}
}

// Severity grades a finding.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Finding is a single detector observation. Time is the game time the
// finding refers to; negative when it is not tied to a moment.
type Finding struct {
	Detector    string         `json:"detector"`
	Category    string         `json:"category"`
	Severity    Severity       `json:"severity"`
	Confidence  float64        `json:"confidence"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Time        float64        `json:"time"`
	Data        map[string]any `json:"data,omitempty"`
}

// Analysis is the terminal artifact of one pipeline run for one
// (match, player) pair.
type Analysis struct {
	ID       string    `json:"id"` // uuid
	MatchID  int64     `json:"match_id"`
	Slot     int       `json:"slot"`
	Score    float64   `json:"score"` // 0-100 composite
	Summary  string    `json:"summary"`
	Patch    string    `json:"patch"`
	Findings []Finding `json:"findings"`
}

// ---- Baselines ----

// BaselineKey identifies a reference cohort.
type BaselineKey struct {
	HeroID  int
	Role    Role
	Patch   string
	Bracket int
}

// BaselineMetrics holds reference statistics for one cohort. A zero avg/std
// pair means the statistic is unavailable.
type BaselineMetrics struct {
	AvgGPM float64 `json:"avg_gpm"`
	StdGPM float64 `json:"std_gpm"`
	AvgXPM float64 `json:"avg_xpm"`
	StdXPM float64 `json:"std_xpm"`

	AvgKills  float64 `json:"avg_kills"`
	AvgDeaths float64 `json:"avg_deaths"`
	StdDeaths float64 `json:"std_deaths"`

	AvgLastHits10 float64 `json:"avg_last_hits_10"`
	AvgLastHits20 float64 `json:"avg_last_hits_20"`

	WinRate float64 `json:"win_rate"`

	// ItemTimings maps item name to the cohort's average completion time in
	// seconds.
	ItemTimings map[string]float64 `json:"avg_item_timings,omitempty"`
}

// Baseline is one stored baseline row.
type Baseline struct {
	Key        BaselineKey
	Metrics    BaselineMetrics
	SampleSize int
}

// MatchSummary is a lightweight record for the list command.
type MatchSummary struct {
	MatchID      int64
	StartTime    string
	DurationSecs int
	RadiantWin   bool
	AvgRating    int
	Patch        string
	Analyses     int // stored analysis rows for this match
}
