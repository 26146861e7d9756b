// Package herodata holds static hero reference tables: positional archetype
// sets for role inference, pairwise synergy and counter scores for draft
// analysis, and display names.
//
// Hero IDs follow the public OpenDota numbering
// (https://api.opendota.com/api/heroes).
package herodata

import (
	"fmt"
	"sort"
)

// Hero ID constants for readability in the tables below.
const (
	AntiMage          = 1
	Axe               = 2
	Bane              = 3
	Bloodseeker       = 4
	CrystalMaiden     = 5
	DrowRanger        = 6
	Earthshaker       = 7
	Juggernaut        = 8
	Mirana            = 9
	Morphling         = 10
	PhantomLancer     = 12
	Puck              = 13
	Pudge             = 14
	SandKing          = 16
	StormSpirit       = 17
	Sven              = 18
	Tiny              = 19
	VengefulSpirit    = 20
	Zeus              = 22
	Kunkka            = 23
	Lina              = 25
	Lion              = 26
	ShadowShaman      = 27
	Slardar           = 28
	Tidehunter        = 29
	WitchDoctor       = 30
	Lich              = 31
	Riki              = 32
	Enigma            = 33
	Tinker            = 34
	Sniper            = 35
	Necrophos         = 36
	Warlock           = 37
	Beastmaster       = 38
	FacelessVoid      = 41
	WraithKing        = 42
	DeathProphet      = 43
	PhantomAssassin   = 44
	TemplarAssassin   = 46
	Viper             = 47
	Luna              = 48
	Dazzle            = 50
	Clockwerk         = 51
	Leshrac           = 52
	Furion            = 53
	Lifestealer       = 54
	DarkSeer          = 55
	Clinkz            = 56
	Enchantress       = 58
	Huskar            = 59
	Broodmother       = 61
	BountyHunter      = 62
	Jakiro            = 64
	Chen              = 66
	Spectre           = 67
	AncientApparition = 68
	Doom              = 69
	Ursa              = 70
	SpiritBreaker     = 71
	Gyrocopter        = 72
	Invoker           = 74
	Silencer          = 75
	Lycan             = 77
	ShadowDemon       = 79
	ChaosKnight       = 81
	Meepo             = 82
	OgreMagi          = 84
	Rubick            = 86
	Disruptor         = 87
	NyxAssassin       = 88
	NagaSiren         = 89
	KeeperOfTheLight  = 90
	Io                = 91
	Slark             = 93
	Medusa            = 94
	TrollWarlord      = 95
	CentaurWarrunner  = 96
	Magnus            = 97
	Timbersaw         = 98
	Bristleback       = 99
	SkywrathMage      = 101
	LegionCommander   = 104
	EmberSpirit       = 106
	Terrorblade       = 109
	Phoenix           = 110
	Oracle            = 111
	WinterWyvern      = 112
	ArcWarden         = 113
	DarkWillow        = 119
	Grimstroke        = 121
	VoidSpirit        = 126
	Snapfire          = 128
	Mars              = 129
	PrimalBeast       = 137
)

// Archetype marks a hero's typical positional identity.
type Archetype int

const (
	ArchetypeFlex Archetype = iota
	ArchetypeHardCarry
	ArchetypeMid
	ArchetypeOfflane
	ArchetypeHardSupport
)

var hardCarries = map[int]struct{}{
	1: {}, 6: {}, 8: {}, 10: {}, 12: {}, 41: {}, 44: {}, 46: {}, 48: {},
	56: {}, 67: {}, 72: {}, 81: {}, 89: {}, 93: {}, 94: {}, 95: {},
	109: {}, 113: {},
}

var mids = map[int]struct{}{
	10: {}, 11: {}, 13: {}, 17: {}, 34: {}, 39: {}, 46: {}, 47: {},
	74: {}, 106: {}, 126: {},
}

var hardSupports = map[int]struct{}{
	5: {}, 26: {}, 27: {}, 30: {}, 31: {}, 37: {}, 50: {}, 64: {},
	75: {}, 84: {}, 86: {}, 87: {}, 90: {}, 101: {}, 111: {}, 112: {},
	119: {}, 121: {}, 128: {},
}

var offlaners = map[int]struct{}{
	2: {}, 7: {}, 16: {}, 28: {}, 29: {}, 38: {}, 51: {}, 55: {},
	69: {}, 71: {}, 96: {}, 97: {}, 99: {}, 104: {}, 108: {}, 129: {},
	137: {},
}

// ArchetypeOf returns the positional archetype for a hero. Heroes listed in
// several tables resolve in carry > mid > support > offlane order, matching
// the role classifier's stage order.
func ArchetypeOf(heroID int) Archetype {
	if _, ok := hardCarries[heroID]; ok {
		return ArchetypeHardCarry
	}
	if _, ok := mids[heroID]; ok {
		return ArchetypeMid
	}
	if _, ok := hardSupports[heroID]; ok {
		return ArchetypeHardSupport
	}
	if _, ok := offlaners[heroID]; ok {
		return ArchetypeOfflane
	}
	return ArchetypeFlex
}

func IsHardCarry(heroID int) bool {
	_, ok := hardCarries[heroID]
	return ok
}

func IsMid(heroID int) bool {
	_, ok := mids[heroID]
	return ok
}

func IsHardSupport(heroID int) bool {
	_, ok := hardSupports[heroID]
	return ok
}

func IsOfflaner(heroID int) bool {
	_, ok := offlaners[heroID]
	return ok
}

// PreferredRoles returns the role numbers a hero's archetype favors, best
// first, and the roles it should never be assigned.
func PreferredRoles(heroID int) (prefers, forbids []int) {
	switch ArchetypeOf(heroID) {
	case ArchetypeHardCarry:
		return []int{1, 2}, []int{4, 5}
	case ArchetypeMid:
		return []int{2, 1}, []int{5}
	case ArchetypeHardSupport:
		return []int{4, 5}, []int{1, 2}
	case ArchetypeOfflane:
		return []int{3, 4}, []int{1, 5}
	default:
		return nil, nil
	}
}

type pair struct{ a, b int }

// Synergy scores: 0.0 (none) to 1.0 (perfect combo). Order-independent.
var synergies = map[pair]float64{
	// Io combos, Tether enables aggressive plays
	{Io, Tiny}:             0.95,
	{Io, Gyrocopter}:       0.85,
	{Io, ChaosKnight}:      0.85,
	{Io, CentaurWarrunner}: 0.80,
	{Io, Sven}:             0.80,
	{Io, Ursa}:             0.80,
	{Io, WraithKing}:       0.75,

	// Magnus combos, Empower + Reverse Polarity
	{Magnus, Juggernaut}:      0.90,
	{Magnus, Sven}:            0.90,
	{Magnus, PhantomAssassin}: 0.85,
	{Magnus, ChaosKnight}:     0.90,
	{Magnus, TrollWarlord}:    0.80,
	{Magnus, Terrorblade}:     0.85,

	// Faceless Void combos, Chronosphere setups
	{FacelessVoid, Invoker}:      0.90,
	{FacelessVoid, Leshrac}:      0.85,
	{FacelessVoid, DeathProphet}: 0.85,
	{FacelessVoid, WitchDoctor}:  0.85,
	{FacelessVoid, SkywrathMage}: 0.90,
	{FacelessVoid, Jakiro}:       0.80,

	// Dark Seer combos, Vacuum + Wall
	{DarkSeer, Sven}:         0.85,
	{DarkSeer, Leshrac}:      0.80,
	{DarkSeer, FacelessVoid}: 0.85,
	{DarkSeer, Enigma}:       0.85,

	// Enigma combos, Black Hole
	{Enigma, Invoker}:     0.85,
	{Enigma, Leshrac}:     0.80,
	{Enigma, WitchDoctor}: 0.80,

	// Setup combos
	{ShadowDemon, Mirana}: 0.85,
	{Bane, Mirana}:        0.90,
	{ShadowDemon, Kunkka}: 0.85,

	// Oracle combos
	{Oracle, Huskar}:          0.90,
	{Oracle, PhantomAssassin}: 0.80,

	// Drow Ranger aura
	{DrowRanger, Luna}:           0.75,
	{DrowRanger, Medusa}:         0.75,
	{DrowRanger, VengefulSpirit}: 0.70,

	// Grimstroke combos
	{Grimstroke, Lion}: 0.85,
	{Grimstroke, Lina}: 0.85,
	{Grimstroke, Doom}: 0.85,

	// Chen push strats
	{Chen, Furion}: 0.75,
	{Chen, Lycan}:  0.75,

	// Lifestealer combos, Infest bombs
	{Lifestealer, SpiritBreaker}: 0.85,
	{Lifestealer, StormSpirit}:   0.80,
	{Lifestealer, Phoenix}:       0.80,

	// Bristleback + sustain
	{Bristleback, Io}:     0.80,
	{Bristleback, Dazzle}: 0.75,

	// Spectre combos
	{Spectre, Zeus}:              0.80,
	{Spectre, AncientApparition}: 0.75,

	// Tinker combos
	{Tinker, NagaSiren}:        0.75,
	{Tinker, KeeperOfTheLight}: 0.70,
}

// Counter scores: how effectively counter beats countered. Directional.
var counters = map[pair]float64{
	// Anti-Mage
	{AntiMage, FacelessVoid}:  0.75,
	{AntiMage, PhantomLancer}: 0.70,
	{AntiMage, Axe}:           0.70,
	{AntiMage, Bloodseeker}:   0.75,

	// Illusion heroes
	{PhantomLancer, Earthshaker}: 0.90,
	{PhantomLancer, Leshrac}:     0.85,
	{PhantomLancer, Sven}:        0.80,
	{PhantomLancer, EmberSpirit}: 0.80,
	{ChaosKnight, Earthshaker}:   0.85,
	{ChaosKnight, Leshrac}:       0.80,
	{Terrorblade, Earthshaker}:   0.80,
	{NagaSiren, Earthshaker}:     0.85,

	// Meepo
	{Meepo, Earthshaker}:  0.95,
	{Meepo, WinterWyvern}: 0.90,
	{Meepo, Sven}:         0.85,
	{Meepo, EmberSpirit}:  0.85,
	{Meepo, Leshrac}:      0.80,

	// Broodmother
	{Broodmother, Earthshaker}:     0.90,
	{Broodmother, Leshrac}:         0.85,
	{Broodmother, LegionCommander}: 0.80,
	{Broodmother, Axe}:             0.80,
	{Broodmother, Timbersaw}:       0.80,

	// Huskar
	{Huskar, AncientApparition}: 0.95,
	{Huskar, Axe}:               0.80,
	{Huskar, Necrophos}:         0.80,
	{Huskar, Viper}:             0.75,

	// Medusa
	{Medusa, AntiMage}:      0.85,
	{Medusa, PhantomLancer}: 0.80,
	{Medusa, Invoker}:       0.75,
	{Medusa, NyxAssassin}:   0.75,

	// Tinker
	{Tinker, SpiritBreaker}: 0.85,
	{Tinker, Clockwerk}:     0.85,
	{Tinker, NyxAssassin}:   0.85,
	{Tinker, Zeus}:          0.75,

	// Storm Spirit
	{StormSpirit, AntiMage}:    0.80,
	{StormSpirit, Doom}:        0.85,
	{StormSpirit, Silencer}:    0.85,
	{StormSpirit, Bloodseeker}: 0.80,

	// Slark
	{Slark, Bloodseeker}:       0.80,
	{Slark, AncientApparition}: 0.80,
	{Slark, Doom}:              0.80,
	{Slark, Axe}:               0.75,

	// Invisible heroes
	{Riki, BountyHunter}:   0.75,
	{Riki, Slardar}:        0.80,
	{Riki, Zeus}:           0.75,
	{Clinkz, BountyHunter}: 0.75,
	{Clinkz, Slardar}:      0.75,

	// Wraith King
	{WraithKing, AntiMage}:      0.80,
	{WraithKing, PhantomLancer}: 0.80,
	{WraithKing, Invoker}:       0.75,

	// Lycan
	{Lycan, Beastmaster}:  0.75,
	{Lycan, FacelessVoid}: 0.80,
	{Lycan, Bloodseeker}:  0.75,

	// Invoker
	{Invoker, NyxAssassin}:   0.80,
	{Invoker, AntiMage}:      0.75,
	{Invoker, SpiritBreaker}: 0.75,

	// Sniper
	{Sniper, SpiritBreaker}:   0.85,
	{Sniper, Clockwerk}:       0.85,
	{Sniper, StormSpirit}:     0.80,
	{Sniper, PhantomAssassin}: 0.80,

	// Summon heroes
	{Chen, Axe}:         0.75,
	{Chen, SandKing}:    0.75,
	{Enchantress, Doom}: 0.75,

	// Ember Spirit
	{EmberSpirit, Doom}:     0.85,
	{EmberSpirit, Silencer}: 0.80,
	{EmberSpirit, Clinkz}:   0.70,
}

// SynergyScore returns the synergy score for a hero pair, order-independent.
func SynergyScore(hero1, hero2 int) float64 {
	if s, ok := synergies[pair{hero1, hero2}]; ok {
		return s
	}
	return synergies[pair{hero2, hero1}]
}

// CounterScore returns how effectively counterID counters heroID.
func CounterScore(heroID, counterID int) float64 {
	return counters[pair{heroID, counterID}]
}

// Matchup is one scored hero relationship. For synergies HeroA and HeroB are
// allies; for counters HeroA is countered by HeroB.
type Matchup struct {
	HeroA, HeroB int
	Score        float64
}

// TeamSynergies returns every synergistic pair within one team's heroes,
// strongest first.
func TeamSynergies(heroIDs []int) []Matchup {
	var out []Matchup
	for i, h1 := range heroIDs {
		for _, h2 := range heroIDs[i+1:] {
			if s := SynergyScore(h1, h2); s > 0 {
				out = append(out, Matchup{HeroA: h1, HeroB: h2, Score: s})
			}
		}
	}
	sortMatchups(out)
	return out
}

// TeamCounters returns the counter relationships between two drafts:
// ours = enemy heroes countered by our heroes, theirs = our heroes countered
// by enemy heroes. Both strongest first.
func TeamCounters(team, enemy []int) (ours, theirs []Matchup) {
	for _, e := range enemy {
		for _, a := range team {
			if s := CounterScore(e, a); s > 0 {
				ours = append(ours, Matchup{HeroA: e, HeroB: a, Score: s})
			}
		}
	}
	for _, a := range team {
		for _, e := range enemy {
			if s := CounterScore(a, e); s > 0 {
				theirs = append(theirs, Matchup{HeroA: a, HeroB: e, Score: s})
			}
		}
	}
	sortMatchups(ours)
	sortMatchups(theirs)
	return ours, theirs
}

func sortMatchups(ms []Matchup) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Score > ms[j].Score
	})
}

var heroNames = map[int]string{
	1: "Anti-Mage", 2: "Axe", 3: "Bane", 4: "Bloodseeker",
	5: "Crystal Maiden", 6: "Drow Ranger", 7: "Earthshaker",
	8: "Juggernaut", 9: "Mirana", 10: "Morphling", 11: "Shadow Fiend",
	12: "Phantom Lancer", 13: "Puck", 14: "Pudge", 15: "Razor",
	16: "Sand King", 17: "Storm Spirit", 18: "Sven", 19: "Tiny",
	20: "Vengeful Spirit", 21: "Windranger", 22: "Zeus", 23: "Kunkka",
	25: "Lina", 26: "Lion", 27: "Shadow Shaman", 28: "Slardar",
	29: "Tidehunter", 30: "Witch Doctor", 31: "Lich", 32: "Riki",
	33: "Enigma", 34: "Tinker", 35: "Sniper", 36: "Necrophos",
	37: "Warlock", 38: "Beastmaster", 39: "Queen of Pain",
	41: "Faceless Void", 42: "Wraith King", 43: "Death Prophet",
	44: "Phantom Assassin", 45: "Pugna", 46: "Templar Assassin",
	47: "Viper", 48: "Luna", 49: "Dragon Knight", 50: "Dazzle",
	51: "Clockwerk", 52: "Leshrac", 53: "Nature's Prophet", 54: "Lifestealer",
	55: "Dark Seer", 56: "Clinkz", 57: "Omniknight", 58: "Enchantress",
	59: "Huskar", 60: "Night Stalker", 61: "Broodmother", 62: "Bounty Hunter",
	63: "Weaver", 64: "Jakiro", 65: "Batrider", 66: "Chen",
	67: "Spectre", 68: "Ancient Apparition", 69: "Doom", 70: "Ursa",
	71: "Spirit Breaker", 72: "Gyrocopter", 73: "Alchemist", 74: "Invoker",
	75: "Silencer", 76: "Outworld Destroyer", 77: "Lycan", 78: "Brewmaster",
	79: "Shadow Demon", 80: "Lone Druid", 81: "Chaos Knight", 82: "Meepo",
	83: "Treant Protector", 84: "Ogre Magi", 85: "Undying", 86: "Rubick",
	87: "Disruptor", 88: "Nyx Assassin", 89: "Naga Siren", 90: "Keeper of the Light",
	91: "Io", 92: "Visage", 93: "Slark", 94: "Medusa",
	95: "Troll Warlord", 96: "Centaur Warrunner", 97: "Magnus", 98: "Timbersaw",
	99: "Bristleback", 100: "Tusk", 101: "Skywrath Mage", 102: "Abaddon",
	103: "Elder Titan", 104: "Legion Commander", 105: "Techies", 106: "Ember Spirit",
	107: "Earth Spirit", 108: "Underlord", 109: "Terrorblade", 110: "Phoenix",
	111: "Oracle", 112: "Winter Wyvern", 113: "Arc Warden", 114: "Monkey King",
	119: "Dark Willow", 120: "Pangolier", 121: "Grimstroke", 123: "Hoodwink",
	126: "Void Spirit", 128: "Snapfire", 129: "Mars", 135: "Dawnbreaker",
	136: "Marci", 137: "Primal Beast", 138: "Muerta",
}

// HeroName returns the display name for a hero ID, or a numeric placeholder
// for unknown IDs.
func HeroName(heroID int) string {
	if n, ok := heroNames[heroID]; ok {
		return n
	}
	return fmt.Sprintf("Hero %d", heroID)
}
