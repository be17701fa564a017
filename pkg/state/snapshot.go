package state

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
)

// FishPhase is derived purely from the fish's remaining stamina ratio.
type FishPhase string

const (
	PhaseAggressive FishPhase = "AGGRESSIVE"
	PhaseDefensive  FishPhase = "DEFENSIVE"
	PhaseExhausted  FishPhase = "EXHAUSTED"
)

// TurnOwner marks whose move it is within an encounter.
type TurnOwner string

const (
	TurnPlayer TurnOwner = "PLAYER"
	TurnFish   TurnOwner = "FISH"
)

// Outcome is the encounter's terminal flag. DEFEAT_PROMPT blocks all action
// application until the caller retries or flees.
type Outcome string

const (
	OutcomeNone         Outcome = "NONE"
	OutcomeDefeatPrompt Outcome = "DEFEAT_PROMPT"
)

// ContractPhase sequences a contract run: fight, camp, fight, ..., summary.
type ContractPhase string

const (
	ContractFight   ContractPhase = "FIGHT"
	ContractCamp    ContractPhase = "CAMP"
	ContractSummary ContractPhase = "SUMMARY"
)

// TimingGrade classifies a player-timed input.
type TimingGrade string

const (
	GradeMiss    TimingGrade = "MISS"
	GradeGood    TimingGrade = "GOOD"
	GradePerfect TimingGrade = "PERFECT"
)

// Stats are the five player stats. Each is kept in [0, 99].
type Stats struct {
	Control    int `json:"control"`
	Power      int `json:"power"`
	Durability int `json:"durability"`
	Precision  int `json:"precision"`
	Tactics    int `json:"tactics"`
}

// Player is the persistent character sheet portion of a snapshot.
type Player struct {
	Level        int            `json:"level"`
	XP           int            `json:"xp"`
	XPToNext     int            `json:"xp_to_next"`
	Stats        Stats          `json:"stats"`
	StatPoints   int            `json:"stat_points,omitempty"`
	Skills       map[string]int `json:"skills,omitempty"` // skill id -> rank
	SkillPoints  int            `json:"skill_points,omitempty"`
	Tension      int            `json:"tension"`
	Integrity    int            `json:"integrity"`
	KnownActions []string       `json:"known_actions"`
	Inventory    map[string]int `json:"inventory,omitempty"` // item id -> count
}

// SpawnRecord remembers where the current fish came from, for retry.
type SpawnRecord struct {
	RegionID string `json:"region_id"`
	FishID   string `json:"fish_id"`
}

// CombatFlags is the small bag of one-turn skill flags.
type CombatFlags struct {
	NegateWear bool `json:"negate_wear,omitempty"`
}

// Combat is the active encounter sub-record. It exists only while a fight
// is in progress and is cleared on resolution.
type Combat struct {
	FishID     string      `json:"fish_id"`
	Stamina    int         `json:"stamina"`
	MaxStamina int         `json:"max_stamina"`
	Phase      FishPhase   `json:"phase"`
	Turn       TurnOwner   `json:"turn"`
	TurnCount  int         `json:"turn_count"`
	Brace      int         `json:"brace,omitempty"`   // blunts the next pressure, single use
	Control    int         `json:"control,omitempty"` // dampens future tension gain
	Flags      CombatFlags `json:"flags,omitempty"`
	LastSpawn  SpawnRecord `json:"last_spawn"`
	Outcome    Outcome     `json:"outcome"`

	// ThresholdTurn records the turn on which a reactive threshold skill
	// last fired, so it fires at most once per turn.
	ThresholdTurn int `json:"threshold_turn,omitempty"`
}

// Encounter is one pre-rolled contract fight.
type Encounter struct {
	RegionID string `json:"region_id"`
	FishID   string `json:"fish_id"`
}

// ContractRun is the active multi-encounter run sub-record. The encounter
// sequence and all reward rolls are resolved at contract start and stored
// verbatim, so a persisted run replays identically after reload.
type ContractRun struct {
	ContractID   string        `json:"contract_id"`
	RegionID     string        `json:"region_id"`
	Encounters   []Encounter   `json:"encounters"`
	FightRewards []int         `json:"fight_rewards"`
	FinalReward  int           `json:"final_reward"`
	Index        int           `json:"index"`
	Phase        ContractPhase `json:"phase"`
	PerfectCount int           `json:"perfect_count,omitempty"`
	FightsWon    int           `json:"fights_won,omitempty"`
	Earned       int           `json:"earned,omitempty"`
	LastReward   int           `json:"last_reward,omitempty"`
}

// Snapshot is the unit of persistence. It is only ever replaced wholesale by
// the pure transition functions in pkg/engine; callers never mutate it.
type Snapshot struct {
	ID            uuid.UUID    `json:"id"`
	BundleID      string       `json:"bundle_id,omitempty"`
	Player        Player       `json:"player"`
	Currency      int          `json:"currency,omitempty"`
	TemporaryMods []string     `json:"temporary_mods,omitempty"`
	Contract      *ContractRun `json:"contract,omitempty"`
	Combat        *Combat      `json:"combat,omitempty"`
	LastEvent     *Event       `json:"last_event,omitempty"`
	CreatedAt     time.Time    `json:"created_at,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at,omitempty"`
}

// NewSnapshot creates a fresh level-1 snapshot for the given bundle.
func NewSnapshot(b *content.Bundle) *Snapshot {
	t := b.Balance()
	curve := b.Curve()
	s := &Snapshot{
		ID:       uuid.New(),
		BundleID: b.ID,
		Player: Player{
			Level:        1,
			XPToNext:     xpToNext(curve, 1),
			Skills:       make(map[string]int),
			Inventory:    make(map[string]int),
			KnownActions: slices.Clone(b.BaseActions),
		},
		CreatedAt: time.Now(),
	}
	s.Player.Integrity = MaxIntegrity(t, 1, 0)
	return s
}

// xpToNext evaluates the curve at the given level: max(10, floor(base*growth^(level-1))).
func xpToNext(c content.XPCurve, level int) int {
	v := float64(c.Base)
	for i := 1; i < level; i++ {
		v *= c.Growth
	}
	n := int(v)
	if n < 10 {
		n = 10
	}
	return n
}

// XPToNext exposes the curve evaluation for the engine and migration.
func XPToNext(c content.XPCurve, level int) int {
	return xpToNext(c, level)
}

// MaxIntegrity derives the line integrity ceiling from level and durability.
// It is never stored as free state.
func MaxIntegrity(t content.Tuning, level, durability int) int {
	v := t.IntegrityBase + t.IntegrityPerLevel*(level-1) + t.IntegrityPerDurability*durability
	if v < t.IntegrityMin {
		v = t.IntegrityMin
	}
	if v > t.IntegrityMax {
		v = t.IntegrityMax
	}
	return v
}

// PhaseFor derives the fish phase from a stamina ratio.
func PhaseFor(t content.Tuning, stamina, maxStamina int) FishPhase {
	if maxStamina <= 0 {
		return PhaseExhausted
	}
	ratio := float64(stamina) / float64(maxStamina)
	switch {
	case ratio > t.AggressiveRatio:
		return PhaseAggressive
	case ratio > t.ExhaustedRatio:
		return PhaseDefensive
	default:
		return PhaseExhausted
	}
}

// Clone returns a deep copy. Transition functions clone the input and build
// the result on the copy, so the caller's snapshot is never touched.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Player.Skills = maps.Clone(s.Player.Skills)
	out.Player.Inventory = maps.Clone(s.Player.Inventory)
	out.Player.KnownActions = slices.Clone(s.Player.KnownActions)
	out.TemporaryMods = slices.Clone(s.TemporaryMods)
	if s.Combat != nil {
		c := *s.Combat
		out.Combat = &c
	}
	if s.Contract != nil {
		cr := *s.Contract
		cr.Encounters = slices.Clone(s.Contract.Encounters)
		cr.FightRewards = slices.Clone(s.Contract.FightRewards)
		out.Contract = &cr
	}
	if s.LastEvent != nil {
		ev := *s.LastEvent
		out.LastEvent = &ev
	}
	return &out
}
