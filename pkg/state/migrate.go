package state

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
)

// Migration normalizes older or partial snapshots into the current shape.
// It is total: every field has a deterministic fallback, and a snapshot too
// malformed to read is treated as "start over" rather than an error.

// legacyProbe captures historical field names that no longer exist on the
// current shape. A flat focus resource remaps onto tension.
type legacyProbe struct {
	Focus  *float64 `json:"focus"`
	Player struct {
		Tension *int     `json:"tension"`
		Focus   *float64 `json:"focus"`
	} `json:"player"`
}

// Migrate decodes raw persisted bytes and normalizes them. Undecodable
// input yields a fresh snapshot.
func Migrate(b *content.Bundle, raw []byte) *Snapshot {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return NewSnapshot(b)
	}

	var probe legacyProbe
	_ = json.Unmarshal(raw, &probe)

	out := s.Clone()
	normalize(b, out, &probe)
	return out
}

// Normalize brings an already-decoded snapshot into the current shape.
// The input is not mutated.
func Normalize(b *content.Bundle, s *Snapshot) *Snapshot {
	if s == nil {
		return NewSnapshot(b)
	}
	out := s.Clone()
	normalize(b, out, nil)
	return out
}

func normalize(b *content.Bundle, s *Snapshot, probe *legacyProbe) {
	t := b.Balance()
	curve := b.Curve()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.BundleID == "" {
		s.BundleID = b.ID
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}

	p := &s.Player
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.XPToNext <= 0 {
		p.XPToNext = xpToNext(curve, p.Level)
	}
	p.Stats = clampStats(p.Stats)
	if p.StatPoints < 0 {
		p.StatPoints = 0
	}
	if p.SkillPoints < 0 {
		p.SkillPoints = 0
	}

	// Unknown skills are dropped, ranks clamped to the content maximum.
	skills := make(map[string]int)
	for id, rank := range p.Skills {
		sk, ok := b.SkillByID(id)
		if !ok || rank <= 0 {
			continue
		}
		if sk.MaxRank > 0 && rank > sk.MaxRank {
			rank = sk.MaxRank
		}
		skills[id] = rank
	}
	p.Skills = skills

	// Known actions are recomputed from base loadout plus unlocked ACTIVE
	// skill grants, never carried forward as-is.
	p.KnownActions = KnownActions(b, skills)

	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	for id, n := range p.Inventory {
		if _, ok := b.ItemByID(id); !ok || n <= 0 {
			delete(p.Inventory, id)
		}
	}

	// Legacy focus remaps onto tension with a fixed linear scale; a focus
	// of 100 reads as a fully relaxed line.
	if probe != nil && probe.Player.Tension == nil {
		focus := probe.Focus
		if probe.Player.Focus != nil {
			focus = probe.Player.Focus
		}
		if focus != nil {
			p.Tension = int(math.Round((100 - *focus) * 0.6))
		}
	}
	p.Tension = clampInt(p.Tension, 0, t.MaxTension)

	maxInteg := MaxIntegrity(t, p.Level, p.Stats.Durability)
	inDefeat := s.Combat != nil && s.Combat.Outcome == OutcomeDefeatPrompt
	if p.Integrity <= 0 && !inDefeat {
		p.Integrity = maxInteg
	}
	p.Integrity = clampInt(p.Integrity, 0, maxInteg)

	if s.Currency < 0 {
		s.Currency = 0
	}
	s.TemporaryMods = dedupeKnownMods(b, s.TemporaryMods)

	normalizeCombat(b, t, s)
	normalizeContract(b, s)
}

func normalizeCombat(b *content.Bundle, t content.Tuning, s *Snapshot) {
	c := s.Combat
	if c == nil {
		return
	}
	fish, ok := b.FishByID(c.FishID)
	if !ok {
		s.Combat = nil
		return
	}
	if c.MaxStamina <= 0 {
		c.MaxStamina = fish.MaxStamina()
	}
	c.Stamina = clampInt(c.Stamina, 0, c.MaxStamina)
	c.Phase = PhaseFor(t, c.Stamina, c.MaxStamina)
	if c.Turn != TurnFish {
		c.Turn = TurnPlayer
	}
	if c.TurnCount < 1 {
		c.TurnCount = 1
	}
	if c.Outcome != OutcomeDefeatPrompt {
		c.Outcome = OutcomeNone
	}
	if c.Brace < 0 {
		c.Brace = 0
	}
	if c.Control < 0 {
		c.Control = 0
	}
	if c.LastSpawn.FishID == "" {
		c.LastSpawn = SpawnRecord{FishID: c.FishID}
	}
}

func normalizeContract(b *content.Bundle, s *Snapshot) {
	cr := s.Contract
	if cr == nil {
		return
	}
	def, ok := b.ContractByID(cr.ContractID)
	if !ok || len(cr.Encounters) == 0 {
		s.Contract = nil
		return
	}
	// A run whose pre-rolled sequence names a fish the bundle no longer
	// defines cannot be fought or advanced, so the whole contract clears.
	for i := range cr.Encounters {
		if _, ok := b.FishByID(cr.Encounters[i].FishID); !ok {
			s.Contract = nil
			return
		}
	}
	// The pre-rolled encounter list survives verbatim; only the bookkeeping
	// around it is repaired. Re-rolling here would break replay stability.
	cr.Index = clampInt(cr.Index, 0, len(cr.Encounters)-1)
	switch cr.Phase {
	case ContractFight, ContractCamp, ContractSummary:
	default:
		cr.Phase = ContractFight
	}
	for len(cr.FightRewards) < len(cr.Encounters) {
		cr.FightRewards = append(cr.FightRewards, def.FightReward.Min)
	}
	if cr.FinalReward < def.FinalReward.Min {
		cr.FinalReward = def.FinalReward.Min
	}
	if cr.FightsWon < 0 {
		cr.FightsWon = 0
	}
	if cr.PerfectCount < 0 {
		cr.PerfectCount = 0
	}
	if cr.Earned < 0 {
		cr.Earned = 0
	}
	if cr.RegionID == "" {
		cr.RegionID = def.RegionID
	}
}

// KnownActions computes the full known-action set: the bundle's base loadout
// plus every action granted by an unlocked ACTIVE skill.
func KnownActions(b *content.Bundle, skills map[string]int) []string {
	seen := make(map[string]bool, len(b.BaseActions))
	out := make([]string, 0, len(b.BaseActions))
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range b.BaseActions {
		add(id)
	}
	for _, sk := range b.Skills {
		if sk.Type != content.SkillActive || skills[sk.ID] <= 0 {
			continue
		}
		for _, id := range sk.GrantsActions {
			add(id)
		}
	}
	return out
}

func dedupeKnownMods(b *content.Bundle, mods []string) []string {
	if len(mods) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(mods))
	out := make([]string, 0, len(mods))
	for _, id := range mods {
		if seen[id] {
			continue
		}
		if _, ok := b.RigModByID(id); !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampStats(st Stats) Stats {
	st.Control = clampInt(st.Control, 0, 99)
	st.Power = clampInt(st.Power, 0, 99)
	st.Durability = clampInt(st.Durability, 0, 99)
	st.Precision = clampInt(st.Precision, 0, 99)
	st.Tactics = clampInt(st.Tactics, 0, 99)
	return st
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
