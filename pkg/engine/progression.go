package engine

import (
	"fmt"
	"time"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// GrantXP adds experience and resolves any level-ups. Each level grants one
// stat point and one skill point, recomputes max line integrity and fully
// heals the line.
func GrantXP(b *content.Bundle, s *state.Snapshot, amount int) *state.Snapshot {
	if amount <= 0 {
		return reject(s, "xp grant must be positive")
	}
	out := s.Clone()
	levels := grantXP(b, out, amount)
	out.LastEvent = &state.Event{
		Kind:   state.EventLevelUp,
		XP:     amount,
		Levels: levels,
	}
	out.UpdatedAt = time.Now()
	return out
}

// grantXP is the in-place level loop shared with win resolution. Returns
// the number of levels gained.
func grantXP(b *content.Bundle, out *state.Snapshot, amount int) int {
	t := b.Balance()
	curve := b.Curve()
	p := &out.Player

	p.XP += amount
	levels := 0
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		levels++
		p.XPToNext = state.XPToNext(curve, p.Level)
		p.StatPoints++
		p.SkillPoints++
	}
	if levels > 0 {
		// Level-up relief: the new ceiling comes with a fresh line.
		p.Integrity = state.MaxIntegrity(t, p.Level, p.Stats.Durability)
	}
	return levels
}

// SpendStatPoint raises one of the five stats by one, immediately
// recomputing max line integrity so durability investment is visible.
func SpendStatPoint(b *content.Bundle, s *state.Snapshot, stat string) *state.Snapshot {
	if s.Player.StatPoints <= 0 {
		return reject(s, "no unspent stat points")
	}
	out := s.Clone()
	p := &out.Player
	switch stat {
	case "control":
		p.Stats.Control++
	case "power":
		p.Stats.Power++
	case "durability":
		p.Stats.Durability++
	case "precision":
		p.Stats.Precision++
	case "tactics":
		p.Stats.Tactics++
	default:
		return reject(s, fmt.Sprintf("unknown stat %q", stat))
	}
	p.Stats = clampAll(p.Stats)
	p.StatPoints--

	t := b.Balance()
	maxInteg := state.MaxIntegrity(t, p.Level, p.Stats.Durability)
	p.Integrity = clamp(p.Integrity, 0, maxInteg)

	out.LastEvent = &state.Event{Kind: state.EventStatSpent, Message: stat}
	out.UpdatedAt = time.Now()
	return out
}

// UnlockSkill raises a skill's rank by one, gated on level, available skill
// points, rank cap and prerequisites. The known-action set is recomputed
// from scratch, never patched.
func UnlockSkill(b *content.Bundle, s *state.Snapshot, skillID string) *state.Snapshot {
	sk, ok := b.SkillByID(skillID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown skill %q", skillID))
	}
	if s.Player.SkillPoints <= 0 {
		return reject(s, "no unspent skill points")
	}
	if s.Player.Level < sk.MinLevel {
		return reject(s, fmt.Sprintf("skill %q requires level %d", skillID, sk.MinLevel))
	}
	rank := s.Player.Skills[skillID]
	if sk.MaxRank > 0 && rank >= sk.MaxRank {
		return reject(s, fmt.Sprintf("skill %q is at max rank", skillID))
	}
	for _, pre := range sk.Prereqs {
		if s.Player.Skills[pre] <= 0 {
			return reject(s, fmt.Sprintf("skill %q requires %q", skillID, pre))
		}
	}

	out := s.Clone()
	if out.Player.Skills == nil {
		out.Player.Skills = make(map[string]int)
	}
	out.Player.Skills[skillID] = rank + 1
	out.Player.SkillPoints--
	out.Player.KnownActions = state.KnownActions(b, out.Player.Skills)

	out.LastEvent = &state.Event{Kind: state.EventSkill, SkillID: skillID}
	out.UpdatedAt = time.Now()
	return out
}

// Respec resets stats and skills entirely: both point pools are recomputed
// from the current level, integrity is restored to the newly derived max,
// and any live combat's ephemeral modifiers are cleared. Running it twice
// lands in the same place as running it once.
func Respec(b *content.Bundle, s *state.Snapshot) *state.Snapshot {
	t := b.Balance()
	out := s.Clone()
	p := &out.Player

	p.Stats = state.Stats{}
	p.Skills = make(map[string]int)
	p.StatPoints = p.Level - 1
	p.SkillPoints = p.Level - 1
	p.KnownActions = state.KnownActions(b, p.Skills)
	p.Integrity = state.MaxIntegrity(t, p.Level, 0)

	if out.Combat != nil {
		out.Combat.Brace = 0
		out.Combat.Control = 0
		out.Combat.Flags = state.CombatFlags{}
	}

	out.LastEvent = &state.Event{Kind: state.EventRespec}
	out.UpdatedAt = time.Now()
	return out
}

func clampAll(st state.Stats) state.Stats {
	st.Control = clamp(st.Control, 0, 99)
	st.Power = clamp(st.Power, 0, 99)
	st.Durability = clamp(st.Durability, 0, 99)
	st.Precision = clamp(st.Precision, 0, 99)
	st.Tactics = clamp(st.Tactics, 0, 99)
	return st
}
