package engine

import (
	"math"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// SafeLimit computes the tension a line can carry this turn without wearing:
// the tuned base plus small bonuses from combat-scoped control and the
// control stat, clamped to the tuned range.
func SafeLimit(t content.Tuning, combatControl, controlStat int) int {
	limit := t.SafeLimitBase + 2*combatControl + controlStat/2
	return clamp(limit, t.SafeLimitMin, t.SafeLimitMax)
}

// Wear computes how much integrity is lost for tension in excess of the safe
// limit. Zero at or below the limit; otherwise ceil(excess/10) clamped to
// [1,8], scaled down by durability and the aggregated wear multiplier, then
// clamped back into [1,8].
func Wear(tension, safeLimit, durability int, wearMult float64) int {
	excess := tension - safeLimit
	if excess <= 0 {
		return 0
	}
	w := int(math.Ceil(float64(excess) / 10))
	w = clamp(w, 1, 8)

	durabilityMult := clampf(1-float64(durability)*0.03, 0.65, 1)
	scaled := int(math.Round(float64(w) * durabilityMult * wearMult))
	return clamp(scaled, 1, 8)
}

// clampTension keeps tension inside [0, MaxTension].
func clampTension(t content.Tuning, v int) int {
	return clamp(v, 0, t.MaxTension)
}

// applyWear runs the per-turn wear step against a combat snapshot: tension
// above the safe limit chips the line unless a one-turn negate flag is set,
// in which case the flag is spent and the line is untouched.
func applyWear(t content.Tuning, s *state.Snapshot, totals Totals, eff state.Stats) int {
	c := s.Combat
	if c.Flags.NegateWear {
		c.Flags.NegateWear = false
		return 0
	}
	limit := SafeLimit(t, c.Control, eff.Control)
	w := Wear(s.Player.Tension, limit, eff.Durability, totals.WearMult)
	if w > 0 {
		s.Player.Integrity = clamp(s.Player.Integrity-w, 0, state.MaxIntegrity(t, s.Player.Level, s.Player.Stats.Durability))
	}
	return w
}
