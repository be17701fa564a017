package engine

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// The combat state machine. Every entry point clones the input snapshot,
// applies one discrete transition and returns the copy; rejected inputs come
// back unchanged except for a log event.

// phaseTuning returns the fish-phase multipliers: incoming pressure scale
// and reel effectiveness. The aggressive pressure spike eases off with
// player level, up to 0.12.
func phaseTuning(phase state.FishPhase, level int) (pressureMult, reelEff float64) {
	switch phase {
	case state.PhaseAggressive:
		ease := math.Min(0.12, float64(level-1)*0.012)
		return 1.2 - ease, 0.9
	case state.PhaseDefensive:
		return 0.95, 0.8
	default: // exhausted
		return 0.7, 1.25
	}
}

// SpawnFight starts a free encounter in a region: the fish is weighted-
// sampled from the region pool. Contract fights are spawned from camp
// instead, off the pre-rolled sequence.
func SpawnFight(b *content.Bundle, s *state.Snapshot, regionID string, rng *RNG) *state.Snapshot {
	if s.Combat != nil {
		return reject(s, "a fight is already in progress")
	}
	if s.Contract != nil {
		return reject(s, "cannot free-fish during a contract")
	}
	region, ok := b.RegionByID(regionID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown region %q", regionID))
	}
	if s.Player.Level < region.MinLevel {
		return reject(s, fmt.Sprintf("region %q requires level %d", regionID, region.MinLevel))
	}
	if len(region.Pool) == 0 {
		return reject(s, fmt.Sprintf("region %q has an empty pool", regionID))
	}

	weights := make([]int, len(region.Pool))
	for i, sw := range region.Pool {
		weights[i] = sw.Weight
	}
	fishID := region.Pool[rng.WeightedIndex(weights)].FishID

	return spawn(b, s, regionID, fishID)
}

// spawn materializes the encounter sub-record for a known fish.
func spawn(b *content.Bundle, s *state.Snapshot, regionID, fishID string) *state.Snapshot {
	fish, ok := b.FishByID(fishID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown fish %q", fishID))
	}
	t := b.Balance()

	out := s.Clone()
	maxStamina := fish.MaxStamina()
	out.Combat = &state.Combat{
		FishID:     fish.ID,
		Stamina:    maxStamina,
		MaxStamina: maxStamina,
		Phase:      state.PhaseFor(t, maxStamina, maxStamina),
		Turn:       state.TurnPlayer,
		TurnCount:  1,
		LastSpawn:  state.SpawnRecord{RegionID: regionID, FishID: fish.ID},
		Outcome:    state.OutcomeNone,
	}
	out.LastEvent = &state.Event{
		Kind:     state.EventSpawn,
		FishID:   fish.ID,
		RegionID: regionID,
		Phase:    out.Combat.Phase,
	}
	out.UpdatedAt = time.Now()
	return out
}

// ApplyAction resolves one player action against the active fish, then the
// fish's automatic response. A finishing blow resolves the win immediately;
// the fish takes no turn in that call.
func ApplyAction(b *content.Bundle, s *state.Snapshot, actionID string, grade state.TimingGrade) *state.Snapshot {
	if s.Combat == nil {
		return reject(s, "no active fight")
	}
	if s.Combat.Outcome == state.OutcomeDefeatPrompt {
		return reject(s, "line snapped: retry or flee first")
	}
	if s.Combat.Turn != state.TurnPlayer {
		return reject(s, "not the player's turn")
	}
	if !slices.Contains(s.Player.KnownActions, actionID) {
		return reject(s, fmt.Sprintf("action %q is not known", actionID))
	}
	action, ok := b.ActionByID(actionID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown action %q", actionID))
	}
	fish, ok := b.FishByID(s.Combat.FishID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown fish %q", s.Combat.FishID))
	}

	t := b.Balance()
	out := s.Clone()
	c := out.Combat
	eff := EffectiveStats(b, out)
	totals := CollectEffects(b, out)
	intent := action.Normalize()

	_, reelEff := phaseTuning(c.Phase, out.Player.Level)
	if grade == "" {
		grade = state.GradeGood
	}
	staminaMult, tensionBonus := timingTable(grade, eff)

	ev := state.Event{
		Kind:     state.EventAction,
		ActionID: actionID,
		Grade:    grade,
	}

	tensionBefore := out.Player.Tension
	switch intent.Kind {
	case content.ActionReel, content.ActionTechnique:
		rate := t.ReelPowerRate
		if intent.Kind == content.ActionTechnique {
			rate = t.TechniquePowerRate
		}
		take := int(math.Round(float64(intent.StaminaTake) * reelEff * staminaMult * (1 + float64(eff.Power)*rate)))
		c.Stamina = clamp(c.Stamina-take, 0, c.MaxStamina)
		ev.StaminaDelta = -take

		gain := intent.Tension + tensionBonus
		// Powering through an already-strained line costs extra.
		if tensionBefore > SafeLimit(t, c.Control, eff.Control) {
			gain += 2 + eff.Power/5
		}
		out.Player.Tension = clampTension(t, out.Player.Tension+gain)

	case content.ActionBrace:
		relief := intent.Relief + totals.ReliefBonus - tensionBonus
		out.Player.Tension = clampTension(t, out.Player.Tension-relief)
		c.Brace += intent.Brace + totals.BraceBonus
		c.Control += totals.ControlOnBrace

	case content.ActionAdjust:
		relief := intent.Relief + totals.ReliefBonus - tensionBonus
		out.Player.Tension = clampTension(t, out.Player.Tension-relief)
		c.Control += intent.ControlGain
	}

	if intent.Restore > 0 {
		maxInteg := state.MaxIntegrity(t, out.Player.Level, out.Player.Stats.Durability)
		out.Player.Integrity = clamp(out.Player.Integrity+intent.Restore, 0, maxInteg)
	}

	if grade == state.GradePerfect {
		if totals.NegateWearOnPerfect {
			c.Flags.NegateWear = true
		}
		if out.Contract != nil {
			out.Contract.PerfectCount++
		}
	}
	ev.TensionDelta = out.Player.Tension - tensionBefore

	newPhase := state.PhaseFor(t, c.Stamina, c.MaxStamina)
	if newPhase != c.Phase {
		c.Phase = newPhase
		ev.Kind = state.EventPhaseChange
		ev.Phase = newPhase
	}

	if c.Stamina <= 0 {
		resolveWin(b, out, fish, &ev)
		out.LastEvent = &ev
		out.UpdatedAt = time.Now()
		return out
	}

	fishTurn(b, t, out, fish, totals, eff, &ev)
	out.LastEvent = &ev
	out.UpdatedAt = time.Now()
	return out
}

// fishTurn resolves the fish's automatic response: optional exhausted-phase
// stamina bleed, pressure into tension, reactive threshold control, brace
// reset, turn handover and wear.
func fishTurn(b *content.Bundle, t content.Tuning, out *state.Snapshot, fish *content.Fish, totals Totals, eff state.Stats, ev *state.Event) {
	c := out.Combat
	c.Turn = state.TurnFish

	if c.Phase == state.PhaseExhausted && totals.StaminaBleed > 0 {
		c.Stamina = clamp(c.Stamina-totals.StaminaBleed, 0, c.MaxStamina)
		if c.Stamina <= 0 {
			resolveWin(b, out, fish, ev)
			return
		}
	}

	pressureMult, _ := phaseTuning(c.Phase, out.Player.Level)
	press := float64(fish.BasePressure()) * pressureMult
	press = math.Max(0, press-float64(c.Brace))
	press *= clampf(1-0.012*float64(eff.Control), 0.72, 1)
	press *= clampf(1-0.03*float64(c.Control), 0.70, 1)
	press *= totals.PressureMult * totals.TensionMult
	gain := int(math.Round(press))

	out.Player.Tension = clampTension(t, out.Player.Tension+gain)
	ev.Pressure = gain

	if totals.ControlThreshold > 0 &&
		out.Player.Tension >= totals.ControlThreshold &&
		c.ThresholdTurn != c.TurnCount {
		c.Control += totals.ControlOnThreshold
		c.ThresholdTurn = c.TurnCount
	}

	// The brace is a single-use shield.
	c.Brace = 0
	c.TurnCount++
	c.Turn = state.TurnPlayer

	ev.Wear = applyWear(t, out, totals, eff)

	if out.Player.Integrity <= 0 {
		c.Outcome = state.OutcomeDefeatPrompt
		ev.Kind = state.EventDefeat
		ev.FishID = c.FishID
	}
}

// resolveWin clears combat, grants the fish's xp, decays tension to roughly
// a third of its value, and advances any active contract.
func resolveWin(b *content.Bundle, out *state.Snapshot, fish *content.Fish, ev *state.Event) {
	t := b.Balance()

	out.Combat = nil
	out.Player.Tension = clampTension(t, int(math.Round(float64(out.Player.Tension)/3)))

	levels := grantXP(b, out, fish.XP)

	ev.Kind = state.EventWin
	ev.FishID = fish.ID
	ev.XP = fish.XP
	ev.Levels = levels

	cr := out.Contract
	if cr == nil || cr.Phase != state.ContractFight {
		return
	}
	reward := 0
	if cr.Index < len(cr.FightRewards) {
		reward = cr.FightRewards[cr.Index]
	}
	out.Currency += reward
	cr.Earned += reward
	cr.LastReward = reward
	cr.FightsWon++
	ev.Reward = reward

	if cr.Index >= len(cr.Encounters)-1 {
		out.Currency += cr.FinalReward
		cr.Earned += cr.FinalReward
		cr.Phase = state.ContractSummary
	} else {
		cr.Phase = state.ContractCamp
	}
}

// RetryFight restores the same fish from the last-spawn record at full
// stamina with a fresh line, leaving tension where it was (clamped). Valid
// only from the defeat prompt.
func RetryFight(b *content.Bundle, s *state.Snapshot) *state.Snapshot {
	if s.Combat == nil || s.Combat.Outcome != state.OutcomeDefeatPrompt {
		return reject(s, "nothing to retry")
	}
	last := s.Combat.LastSpawn
	fish, ok := b.FishByID(last.FishID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown fish %q", last.FishID))
	}
	t := b.Balance()

	out := s.Clone()
	maxStamina := fish.MaxStamina()
	out.Combat = &state.Combat{
		FishID:     fish.ID,
		Stamina:    maxStamina,
		MaxStamina: maxStamina,
		Phase:      state.PhaseFor(t, maxStamina, maxStamina),
		Turn:       state.TurnPlayer,
		TurnCount:  1,
		LastSpawn:  last,
		Outcome:    state.OutcomeNone,
	}
	out.Player.Integrity = state.MaxIntegrity(t, out.Player.Level, out.Player.Stats.Durability)
	out.Player.Tension = clampTension(t, out.Player.Tension)
	out.LastEvent = &state.Event{
		Kind:     state.EventRetry,
		FishID:   fish.ID,
		RegionID: last.RegionID,
	}
	out.UpdatedAt = time.Now()
	return out
}

// Flee clears the encounter and hard-resets tension, regardless of outcome
// state. Fleeing mid-contract abandons the run; earned currency is kept.
func Flee(b *content.Bundle, s *state.Snapshot) *state.Snapshot {
	if s.Combat == nil {
		return reject(s, "no active fight")
	}
	out := s.Clone()
	fishID := out.Combat.FishID
	out.Combat = nil
	out.Player.Tension = 0
	out.Contract = nil
	out.LastEvent = &state.Event{
		Kind:   state.EventFlee,
		FishID: fishID,
	}
	out.UpdatedAt = time.Now()
	return out
}

// reject returns the snapshot unchanged except for a log event. This is the
// engine's single error posture: soft failure, never a partial mutation.
func reject(s *state.Snapshot, msg string) *state.Snapshot {
	out := s.Clone()
	out.LastEvent = state.LogEvent(msg)
	return out
}
