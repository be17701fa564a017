package engine

import (
	"math"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// Totals is the pooled result of folding every active skill rank and every
// installed rig mod. The combat resolver only ever reads these totals; it
// never inspects an individual skill or mod id.
type Totals struct {
	WearMult     float64 // multiplicative line wear scale
	PressureMult float64 // multiplicative fish pressure scale (skills)
	TensionMult  float64 // multiplicative tension gain scale (rig mods)

	BraceBonus  int
	ReliefBonus int

	ControlOnBrace     int
	ControlThreshold   int // lowest threshold among reactive skills, 0 = none
	ControlOnThreshold int // summed grants across those skills

	StaminaBleed        int // per fish turn while exhausted
	NegateWearOnPerfect bool
}

// CollectEffects folds the player's skills and installed rig mods into one
// totals record. Multiplicative effects commute, so the fold is order
// independent: flat amounts scale linearly with rank, multipliers compound
// per rank.
func CollectEffects(b *content.Bundle, s *state.Snapshot) Totals {
	t := Totals{WearMult: 1, PressureMult: 1, TensionMult: 1}

	for id, rank := range s.Player.Skills {
		if rank <= 0 {
			continue
		}
		sk, ok := b.SkillByID(id)
		if !ok {
			continue
		}
		for _, e := range sk.Effects {
			foldEffect(&t, e, rank)
		}
	}

	// Rig mod effects fold in afterward. Mods are binary-owned, so they
	// apply at rank 1.
	for _, id := range s.TemporaryMods {
		mod, ok := b.RigModByID(id)
		if !ok {
			continue
		}
		for _, e := range mod.Effects {
			foldEffect(&t, e, 1)
		}
	}

	return t
}

func foldEffect(t *Totals, e content.Effect, rank int) {
	switch e.Type {
	case content.EffectWearMult:
		t.WearMult *= powMult(e.Mult, rank)
	case content.EffectPressureMult:
		t.PressureMult *= powMult(e.Mult, rank)
	case content.EffectTensionMult:
		t.TensionMult *= powMult(e.Mult, rank)
	case content.EffectBraceBonus:
		t.BraceBonus += e.Amount * rank
	case content.EffectReliefBonus:
		t.ReliefBonus += e.Amount * rank
	case content.EffectControlOnBrace:
		t.ControlOnBrace += e.Amount * rank
	case content.EffectControlOnThreshold:
		// First-to-trigger semantics: the lowest authored threshold wins,
		// and every such skill's grant still counts.
		if e.Threshold > 0 && (t.ControlThreshold == 0 || e.Threshold < t.ControlThreshold) {
			t.ControlThreshold = e.Threshold
		}
		t.ControlOnThreshold += e.Amount * rank
	case content.EffectStaminaBleed:
		t.StaminaBleed += e.Amount * rank
	case content.EffectNegateWearOnPerfect:
		t.NegateWearOnPerfect = true
	}
}

func powMult(mult float64, rank int) float64 {
	if mult <= 0 {
		return 1
	}
	return math.Pow(mult, float64(rank))
}
