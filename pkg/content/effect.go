package content

// EffectType enumerates the closed set of effect variants a skill or rig mod
// may carry. The engine folds these into a totals record; nothing downstream
// dispatches on a skill or mod id.
type EffectType string

const (
	// EffectWearMult scales line wear multiplicatively (Mult per rank).
	EffectWearMult EffectType = "wear_mult"
	// EffectPressureMult scales incoming fish pressure multiplicatively.
	EffectPressureMult EffectType = "pressure_mult"
	// EffectTensionMult scales tension gain multiplicatively (rig mods).
	EffectTensionMult EffectType = "tension_mult"
	// EffectBraceBonus adds a flat amount to the brace value when bracing.
	EffectBraceBonus EffectType = "brace_bonus"
	// EffectReliefBonus adds a flat amount to tension relief actions.
	EffectReliefBonus EffectType = "relief_bonus"
	// EffectControlOnBrace grants combat control when the player braces.
	EffectControlOnBrace EffectType = "control_on_brace"
	// EffectControlOnThreshold grants combat control once per turn when
	// tension crosses Threshold. With several such skills, the lowest
	// threshold applies and the grants are summed.
	EffectControlOnThreshold EffectType = "control_on_threshold"
	// EffectStaminaBleed drains fish stamina each turn of the exhausted phase.
	EffectStaminaBleed EffectType = "stamina_bleed"
	// EffectNegateWearOnPerfect skips wear for one turn after a perfect input.
	EffectNegateWearOnPerfect EffectType = "negate_wear_on_perfect"
	// EffectStatBonus grants a flat stat bonus (rig mods).
	EffectStatBonus EffectType = "stat_bonus"
)

// Effect is one typed entry in a skill or rig mod effect list. Which fields
// are meaningful depends on Type: multiplicative variants read Mult, flat
// variants read Amount, stat bonuses read Stat+Amount, threshold grants read
// Threshold+Amount.
type Effect struct {
	Type      EffectType `json:"type"`
	Stat      string     `json:"stat,omitempty"`
	Amount    int        `json:"amount,omitempty"`
	Mult      float64    `json:"mult,omitempty"`
	Threshold int        `json:"threshold,omitempty"`
}
