package content

import "testing"

func TestNormalizeCanonical(t *testing.T) {
	a := Action{ID: "reel", Kind: "reel", StaminaTake: 20, Tension: 12}
	got := a.Normalize()
	if got.Kind != ActionReel || got.StaminaTake != 20 || got.Tension != 12 {
		t.Errorf("got %+v", got)
	}

	a = Action{ID: "slack", Kind: "brace", Relief: 10, Brace: 6}
	got = a.Normalize()
	if got.Kind != ActionBrace || got.Relief != 10 || got.Brace != 6 {
		t.Errorf("got %+v", got)
	}
}

func TestNormalizeLegacyAttack(t *testing.T) {
	a := Action{ID: "strike", Kind: "attack", Damage: 15, FocusCost: 10}
	got := a.Normalize()
	if got.Kind != ActionReel {
		t.Fatalf("kind = %s", got.Kind)
	}
	if got.StaminaTake != 15 {
		t.Errorf("stamina take = %d, want 15", got.StaminaTake)
	}
	// 12 + round(10 * 0.7) = 19
	if got.Tension != 19 {
		t.Errorf("tension = %d, want 19", got.Tension)
	}

	// Negative damage is floored at zero, never a stamina grant.
	a = Action{ID: "curse", Kind: "attack", Damage: -5}
	if got := a.Normalize(); got.StaminaTake != 0 {
		t.Errorf("stamina take = %d, want 0", got.StaminaTake)
	}
}

func TestNormalizeLegacyUtility(t *testing.T) {
	// Large focus gain reads as a brace.
	a := Action{ID: "rest", Kind: "utility", FocusGain: 20}
	got := a.Normalize()
	if got.Kind != ActionBrace {
		t.Fatalf("kind = %s", got.Kind)
	}
	if got.Relief != 16 {
		t.Errorf("relief = %d, want 16", got.Relief)
	}
	if got.Brace != 9 {
		t.Errorf("brace = %d, want 9", got.Brace)
	}

	// Small focus gain reads as an adjust.
	a = Action{ID: "breathe", Kind: "utility", FocusGain: 10}
	got = a.Normalize()
	if got.Kind != ActionAdjust {
		t.Fatalf("kind = %s", got.Kind)
	}
	if got.Relief != 6 {
		t.Errorf("relief = %d, want 6", got.Relief)
	}
	if got.ControlGain != 2 {
		t.Errorf("control gain = %d, want 2", got.ControlGain)
	}

	// The cutoff itself braces.
	a = Action{ID: "edge", Kind: "utility", FocusGain: 14}
	if got := a.Normalize(); got.Kind != ActionBrace {
		t.Errorf("kind at cutoff = %s", got.Kind)
	}
}

func TestNormalizeLegacyHealCarries(t *testing.T) {
	a := Action{ID: "mend", Kind: "utility", FocusGain: 20, Heal: 5}
	if got := a.Normalize(); got.Restore != 5 {
		t.Errorf("restore = %d, want 5", got.Restore)
	}
}

func TestNormalizeUnknownKindIsInert(t *testing.T) {
	a := Action{ID: "dance", Kind: "ritual"}
	got := a.Normalize()
	if got.Kind != ActionAdjust {
		t.Errorf("kind = %s", got.Kind)
	}
	if got.StaminaTake != 0 || got.Tension != 0 || got.Relief != 0 || got.ControlGain != 0 {
		t.Errorf("got %+v, want inert", got)
	}
}
