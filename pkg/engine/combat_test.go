package engine

import (
	"testing"

	"github.com/calebwren/reel-engine/pkg/state"
)

func TestSpawnFight(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)

	out := SpawnFight(b, s, "harbor", NewRNG(1))
	if out.Combat == nil {
		t.Fatal("expected combat to start")
	}
	if out.Combat.Stamina != out.Combat.MaxStamina {
		t.Errorf("expected full stamina, got %d/%d", out.Combat.Stamina, out.Combat.MaxStamina)
	}
	if out.Combat.Phase != state.PhaseAggressive {
		t.Errorf("expected AGGRESSIVE at full stamina, got %s", out.Combat.Phase)
	}
	if out.Combat.Turn != state.TurnPlayer {
		t.Errorf("expected player turn, got %s", out.Combat.Turn)
	}
	if out.Combat.TurnCount != 1 {
		t.Errorf("expected turn 1, got %d", out.Combat.TurnCount)
	}
	if s.Combat != nil {
		t.Error("input snapshot was mutated")
	}
}

func TestSpawnFightRejections(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)

	out := SpawnFight(b, s, "nowhere", NewRNG(1))
	if out.Combat != nil {
		t.Error("expected no combat for unknown region")
	}
	if out.LastEvent == nil || out.LastEvent.Kind != state.EventLog {
		t.Error("expected log event for unknown region")
	}

	out = SpawnFight(b, s, "deep_shelf", NewRNG(1))
	if out.Combat != nil {
		t.Error("expected level gate to hold")
	}

	fighting := SpawnFight(b, s, "harbor", NewRNG(1))
	again := SpawnFight(b, fighting, "harbor", NewRNG(1))
	if again.LastEvent.Kind != state.EventLog {
		t.Error("expected rejection while a fight is in progress")
	}
}

// The worked example: level-1 player, all stats zero, perch at 80 stamina
// and pressure 10. A GOOD reel (stamina_take 20, tension 12) takes
// round(20*0.9) = 18 stamina, leaving 62 (still aggressive), and adds 12
// tension before the fish's pressure lands.
func TestApplyActionWorkedExample(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	if s.Combat == nil || s.Combat.FishID != "perch" {
		t.Fatalf("expected perch spawn, got %+v", s.Combat)
	}

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.Combat == nil {
		t.Fatal("combat ended unexpectedly")
	}
	if out.Combat.Stamina != 62 {
		t.Errorf("expected stamina 62, got %d", out.Combat.Stamina)
	}
	if out.Combat.Phase != state.PhaseAggressive {
		t.Errorf("expected AGGRESSIVE at ratio 0.775, got %s", out.Combat.Phase)
	}
	if out.LastEvent.StaminaDelta != -18 {
		t.Errorf("expected stamina delta -18, got %d", out.LastEvent.StaminaDelta)
	}
	if out.LastEvent.TensionDelta != 12 {
		t.Errorf("expected action tension delta 12, got %d", out.LastEvent.TensionDelta)
	}
	// Fish response: pressure 10 * 1.2 (aggressive, level 1) = 12.
	if out.LastEvent.Pressure != 12 {
		t.Errorf("expected pressure 12, got %d", out.LastEvent.Pressure)
	}
	if out.Player.Tension != 24 {
		t.Errorf("expected tension 24 after pressure, got %d", out.Player.Tension)
	}
	// Turn came back to the player.
	if out.Combat.Turn != state.TurnPlayer {
		t.Errorf("expected player turn, got %s", out.Combat.Turn)
	}
	if out.Combat.TurnCount != 2 {
		t.Errorf("expected turn 2, got %d", out.Combat.TurnCount)
	}
	// Tension 24 is under the safe limit of 58: no wear.
	if out.LastEvent.Wear != 0 {
		t.Errorf("expected no wear, got %d", out.LastEvent.Wear)
	}
}

func TestApplyActionRejectsOutOfTurn(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Combat.Turn = state.TurnFish

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.LastEvent.Kind != state.EventLog {
		t.Error("expected rejection when not the player's turn")
	}
	if out.Combat.Stamina != s.Combat.Stamina || out.Player.Tension != s.Player.Tension {
		t.Error("rejected action changed state")
	}
}

func TestApplyActionRejectsAfterDefeat(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Combat.Outcome = state.OutcomeDefeatPrompt

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.LastEvent.Kind != state.EventLog {
		t.Error("expected rejection in defeat prompt")
	}
}

func TestApplyActionRejectsUnknownAction(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	out := ApplyAction(b, s, "dynamite", state.GradeGood)
	if out.LastEvent.Kind != state.EventLog {
		t.Error("expected rejection for unknown action")
	}
}

func TestFinishingBlowSkipsFishTurn(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Combat.Stamina = 10
	s.Combat.Phase = state.PhaseExhausted

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.Combat != nil {
		t.Fatal("expected combat to be cleared on win")
	}
	if out.LastEvent.Kind != state.EventWin {
		t.Errorf("expected win event, got %s", out.LastEvent.Kind)
	}
	if out.LastEvent.Pressure != 0 {
		t.Error("fish acted after a finishing blow")
	}
	// 30 xp crosses the level-1 threshold of 25.
	if out.Player.Level != 2 {
		t.Errorf("expected level 2, got %d", out.Player.Level)
	}
	if out.Player.XP != 5 {
		t.Errorf("expected 5 xp carried over, got %d", out.Player.XP)
	}
	// Tension decays to a third of its post-action value: (0+12)/3 = 4.
	if out.Player.Tension != 4 {
		t.Errorf("expected tension 4 after win decay, got %d", out.Player.Tension)
	}
}

func TestLegacyAttackMapsToReel(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	out := ApplyAction(b, s, "old_strike", state.GradeGood)
	// damage 15 -> staminaTake 15, reel eff 0.9 -> round(13.5) = 14.
	if out.LastEvent.StaminaDelta != -14 {
		t.Errorf("expected stamina delta -14, got %d", out.LastEvent.StaminaDelta)
	}
	// tension 12 + round(10*0.7) = 19.
	if out.LastEvent.TensionDelta != 19 {
		t.Errorf("expected tension delta 19, got %d", out.LastEvent.TensionDelta)
	}
}

func TestLegacyUtilityMapsToBrace(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Player.Tension = 40

	out := ApplyAction(b, s, "old_rest", state.GradeGood)
	// focusGain 20 >= 14: brace with relief round(20*0.8) = 16.
	if out.LastEvent.TensionDelta != -16 {
		t.Errorf("expected tension delta -16, got %d", out.LastEvent.TensionDelta)
	}
}

func TestBraceBluntsNextPressure(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	out := ApplyAction(b, s, "slack", state.GradeGood)
	// Brace 6 against pressure 12 leaves 6 for this response, and the
	// shield is spent.
	if out.LastEvent.Pressure != 6 {
		t.Errorf("expected blunted pressure 6, got %d", out.LastEvent.Pressure)
	}
	if out.Combat.Brace != 0 {
		t.Errorf("expected brace reset after fish turn, got %d", out.Combat.Brace)
	}
}

func TestAdjustRaisesCombatControl(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	out := ApplyAction(b, s, "drag", state.GradeGood)
	if out.Combat.Control != 2 {
		t.Errorf("expected combat control 2, got %d", out.Combat.Control)
	}
}

func TestWearAtExactSafeLimitIsZero(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	// Safe limit for zero control is 58. Land exactly on it after the
	// fish's pressure: 12 action + 12 pressure from 34.
	s.Player.Tension = 34

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.Player.Tension != 58 {
		t.Fatalf("expected tension 58, got %d", out.Player.Tension)
	}
	if out.LastEvent.Wear != 0 {
		t.Errorf("expected zero wear at the safe limit, got %d", out.LastEvent.Wear)
	}
}

func TestWearAboveSafeLimit(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Player.Tension = 60
	integBefore := s.Player.Integrity

	out := ApplyAction(b, s, "drag", state.GradeGood)
	// drag relieves 4 (56), pressure 12 lands at 68: excess 10 -> wear 1.
	if out.LastEvent.Wear != 1 {
		t.Errorf("expected wear 1, got %d", out.LastEvent.Wear)
	}
	if out.Player.Integrity != integBefore-1 {
		t.Errorf("expected integrity %d, got %d", integBefore-1, out.Player.Integrity)
	}
}

func TestDefeatPromptOnIntegrityZero(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Player.Tension = 95
	s.Player.Integrity = 1

	out := ApplyAction(b, s, "reel", state.GradeGood)
	if out.Combat == nil {
		t.Fatal("combat should persist into the defeat prompt")
	}
	if out.Combat.Outcome != state.OutcomeDefeatPrompt {
		t.Errorf("expected DEFEAT_PROMPT, got %s", out.Combat.Outcome)
	}
	if out.LastEvent.Kind != state.EventDefeat {
		t.Errorf("expected defeat event, got %s", out.LastEvent.Kind)
	}
	if out.Player.Integrity != 0 {
		t.Errorf("expected integrity 0, got %d", out.Player.Integrity)
	}
}

func TestRetryFight(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Combat.Stamina = 20
	s.Combat.Outcome = state.OutcomeDefeatPrompt
	s.Player.Integrity = 0
	s.Player.Tension = 70
	s.Currency = 55

	out := RetryFight(b, s)
	if out.Combat == nil {
		t.Fatal("expected a fresh fight")
	}
	if out.Combat.FishID != "perch" {
		t.Errorf("expected the same fish, got %s", out.Combat.FishID)
	}
	if out.Combat.Stamina != out.Combat.MaxStamina {
		t.Error("expected full stamina on retry")
	}
	if out.Combat.Outcome != state.OutcomeNone {
		t.Error("expected outcome cleared on retry")
	}
	if out.Player.Integrity != 80 {
		t.Errorf("expected integrity restored to max, got %d", out.Player.Integrity)
	}
	if out.Player.Tension != 70 {
		t.Errorf("expected tension untouched, got %d", out.Player.Tension)
	}
	if out.Currency != 55 {
		t.Errorf("expected currency untouched, got %d", out.Currency)
	}
}

func TestRetryRequiresDefeatPrompt(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	out := RetryFight(b, s)
	if out.LastEvent.Kind != state.EventLog {
		t.Error("expected rejection outside the defeat prompt")
	}
}

func TestFlee(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))
	s.Player.Tension = 66

	out := Flee(b, s)
	if out.Combat != nil {
		t.Error("expected combat cleared")
	}
	if out.Player.Tension != 0 {
		t.Errorf("expected tension hard reset, got %d", out.Player.Tension)
	}
}

func TestTensionAndIntegrityStayInRange(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s = SpawnFight(b, s, "harbor", NewRNG(7))

	// Hammer the same risky action; the invariants must hold every turn.
	tuning := b.Balance()
	for i := 0; i < 40; i++ {
		s = ApplyAction(b, s, "reel", state.GradeMiss)
		if s.Player.Tension < 0 || s.Player.Tension > tuning.MaxTension {
			t.Fatalf("tension out of range: %d", s.Player.Tension)
		}
		maxInteg := state.MaxIntegrity(tuning, s.Player.Level, s.Player.Stats.Durability)
		if s.Player.Integrity < 0 || s.Player.Integrity > maxInteg {
			t.Fatalf("integrity out of range: %d", s.Player.Integrity)
		}
		if s.Combat == nil || s.Combat.Outcome == state.OutcomeDefeatPrompt {
			return
		}
	}
}
