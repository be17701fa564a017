package state

import (
	"testing"

	"github.com/calebwren/reel-engine/pkg/content"
)

func TestNewSnapshot(t *testing.T) {
	b := migrateBundle()
	s := NewSnapshot(b)

	if s.Player.Level != 1 {
		t.Errorf("level = %d", s.Player.Level)
	}
	if s.Player.XPToNext != 25 {
		t.Errorf("xp_to_next = %d, want 25", s.Player.XPToNext)
	}
	if s.Player.Integrity != 80 {
		t.Errorf("integrity = %d, want 80", s.Player.Integrity)
	}
	if s.BundleID != "migrate_test" {
		t.Errorf("bundle id = %q", s.BundleID)
	}
	if len(s.Player.KnownActions) != 1 || s.Player.KnownActions[0] != "reel" {
		t.Errorf("known actions = %v", s.Player.KnownActions)
	}
}

func TestXPToNext(t *testing.T) {
	curve := content.XPCurve{Base: 25, Growth: 1.35}
	cases := []struct {
		level, want int
	}{
		{1, 25},
		{2, 33},
		{3, 45},
		{5, 83},
	}
	for _, tc := range cases {
		if got := XPToNext(curve, tc.level); got != tc.want {
			t.Errorf("level %d: got %d, want %d", tc.level, got, tc.want)
		}
	}
	// The floor keeps trivial curves from zeroing out.
	if got := XPToNext(content.XPCurve{Base: 1, Growth: 1}, 1); got != 10 {
		t.Errorf("floor: got %d, want 10", got)
	}
}

func TestMaxIntegrity(t *testing.T) {
	tn := content.DefaultTuning()
	if got := MaxIntegrity(tn, 1, 0); got != 80 {
		t.Errorf("base: got %d, want 80", got)
	}
	if got := MaxIntegrity(tn, 3, 4); got != 128 {
		t.Errorf("level 3 dur 4: got %d, want 128", got)
	}
	if got := MaxIntegrity(tn, 50, 99); got != 260 {
		t.Errorf("cap: got %d, want 260", got)
	}
}

func TestPhaseFor(t *testing.T) {
	tn := content.DefaultTuning()
	cases := []struct {
		stamina, max int
		want         FishPhase
	}{
		{100, 100, PhaseAggressive},
		{67, 100, PhaseAggressive},
		{66, 100, PhaseDefensive},
		{34, 100, PhaseDefensive},
		{33, 100, PhaseExhausted},
		{0, 100, PhaseExhausted},
		{50, 0, PhaseExhausted},
	}
	for _, tc := range cases {
		if got := PhaseFor(tn, tc.stamina, tc.max); got != tc.want {
			t.Errorf("%d/%d: got %s, want %s", tc.stamina, tc.max, got, tc.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &Snapshot{
		Player: Player{
			Level:        2,
			Skills:       map[string]int{"steady_hands": 1},
			Inventory:    map[string]int{"wax": 2},
			KnownActions: []string{"reel"},
		},
		TemporaryMods: []string{"braided_line"},
		Combat: &Combat{
			FishID:  "perch",
			Stamina: 40,
		},
		Contract: &ContractRun{
			ContractID:   "harbor_run",
			Encounters:   []Encounter{{RegionID: "harbor", FishID: "perch"}},
			FightRewards: []int{12},
		},
		LastEvent: &Event{Kind: EventWin},
	}

	c := s.Clone()
	c.Player.Skills["steady_hands"] = 9
	c.Player.Inventory["wax"] = 9
	c.Player.KnownActions[0] = "pump"
	c.TemporaryMods[0] = "light_rod"
	c.Combat.Stamina = 1
	c.Contract.Encounters[0].FishID = "pike"
	c.Contract.FightRewards[0] = 99
	c.LastEvent.Kind = EventDefeat

	if s.Player.Skills["steady_hands"] != 1 {
		t.Error("skills shared")
	}
	if s.Player.Inventory["wax"] != 2 {
		t.Error("inventory shared")
	}
	if s.Player.KnownActions[0] != "reel" {
		t.Error("known actions shared")
	}
	if s.TemporaryMods[0] != "braided_line" {
		t.Error("temporary mods shared")
	}
	if s.Combat.Stamina != 40 {
		t.Error("combat shared")
	}
	if s.Contract.Encounters[0].FishID != "perch" {
		t.Error("encounters shared")
	}
	if s.Contract.FightRewards[0] != 12 {
		t.Error("fight rewards shared")
	}
	if s.LastEvent.Kind != EventWin {
		t.Error("event shared")
	}
}
