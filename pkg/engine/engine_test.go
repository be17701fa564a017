package engine

import (
	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// testBundle builds a small but complete bundle used across the engine
// tests.
func testBundle() *content.Bundle {
	return &content.Bundle{
		ID:   "test_bundle",
		Name: "Test Bundle",
		Regions: []content.Region{
			{
				ID:   "harbor",
				Name: "Old Harbor",
				Pool: []content.SpawnWeight{
					{FishID: "perch", Weight: 3},
				},
			},
			{
				ID:       "deep_shelf",
				Name:     "Deep Shelf",
				MinLevel: 5,
				Pool: []content.SpawnWeight{
					{FishID: "pike", Weight: 1},
				},
			},
		},
		Fish: []content.Fish{
			{ID: "perch", Name: "Harbor Perch", XP: 30, Stamina: 80, Pressure: 10},
			{ID: "pike", Name: "Shelf Pike", XP: 90, Stamina: 140, Pressure: 16},
			{ID: "old_carp", Name: "Old Carp", XP: 20, MaxHP: 60, Attack: 8}, // legacy shape
		},
		Actions: []content.Action{
			{ID: "reel", Label: "Reel", Kind: "reel", StaminaTake: 20, Tension: 12},
			{ID: "pump", Label: "Pump", Kind: "technique", StaminaTake: 26, Tension: 18},
			{ID: "slack", Label: "Give Slack", Kind: "brace", Relief: 10, Brace: 6},
			{ID: "drag", Label: "Set Drag", Kind: "adjust", Relief: 4, ControlGain: 2},
			{ID: "old_strike", Label: "Strike", Kind: "attack", Damage: 15, FocusCost: 10},
			{ID: "old_rest", Label: "Rest", Kind: "utility", FocusGain: 20},
		},
		Items: []content.Item{
			{ID: "splice_kit", Label: "Splice Kit", RestoreAmount: 25},
			{ID: "wax", Label: "Line Wax", TensionReduce: 20},
		},
		Skills: []content.Skill{
			{
				ID: "steady_hands", Name: "Steady Hands", Type: content.SkillPassive, MaxRank: 3,
				Effects: []content.Effect{
					{Type: content.EffectWearMult, Mult: 0.9},
				},
			},
			{
				ID: "soft_drag", Name: "Soft Drag", Type: content.SkillPassive, MaxRank: 2, MinLevel: 2,
				Prereqs: []string{"steady_hands"},
				Effects: []content.Effect{
					{Type: content.EffectPressureMult, Mult: 0.92},
				},
			},
			{
				ID: "pump_and_reel", Name: "Pump and Reel", Type: content.SkillActive, MaxRank: 1,
				GrantsActions: []string{"pump"},
			},
			{
				ID: "flinch_guard", Name: "Flinch Guard", Type: content.SkillReactive, MaxRank: 2,
				Effects: []content.Effect{
					{Type: content.EffectControlOnThreshold, Threshold: 70, Amount: 2},
				},
			},
			{
				ID: "cool_head", Name: "Cool Head", Type: content.SkillReactive, MaxRank: 1,
				Effects: []content.Effect{
					{Type: content.EffectControlOnThreshold, Threshold: 60, Amount: 1},
					{Type: content.EffectControlOnBrace, Amount: 1},
				},
			},
			{
				ID: "tire_out", Name: "Tire Out", Type: content.SkillPassive, MaxRank: 1,
				Effects: []content.Effect{
					{Type: content.EffectStaminaBleed, Amount: 3},
				},
			},
			{
				ID: "flow_state", Name: "Flow State", Type: content.SkillPassive, MaxRank: 1,
				Effects: []content.Effect{
					{Type: content.EffectNegateWearOnPerfect},
				},
			},
		},
		RigMods: []content.RigMod{
			{
				ID: "braided_line", Label: "Braided Line",
				Effects: []content.Effect{
					{Type: content.EffectWearMult, Mult: 0.85},
					{Type: content.EffectStatBonus, Stat: "durability", Amount: 3},
				},
			},
			{
				ID: "light_rod", Label: "Light Rod",
				Effects: []content.Effect{
					{Type: content.EffectTensionMult, Mult: 0.9},
					{Type: content.EffectStatBonus, Stat: "precision", Amount: 2},
				},
			},
		},
		Shops: []content.Shop{
			{
				ID: "camp_store",
				Stock: []content.StockRow{
					{ItemID: "splice_kit", Price: 20, Qty: 1},
					{ItemID: "wax", Price: 12, Qty: 2},
					{ModID: "braided_line", Price: 60},
				},
			},
		},
		Contracts: []content.Contract{
			{
				ID:            "harbor_run",
				RegionID:      "harbor",
				MinEncounters: 2,
				MaxEncounters: 4,
				ShopID:        "camp_store",
				FightReward:   content.RewardRange{Min: 10, Max: 20},
				FinalReward:   content.RewardRange{Min: 30, Max: 50},
			},
		},
		BaseActions: []string{"reel", "slack", "drag", "old_strike", "old_rest"},
		XPCurve:     content.XPCurve{Base: 25, Growth: 1.35},
	}
}

// newTestSnapshot returns a fresh level-1 snapshot for the test bundle.
func newTestSnapshot(b *content.Bundle) *state.Snapshot {
	return state.NewSnapshot(b)
}
