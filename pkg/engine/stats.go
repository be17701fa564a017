package engine

import (
	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// EffectiveStats returns the five base stats plus every flat bonus granted
// by installed rig mods, each clamped to [0, 99].
func EffectiveStats(b *content.Bundle, s *state.Snapshot) state.Stats {
	st := s.Player.Stats
	for _, id := range s.TemporaryMods {
		mod, ok := b.RigModByID(id)
		if !ok {
			continue
		}
		for _, e := range mod.Effects {
			if e.Type != content.EffectStatBonus {
				continue
			}
			switch e.Stat {
			case "control":
				st.Control += e.Amount
			case "power":
				st.Power += e.Amount
			case "durability":
				st.Durability += e.Amount
			case "precision":
				st.Precision += e.Amount
			case "tactics":
				st.Tactics += e.Amount
			}
		}
	}
	st.Control = clamp(st.Control, 0, 99)
	st.Power = clamp(st.Power, 0, 99)
	st.Durability = clamp(st.Durability, 0, 99)
	st.Precision = clamp(st.Precision, 0, 99)
	st.Tactics = clamp(st.Tactics, 0, 99)
	return st
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
