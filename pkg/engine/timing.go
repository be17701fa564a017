package engine

import (
	"math"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// Window is the pair of radii (distance from the timing bar's center) that
// classify a sampled position.
type Window struct {
	Perfect float64 `json:"perfect"`
	Good    float64 `json:"good"`
}

// TimingWindow computes the grade radii from tuning, precision, control and
// level. The good radius always clears the perfect radius by at least 0.04.
func TimingWindow(b *content.Bundle, s *state.Snapshot) Window {
	t := b.Balance()
	eff := EffectiveStats(b, s)

	perfect := t.BasePerfect + t.PerfectPerPrecision*float64(eff.Precision)
	perfect = clampf(perfect, t.PerfectMin, t.PerfectMax)

	good := t.BaseGood + t.GoodPerControl*float64(eff.Control) + t.GoodPerLevel*float64(s.Player.Level-1)
	good = math.Max(good, perfect+0.04)
	good = clampf(good, t.GoodMin, t.GoodMax)

	return Window{Perfect: perfect, Good: good}
}

// Grade classifies a sampled distance from center against the window.
func (w Window) Grade(distance float64) state.TimingGrade {
	d := math.Abs(distance)
	switch {
	case d <= w.Perfect:
		return state.GradePerfect
	case d <= w.Good:
		return state.GradeGood
	default:
		return state.GradeMiss
	}
}

// timingTable maps a grade to a stamina multiplier and a tension adjustment.
// A miss severely reduces progress and adds tension, mitigated slightly by
// precision and control; a perfect amplifies progress and relieves tension,
// both scaling with precision.
func timingTable(grade state.TimingGrade, eff state.Stats) (staminaMult float64, tensionBonus int) {
	switch grade {
	case state.GradeMiss:
		mult := 0.35 + 0.005*float64(eff.Precision+eff.Control)
		penalty := 6 - eff.Control/10
		if penalty < 2 {
			penalty = 2
		}
		return clampf(mult, 0.35, 0.75), penalty
	case state.GradePerfect:
		mult := 1.25 + 0.015*float64(eff.Precision)
		relief := 4 + eff.Precision/4
		return mult, -relief
	default:
		return 1.0, 0
	}
}
