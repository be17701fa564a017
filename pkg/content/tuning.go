package content

// Tuning is the balance table for the engine's hand-tuned constants. Bundles
// may override any subset; zero values fall back to the defaults below.
// These numbers are carried for behavioral parity with the original balance
// pass and are deliberately centralized here rather than scattered through
// the resolver.
type Tuning struct {
	MaxTension int `json:"max_tension,omitempty"`

	// Safe tension limit: base plus small bonuses from combat control and
	// the control stat, clamped to [SafeLimitMin, SafeLimitMax].
	SafeLimitBase int `json:"safe_limit_base,omitempty"`
	SafeLimitMin  int `json:"safe_limit_min,omitempty"`
	SafeLimitMax  int `json:"safe_limit_max,omitempty"`

	// Max line integrity derivation, clamped to [IntegrityMin, IntegrityMax].
	IntegrityBase          int `json:"integrity_base,omitempty"`
	IntegrityPerLevel      int `json:"integrity_per_level,omitempty"`
	IntegrityPerDurability int `json:"integrity_per_durability,omitempty"`
	IntegrityMin           int `json:"integrity_min,omitempty"`
	IntegrityMax           int `json:"integrity_max,omitempty"`

	// Fish phase thresholds on the stamina ratio.
	AggressiveRatio float64 `json:"aggressive_ratio,omitempty"`
	ExhaustedRatio  float64 `json:"exhausted_ratio,omitempty"`

	// Power scaling of reel and technique stamina take.
	ReelPowerRate      float64 `json:"reel_power_rate,omitempty"`
	TechniquePowerRate float64 `json:"technique_power_rate,omitempty"`

	// Timing window radii.
	BasePerfect         float64 `json:"base_perfect,omitempty"`
	PerfectPerPrecision float64 `json:"perfect_per_precision,omitempty"`
	PerfectMin          float64 `json:"perfect_min,omitempty"`
	PerfectMax          float64 `json:"perfect_max,omitempty"`
	BaseGood            float64 `json:"base_good,omitempty"`
	GoodPerControl      float64 `json:"good_per_control,omitempty"`
	GoodPerLevel        float64 `json:"good_per_level,omitempty"`
	GoodMin             float64 `json:"good_min,omitempty"`
	GoodMax             float64 `json:"good_max,omitempty"`
}

// DefaultTuning returns the compiled-in balance table.
func DefaultTuning() Tuning {
	return Tuning{
		MaxTension: 100,

		SafeLimitBase: 58,
		SafeLimitMin:  50,
		SafeLimitMax:  86,

		IntegrityBase:          80,
		IntegrityPerLevel:      6,
		IntegrityPerDurability: 9,
		IntegrityMin:           60,
		IntegrityMax:           260,

		AggressiveRatio: 0.66,
		ExhaustedRatio:  0.33,

		ReelPowerRate:      0.04,
		TechniquePowerRate: 0.07,

		BasePerfect:         0.06,
		PerfectPerPrecision: 0.004,
		PerfectMin:          0.04,
		PerfectMax:          0.16,
		BaseGood:            0.18,
		GoodPerControl:      0.003,
		GoodPerLevel:        0.008,
		GoodMin:             0.12,
		GoodMax:             0.42,
	}
}

// withDefaults fills any unset fields from the default table.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.MaxTension <= 0 {
		t.MaxTension = d.MaxTension
	}
	if t.SafeLimitBase <= 0 {
		t.SafeLimitBase = d.SafeLimitBase
	}
	if t.SafeLimitMin <= 0 {
		t.SafeLimitMin = d.SafeLimitMin
	}
	if t.SafeLimitMax <= 0 {
		t.SafeLimitMax = d.SafeLimitMax
	}
	if t.IntegrityBase <= 0 {
		t.IntegrityBase = d.IntegrityBase
	}
	if t.IntegrityPerLevel <= 0 {
		t.IntegrityPerLevel = d.IntegrityPerLevel
	}
	if t.IntegrityPerDurability <= 0 {
		t.IntegrityPerDurability = d.IntegrityPerDurability
	}
	if t.IntegrityMin <= 0 {
		t.IntegrityMin = d.IntegrityMin
	}
	if t.IntegrityMax <= 0 {
		t.IntegrityMax = d.IntegrityMax
	}
	if t.AggressiveRatio <= 0 {
		t.AggressiveRatio = d.AggressiveRatio
	}
	if t.ExhaustedRatio <= 0 {
		t.ExhaustedRatio = d.ExhaustedRatio
	}
	if t.ReelPowerRate <= 0 {
		t.ReelPowerRate = d.ReelPowerRate
	}
	if t.TechniquePowerRate <= 0 {
		t.TechniquePowerRate = d.TechniquePowerRate
	}
	if t.BasePerfect <= 0 {
		t.BasePerfect = d.BasePerfect
	}
	if t.PerfectPerPrecision <= 0 {
		t.PerfectPerPrecision = d.PerfectPerPrecision
	}
	if t.PerfectMin <= 0 {
		t.PerfectMin = d.PerfectMin
	}
	if t.PerfectMax <= 0 {
		t.PerfectMax = d.PerfectMax
	}
	if t.BaseGood <= 0 {
		t.BaseGood = d.BaseGood
	}
	if t.GoodPerControl <= 0 {
		t.GoodPerControl = d.GoodPerControl
	}
	if t.GoodPerLevel <= 0 {
		t.GoodPerLevel = d.GoodPerLevel
	}
	if t.GoodMin <= 0 {
		t.GoodMin = d.GoodMin
	}
	if t.GoodMax <= 0 {
		t.GoodMax = d.GoodMax
	}
	return t
}
