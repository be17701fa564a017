package content

import "math"

// ActionKind is the canonical classification of a player action.
type ActionKind string

const (
	ActionReel      ActionKind = "reel"
	ActionBrace     ActionKind = "brace"
	ActionAdjust    ActionKind = "adjust"
	ActionTechnique ActionKind = "technique"

	// Legacy kinds from pre-fishing bundles
	legacyAttack  = "attack"
	legacyUtility = "utility"
)

// Action is an authored player action. Exactly one shape is present per
// record: canonical fishing deltas (stamina_take/tension/relief/...) or the
// legacy combat fields (damage/heal/focus_cost/focus_gain). Normalize maps
// either shape to a single Intent; combat logic only ever sees intents.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`

	// Canonical deltas
	StaminaTake int `json:"stamina_take,omitempty"`
	Tension     int `json:"tension,omitempty"` // gained by reel/technique
	Relief      int `json:"relief,omitempty"`  // removed by brace/adjust
	Brace       int `json:"brace,omitempty"`
	ControlGain int `json:"control_gain,omitempty"`
	Restore     int `json:"restore,omitempty"`

	// Legacy fields
	Damage    int `json:"damage,omitempty"`
	Heal      int `json:"heal,omitempty"`
	FocusCost int `json:"focus_cost,omitempty"`
	FocusGain int `json:"focus_gain,omitempty"`
}

// Intent is the canonical, shape-independent interpretation of an action.
type Intent struct {
	Kind        ActionKind
	StaminaTake int
	Tension     int
	Relief      int
	Brace       int
	ControlGain int
	Restore     int
}

// utilityBraceCutoff splits legacy utility actions: large focus gains read
// as a brace, small ones as an adjust.
const utilityBraceCutoff = 14

// Normalize interprets the action into a canonical intent. Legacy attack
// maps to reel, legacy utility to brace or adjust depending on focus gain,
// with relief proportional to the gain.
func (a *Action) Normalize() Intent {
	switch a.Kind {
	case string(ActionReel), string(ActionBrace), string(ActionAdjust), string(ActionTechnique):
		return Intent{
			Kind:        ActionKind(a.Kind),
			StaminaTake: a.StaminaTake,
			Tension:     a.Tension,
			Relief:      a.Relief,
			Brace:       a.Brace,
			ControlGain: a.ControlGain,
			Restore:     a.Restore,
		}
	case legacyAttack:
		return Intent{
			Kind:        ActionReel,
			StaminaTake: max(0, a.Damage),
			Tension:     12 + int(math.Round(float64(a.FocusCost)*0.7)),
			Restore:     a.Heal,
		}
	case legacyUtility:
		if a.FocusGain >= utilityBraceCutoff {
			return Intent{
				Kind:    ActionBrace,
				Relief:  int(math.Round(float64(a.FocusGain) * 0.8)),
				Brace:   4 + a.FocusGain/4,
				Restore: a.Heal,
			}
		}
		return Intent{
			Kind:        ActionAdjust,
			Relief:      int(math.Round(float64(a.FocusGain) * 0.6)),
			ControlGain: 2,
			Restore:     a.Heal,
		}
	default:
		// Unknown kind reads as an inert adjust so soft-fail callers still
		// get a valid intent.
		return Intent{Kind: ActionAdjust}
	}
}
