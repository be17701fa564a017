package content

// Package content defines the declarative data a bundle author supplies:
// regions, fish, actions, items, skills, rig mods, shops and contracts.
// Bundles are loaded once and treated as immutable by the engine.

// SpawnWeight is one weighted entry in a region or contract encounter pool.
type SpawnWeight struct {
	FishID string `json:"fish_id"`
	Weight int    `json:"weight"`
}

// Region is a fishable area with a level gate and a weighted fish pool.
type Region struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	MinLevel int           `json:"min_level,omitempty"`
	Pool     []SpawnWeight `json:"pool"`
}

// Fish is an opponent definition. Older bundles used max_hp/attack; those
// are accepted as fallbacks for stamina/pressure.
type Fish struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	XP       int    `json:"xp"`
	Stamina  int    `json:"stamina,omitempty"`
	Pressure int    `json:"pressure,omitempty"`

	// Legacy fields
	MaxHP  int `json:"max_hp,omitempty"`
	Attack int `json:"attack,omitempty"`
}

// MaxStamina returns the fish's stamina pool, falling back to the legacy
// max_hp field.
func (f *Fish) MaxStamina() int {
	if f.Stamina > 0 {
		return f.Stamina
	}
	if f.MaxHP > 0 {
		return f.MaxHP
	}
	return 40
}

// BasePressure returns the fish's pressure value, falling back to the
// legacy attack field.
func (f *Fish) BasePressure() int {
	if f.Pressure > 0 {
		return f.Pressure
	}
	if f.Attack > 0 {
		return f.Attack
	}
	return 8
}

// Item restores line integrity and/or reduces tension. Older bundles used
// a single heal field, which maps to integrity restore.
type Item struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	RestoreAmount int    `json:"restore,omitempty"`
	TensionReduce int    `json:"tension_reduce,omitempty"`

	// Legacy field
	Heal int `json:"heal,omitempty"`
}

// Restore returns the integrity restore amount, falling back to legacy heal.
func (it *Item) Restore() int {
	if it.RestoreAmount > 0 {
		return it.RestoreAmount
	}
	return it.Heal
}

// SkillType classifies how a skill's effects are applied.
type SkillType string

const (
	SkillPassive  SkillType = "PASSIVE"
	SkillActive   SkillType = "ACTIVE"
	SkillReactive SkillType = "REACTIVE"
)

// Skill is a rankable ability. Effects are typed variants folded generically
// by the engine; combat never inspects a skill id.
type Skill struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          SkillType `json:"type"`
	MinLevel      int       `json:"min_level,omitempty"`
	MaxRank       int       `json:"max_rank"`
	Prereqs       []string  `json:"prereqs,omitempty"`
	GrantsActions []string  `json:"grants_actions,omitempty"` // ACTIVE only
	Effects       []Effect  `json:"effects,omitempty"`
}

// RigMod is an installable equipment modifier. Ownership is binary.
type RigMod struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Effects []Effect `json:"effects,omitempty"`
}

// StockRow is one purchasable entry in a shop. Exactly one of ItemID or
// ModID is set.
type StockRow struct {
	ItemID string `json:"item_id,omitempty"`
	ModID  string `json:"mod_id,omitempty"`
	Price  int    `json:"price"`
	Qty    int    `json:"qty,omitempty"` // items only
}

// Shop is a purchasable stock list, referenced by contracts for camp phases.
type Shop struct {
	ID    string     `json:"id"`
	Stock []StockRow `json:"stock"`
}

// RewardRange is an inclusive currency roll range.
type RewardRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contract is a multi-encounter run definition. If Pool is empty the target
// region's pool is used.
type Contract struct {
	ID            string        `json:"id"`
	RegionID      string        `json:"region_id"`
	MinEncounters int           `json:"min_encounters"`
	MaxEncounters int           `json:"max_encounters"`
	Pool          []SpawnWeight `json:"pool,omitempty"`
	ShopID        string        `json:"shop_id,omitempty"`
	FightReward   RewardRange   `json:"fight_reward"`
	FinalReward   RewardRange   `json:"final_reward"`
}

// XPCurve controls experience-to-next-level growth.
type XPCurve struct {
	Base   int     `json:"base"`
	Growth float64 `json:"growth"`
}

// Bundle is the complete immutable content set supplied to every engine call.
type Bundle struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Regions     []Region   `json:"regions"`
	Fish        []Fish     `json:"fish"`
	Actions     []Action   `json:"actions"`
	Items       []Item     `json:"items,omitempty"`
	Skills      []Skill    `json:"skills,omitempty"`
	RigMods     []RigMod   `json:"rig_mods,omitempty"`
	Shops       []Shop     `json:"shops,omitempty"`
	Contracts   []Contract `json:"contracts,omitempty"`
	BaseActions []string   `json:"base_actions"`
	XPCurve     XPCurve    `json:"xp_curve"`
	Tuning      *Tuning    `json:"tuning,omitempty"`
}

// Curve returns the bundle's xp curve, defaulted when absent.
func (b *Bundle) Curve() XPCurve {
	c := b.XPCurve
	if c.Base <= 0 {
		c.Base = 25
	}
	if c.Growth <= 1 {
		c.Growth = 1.35
	}
	return c
}

// Balance returns the bundle's tuning table, defaulted when absent.
func (b *Bundle) Balance() Tuning {
	if b.Tuning == nil {
		return DefaultTuning()
	}
	return b.Tuning.withDefaults()
}

// Lookup helpers. Callers treat (zero, false) as a missing reference and
// fail soft.

func (b *Bundle) RegionByID(id string) (*Region, bool) {
	for i := range b.Regions {
		if b.Regions[i].ID == id {
			return &b.Regions[i], true
		}
	}
	return nil, false
}

func (b *Bundle) FishByID(id string) (*Fish, bool) {
	for i := range b.Fish {
		if b.Fish[i].ID == id {
			return &b.Fish[i], true
		}
	}
	return nil, false
}

func (b *Bundle) ActionByID(id string) (*Action, bool) {
	for i := range b.Actions {
		if b.Actions[i].ID == id {
			return &b.Actions[i], true
		}
	}
	return nil, false
}

func (b *Bundle) ItemByID(id string) (*Item, bool) {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return &b.Items[i], true
		}
	}
	return nil, false
}

func (b *Bundle) SkillByID(id string) (*Skill, bool) {
	for i := range b.Skills {
		if b.Skills[i].ID == id {
			return &b.Skills[i], true
		}
	}
	return nil, false
}

func (b *Bundle) RigModByID(id string) (*RigMod, bool) {
	for i := range b.RigMods {
		if b.RigMods[i].ID == id {
			return &b.RigMods[i], true
		}
	}
	return nil, false
}

func (b *Bundle) ShopByID(id string) (*Shop, bool) {
	for i := range b.Shops {
		if b.Shops[i].ID == id {
			return &b.Shops[i], true
		}
	}
	return nil, false
}

func (b *Bundle) ContractByID(id string) (*Contract, bool) {
	for i := range b.Contracts {
		if b.Contracts[i].ID == id {
			return &b.Contracts[i], true
		}
	}
	return nil, false
}
