package state

// EventKind tags the structured event describing the most recent transition.
// Events exist for UI and logging consumption only; the engine never reads
// them back on the next call.
type EventKind string

const (
	EventLog         EventKind = "log" // soft failure or rejected input
	EventSpawn       EventKind = "spawn"
	EventAction      EventKind = "action"
	EventItem        EventKind = "item"
	EventPhaseChange EventKind = "phase_change"
	EventWin         EventKind = "win"
	EventDefeat      EventKind = "defeat"
	EventRetry       EventKind = "retry"
	EventFlee        EventKind = "flee"
	EventLevelUp     EventKind = "level_up"
	EventStatSpent   EventKind = "stat_spent"
	EventSkill       EventKind = "skill"
	EventRespec      EventKind = "respec"
	EventContract    EventKind = "contract"
	EventCamp        EventKind = "camp"
	EventSummary     EventKind = "summary"
	EventPurchase    EventKind = "purchase"
)

// Event is the tagged record of what a transition did. Only fields relevant
// to the kind are populated.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message,omitempty"`

	ActionID string      `json:"action_id,omitempty"`
	ItemID   string      `json:"item_id,omitempty"`
	SkillID  string      `json:"skill_id,omitempty"`
	FishID   string      `json:"fish_id,omitempty"`
	RegionID string      `json:"region_id,omitempty"`
	Grade    TimingGrade `json:"grade,omitempty"`
	Phase    FishPhase   `json:"phase,omitempty"`

	StaminaDelta int `json:"stamina_delta,omitempty"`
	TensionDelta int `json:"tension_delta,omitempty"`
	Restored     int `json:"restored,omitempty"`
	Wear         int `json:"wear,omitempty"`
	Pressure     int `json:"pressure,omitempty"`
	XP           int `json:"xp,omitempty"`
	Levels       int `json:"levels,omitempty"`
	Reward       int `json:"reward,omitempty"`
	Price        int `json:"price,omitempty"`
}

// LogEvent builds the soft-failure event used whenever a reference is
// missing or an input is rejected: the snapshot is returned otherwise
// unchanged.
func LogEvent(msg string) *Event {
	return &Event{Kind: EventLog, Message: msg}
}
