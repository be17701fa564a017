package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebwren/reel-engine/pkg/state"
)

func TestUseItemOutOfCombat(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s.Player.Integrity = 40
	s.Player.Inventory["splice_kit"] = 2

	out := UseItem(b, s, "splice_kit")
	assert.Equal(t, 65, out.Player.Integrity)
	assert.Equal(t, 1, out.Player.Inventory["splice_kit"])
	require.NotNil(t, out.LastEvent)
	assert.Equal(t, state.EventItem, out.LastEvent.Kind)
	assert.Equal(t, 25, out.LastEvent.Restored)

	// Input snapshot is untouched.
	assert.Equal(t, 40, s.Player.Integrity)
	assert.Equal(t, 2, s.Player.Inventory["splice_kit"])
}

func TestUseItemRestoreCapsAtMax(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s.Player.Integrity = 70 // max is 80 at level 1
	s.Player.Inventory["splice_kit"] = 1

	out := UseItem(b, s, "splice_kit")
	assert.Equal(t, 80, out.Player.Integrity)
	assert.Equal(t, 10, out.LastEvent.Restored)
}

func TestUseItemLastOneLeavesInventoryClean(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s.Player.Inventory["wax"] = 1
	s.Player.Tension = 30

	out := UseItem(b, s, "wax")
	assert.Equal(t, 10, out.Player.Tension)
	_, ok := out.Player.Inventory["wax"]
	assert.False(t, ok, "spent item should be removed, not zeroed")
}

func TestUseItemMidFightGivesFishItsTurn(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)
	s.Player.Inventory["wax"] = 1
	s.Player.Tension = 30
	s = SpawnFight(b, s, "harbor", NewRNG(1))
	require.NotNil(t, s.Combat)

	out := UseItem(b, s, "wax")
	// Wax drops tension to 10, then the perch pulls: 10 base pressure at the
	// 1.2 aggressive multiplier is 12.
	assert.Equal(t, 22, out.Player.Tension)
	assert.Equal(t, 2, out.Combat.TurnCount)
	assert.Equal(t, state.TurnPlayer, out.Combat.Turn, "player keeps initiative after the response")
}

func TestUseItemRejections(t *testing.T) {
	b := testBundle()
	s := newTestSnapshot(b)

	out := UseItem(b, s, "wax")
	assert.Equal(t, state.EventLog, out.LastEvent.Kind, "empty inventory")

	out = UseItem(b, s, "elixir")
	assert.Equal(t, state.EventLog, out.LastEvent.Kind, "unknown item")

	s.Player.Inventory["wax"] = 1
	s = SpawnFight(b, s, "harbor", NewRNG(1))
	require.NotNil(t, s.Combat)
	s.Combat.Outcome = state.OutcomeDefeatPrompt
	out = UseItem(b, s, "wax")
	assert.Equal(t, state.EventLog, out.LastEvent.Kind, "defeat prompt blocks items")
	assert.Equal(t, 1, out.Player.Inventory["wax"])
}
