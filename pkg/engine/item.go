package engine

import (
	"fmt"
	"time"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// UseItem restores integrity and/or reduces tension from item data and
// decrements inventory. Unlike ApplyAction it does not check whose turn it
// is: an item goes in any time the line hasn't snapped, but the fish still
// gets its automatic response while a fight is live.
func UseItem(b *content.Bundle, s *state.Snapshot, itemID string) *state.Snapshot {
	if s.Combat != nil && s.Combat.Outcome == state.OutcomeDefeatPrompt {
		return reject(s, "line snapped: retry or flee first")
	}
	item, ok := b.ItemByID(itemID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown item %q", itemID))
	}
	if s.Player.Inventory[itemID] <= 0 {
		return reject(s, fmt.Sprintf("no %q in inventory", itemID))
	}

	t := b.Balance()
	out := s.Clone()
	out.Player.Inventory[itemID]--
	if out.Player.Inventory[itemID] <= 0 {
		delete(out.Player.Inventory, itemID)
	}

	maxInteg := state.MaxIntegrity(t, out.Player.Level, out.Player.Stats.Durability)
	restored := 0
	if r := item.Restore(); r > 0 {
		before := out.Player.Integrity
		out.Player.Integrity = clamp(out.Player.Integrity+r, 0, maxInteg)
		restored = out.Player.Integrity - before
	}
	tensionBefore := out.Player.Tension
	if item.TensionReduce > 0 {
		out.Player.Tension = clampTension(t, out.Player.Tension-item.TensionReduce)
	}

	ev := state.Event{
		Kind:         state.EventItem,
		ItemID:       itemID,
		TensionDelta: out.Player.Tension - tensionBefore,
		Restored:     restored,
	}

	if out.Combat != nil && out.Combat.Stamina > 0 {
		fish, ok := b.FishByID(out.Combat.FishID)
		if !ok {
			return reject(s, fmt.Sprintf("unknown fish %q", out.Combat.FishID))
		}
		eff := EffectiveStats(b, out)
		totals := CollectEffects(b, out)
		fishTurn(b, t, out, fish, totals, eff, &ev)
	}

	out.LastEvent = &ev
	out.UpdatedAt = time.Now()
	return out
}
