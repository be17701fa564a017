package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// Buy purchases one stock row from a shop by the referenced item or mod id.
// Items increment the inventory count; rig mods are binary-owned and append
// to the installed set.
func Buy(b *content.Bundle, s *state.Snapshot, shopID, refID string) *state.Snapshot {
	shop, ok := b.ShopByID(shopID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown shop %q", shopID))
	}

	var row *content.StockRow
	for i := range shop.Stock {
		if shop.Stock[i].ItemID == refID || shop.Stock[i].ModID == refID {
			row = &shop.Stock[i]
			break
		}
	}
	if row == nil {
		return reject(s, fmt.Sprintf("shop %q does not stock %q", shopID, refID))
	}
	if s.Currency < row.Price {
		return reject(s, fmt.Sprintf("cannot afford %q (%d)", refID, row.Price))
	}

	out := s.Clone()
	ev := state.Event{Kind: state.EventPurchase, Price: row.Price}

	switch {
	case row.ItemID != "":
		if _, ok := b.ItemByID(row.ItemID); !ok {
			return reject(s, fmt.Sprintf("shop %q stocks unknown item %q", shopID, row.ItemID))
		}
		qty := row.Qty
		if qty < 1 {
			qty = 1
		}
		if out.Player.Inventory == nil {
			out.Player.Inventory = make(map[string]int)
		}
		out.Player.Inventory[row.ItemID] += qty
		ev.ItemID = row.ItemID

	case row.ModID != "":
		if _, ok := b.RigModByID(row.ModID); !ok {
			return reject(s, fmt.Sprintf("shop %q stocks unknown rig mod %q", shopID, row.ModID))
		}
		if slices.Contains(out.TemporaryMods, row.ModID) {
			return reject(s, fmt.Sprintf("rig mod %q is already installed", row.ModID))
		}
		out.TemporaryMods = append(out.TemporaryMods, row.ModID)
		ev.Message = row.ModID

	default:
		return reject(s, fmt.Sprintf("shop %q has a malformed stock row", shopID))
	}

	out.Currency -= row.Price
	out.LastEvent = &ev
	out.UpdatedAt = time.Now()
	return out
}
