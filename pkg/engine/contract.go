package engine

import (
	"fmt"
	"time"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// StartContract begins a multi-encounter run. The entire encounter sequence
// and every reward roll is resolved here and stored verbatim in the
// snapshot, so a persisted run replays identically after reload; no RNG is
// touched again until the next contract starts.
func StartContract(b *content.Bundle, s *state.Snapshot, contractID string, rng *RNG) *state.Snapshot {
	if s.Combat != nil {
		return reject(s, "cannot start a contract mid-fight")
	}
	if s.Contract != nil {
		return reject(s, "a contract is already in progress")
	}
	def, ok := b.ContractByID(contractID)
	if !ok {
		return reject(s, fmt.Sprintf("unknown contract %q", contractID))
	}
	region, ok := b.RegionByID(def.RegionID)
	if !ok {
		return reject(s, fmt.Sprintf("contract %q references unknown region %q", contractID, def.RegionID))
	}
	if s.Player.Level < region.MinLevel {
		return reject(s, fmt.Sprintf("region %q requires level %d", region.ID, region.MinLevel))
	}

	pool := def.Pool
	if len(pool) == 0 {
		pool = region.Pool
	}
	if len(pool) == 0 {
		return reject(s, fmt.Sprintf("contract %q has no encounter pool", contractID))
	}

	count := rng.Between(def.MinEncounters, def.MaxEncounters)
	if count < 1 {
		count = 1
	}
	weights := make([]int, len(pool))
	for i, sw := range pool {
		weights[i] = sw.Weight
	}

	encounters := make([]state.Encounter, count)
	rewards := make([]int, count)
	// Tactics sweetens every reward roll a little.
	bonus := s.Player.Stats.Tactics / 3
	for i := 0; i < count; i++ {
		encounters[i] = state.Encounter{
			RegionID: region.ID,
			FishID:   pool[rng.WeightedIndex(weights)].FishID,
		}
		rewards[i] = rng.Between(def.FightReward.Min, def.FightReward.Max) + bonus
	}
	final := rng.Between(def.FinalReward.Min, def.FinalReward.Max) + bonus

	out := s.Clone()
	out.Contract = &state.ContractRun{
		ContractID:   def.ID,
		RegionID:     region.ID,
		Encounters:   encounters,
		FightRewards: rewards,
		FinalReward:  final,
		Index:        0,
		Phase:        state.ContractFight,
	}
	out.LastEvent = &state.Event{
		Kind:     state.EventContract,
		RegionID: region.ID,
		Message:  def.ID,
	}
	out.UpdatedAt = time.Now()

	// The first encounter spawns immediately; the sequence is already
	// fixed, so this draws nothing.
	first := encounters[0]
	spawned := spawn(b, out, first.RegionID, first.FishID)
	if spawned.Combat == nil {
		return reject(s, fmt.Sprintf("contract %q references unknown fish %q", contractID, first.FishID))
	}
	spawned.LastEvent = &state.Event{
		Kind:     state.EventContract,
		RegionID: region.ID,
		FishID:   first.FishID,
		Message:  def.ID,
	}
	return spawned
}

// AdvanceContract moves from camp into the next pre-rolled fight. It is
// deterministic: the encounter was fixed at contract start.
func AdvanceContract(b *content.Bundle, s *state.Snapshot) *state.Snapshot {
	cr := s.Contract
	if cr == nil {
		return reject(s, "no contract in progress")
	}
	if cr.Phase != state.ContractCamp {
		return reject(s, fmt.Sprintf("cannot advance from phase %s", cr.Phase))
	}
	if s.Combat != nil {
		return reject(s, "a fight is already in progress")
	}

	next := cr.Index + 1
	if next >= len(cr.Encounters) {
		return reject(s, "no encounters remain")
	}

	out := s.Clone()
	out.Contract.Index = next
	out.Contract.Phase = state.ContractFight

	enc := out.Contract.Encounters[next]
	spawned := spawn(b, out, enc.RegionID, enc.FishID)
	if spawned.Combat == nil {
		return reject(s, fmt.Sprintf("contract references unknown fish %q", enc.FishID))
	}
	return spawned
}

// FinishContract collects the summary and clears the run. Earned currency
// was already credited as the fights resolved.
func FinishContract(b *content.Bundle, s *state.Snapshot) *state.Snapshot {
	cr := s.Contract
	if cr == nil {
		return reject(s, "no contract in progress")
	}
	if cr.Phase != state.ContractSummary {
		return reject(s, fmt.Sprintf("contract is still in phase %s", cr.Phase))
	}

	out := s.Clone()
	out.LastEvent = &state.Event{
		Kind:    state.EventSummary,
		Message: cr.ContractID,
		Reward:  cr.Earned,
	}
	out.Contract = nil
	out.UpdatedAt = time.Now()
	return out
}
