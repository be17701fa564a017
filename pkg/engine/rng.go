package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking. Randomness
// touches exactly two call sites in the engine (fish selection on spawn and
// contract pre-roll); everything else is pure, so a seed plus position is
// enough to reproduce any run.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// draw returns a value in [0, n) from exactly one underlying source read.
// rand.Intn would break the position contract here: its rejection sampling
// can consume several source values per call, so a restored stream could
// diverge from the original at the same position.
func (r *RNG) draw(n int) int {
	r.pos++
	return int(r.src.Int63() % int64(n))
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.draw(n)
}

// Between returns a random int in [lo, hi]. Degenerate ranges collapse to lo.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.draw(hi-lo+1)
}

// WeightedIndex returns an index chosen by weighted random selection.
// Non-positive weights count as zero; an empty or all-zero list returns 0.
func (r *RNG) WeightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := r.draw(total)
	cumulative := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 { return r.pos }

// RestoreRNG recreates an RNG and advances it to the given position. Every
// tracked draw reads the source exactly once, so the restored RNG continues
// the original stream.
func RestoreRNG(seed, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
