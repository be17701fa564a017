package engine

import "testing"

func TestRNGSameSeedSameStream(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 20; i++ {
		if got, want := a.Intn(100), b.Intn(100); got != want {
			t.Fatalf("draw %d diverged: %d vs %d", i, got, want)
		}
	}
	if a.Position() != 20 || b.Position() != 20 {
		t.Errorf("positions = %d/%d", a.Position(), b.Position())
	}
}

func TestBetween(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 50; i++ {
		v := r.Between(2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("out of range: %d", v)
		}
	}
	// Degenerate ranges collapse without consuming a draw.
	pos := r.Position()
	if v := r.Between(5, 5); v != 5 {
		t.Errorf("got %d, want 5", v)
	}
	if v := r.Between(9, 2); v != 9 {
		t.Errorf("got %d, want 9", v)
	}
	if r.Position() != pos {
		t.Errorf("position moved on degenerate range")
	}
}

func TestWeightedIndex(t *testing.T) {
	r := NewRNG(11)

	// Zero and negative weights are never picked.
	for i := 0; i < 50; i++ {
		if got := r.WeightedIndex([]int{0, 5, -2}); got != 1 {
			t.Fatalf("picked index %d", got)
		}
	}
	if got := r.WeightedIndex(nil); got != 0 {
		t.Errorf("empty list: %d", got)
	}
	if got := r.WeightedIndex([]int{0, 0}); got != 0 {
		t.Errorf("all-zero list: %d", got)
	}
}

func TestRestoreRNGContinuesStream(t *testing.T) {
	orig := NewRNG(42)
	// Mixed draw kinds, each consuming one source read.
	orig.Intn(100)
	orig.Between(10, 20)
	orig.WeightedIndex([]int{3, 1, 4})

	restored := RestoreRNG(orig.Seed(), orig.Position())
	for i := 0; i < 20; i++ {
		if got, want := restored.Intn(1000), orig.Intn(1000); got != want {
			t.Fatalf("draw %d after restore diverged: %d vs %d", i, got, want)
		}
	}
}

func TestRestoreRNGPosition(t *testing.T) {
	r := RestoreRNG(42, 5)
	if r.Seed() != 42 {
		t.Errorf("seed = %d", r.Seed())
	}
	if r.Position() != 5 {
		t.Errorf("position = %d", r.Position())
	}
}
