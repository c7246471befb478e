package blur

import (
	"math"
	"testing"
)

func TestKernelZeroRadiusIsIdentity(t *testing.T) {
	c := NewCache()
	k := c.Get(0)

	if len(k.Weights) != 1 || k.Weights[0] != 1 {
		t.Errorf("weights = %v, want [1]", k.Weights)
	}
	if len(k.Offsets) != 1 || k.Offsets[0] != 0 {
		t.Errorf("offsets = %v, want [0]", k.Offsets)
	}
}

func TestKernelWeightsSumToOne(t *testing.T) {
	c := NewCache()
	for _, radius := range []int{1, 2, 5, 10, 25} {
		k := c.Get(radius)

		sum := float64(0)
		for _, w := range k.Weights {
			sum += float64(w)
		}
		if math.Abs(sum-1) > 1e-4 {
			t.Errorf("radius %d: weight sum = %v, want 1", radius, sum)
		}
	}
}

func TestKernelPairReduction(t *testing.T) {
	c := NewCache()
	radius := 4
	k := c.Get(radius)

	// A window of 2*(3r)+1 raw samples folds into ceil(n/2) taps.
	raw := 2*(radius*3) + 1
	want := (raw + 1) / 2
	if len(k.Weights) != want {
		t.Errorf("taps = %d, want %d", len(k.Weights), want)
	}
	if len(k.Weights) != len(k.Offsets) {
		t.Errorf("weights %d and offsets %d differ", len(k.Weights), len(k.Offsets))
	}
}

func TestKernelCacheReturnsSameInstance(t *testing.T) {
	c := NewCache()
	if c.Get(7) != c.Get(7) {
		t.Error("cache rebuilt a kernel for the same radius")
	}
	if c.Get(7) == c.Get(8) {
		t.Error("distinct radii share a kernel")
	}
}
