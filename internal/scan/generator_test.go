package scan

import (
	"math/big"
	"testing"
)

// TestBlockARepPairs tests the curated representation list.
func TestBlockARepPairs(t *testing.T) {
	t.Parallel()

	if len(BlockARepPairs) != 7 {
		t.Fatalf("got %d pairs, expected 7", len(BlockARepPairs))
	}

	want := map[RepPair]bool{
		{1, 1}: true, {1, 2}: true, {1, 3}: true,
		{3, 1}: true, {3, 2}: true,
		{6, 1}: true, {8, 1}: true,
	}
	for _, pair := range BlockARepPairs {
		if !want[pair] {
			t.Errorf("unexpected pair (%d, %d)", pair.SU3, pair.SU2)
		}
	}
}

// TestGridK tests the block A numerator grid.
func TestGridK(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		ks := GridK(HyperchargeConfig{})
		// k/6 with |k| <= 6 and |Y| <= 1 keeps all thirteen values.
		if len(ks) != 13 {
			t.Fatalf("got %d values, expected 13", len(ks))
		}
		if ks[0] != -6 || ks[len(ks)-1] != 6 {
			t.Errorf("got range [%d, %d], expected [-6, 6]", ks[0], ks[len(ks)-1])
		}
	})

	t.Run("wide k_max clipped by the block cutoff", func(t *testing.T) {
		t.Parallel()
		ks := GridK(HyperchargeConfig{KMax: 12})
		// |Y| <= 1 still clips at |k| = 6.
		if len(ks) != 13 {
			t.Fatalf("got %d values, expected 13", len(ks))
		}
	})

	t.Run("custom cutoff", func(t *testing.T) {
		t.Parallel()
		ks := GridK(HyperchargeConfig{AbsYMax: 0.5})
		// |k/6| <= 1/2 keeps k in [-3, 3].
		if len(ks) != 7 {
			t.Fatalf("got %d values, expected 7", len(ks))
		}
	})
}

// TestHyperchargeValues tests the three generation policies.
func TestHyperchargeValues(t *testing.T) {
	t.Parallel()

	t.Run("explicit values win and are deduplicated", func(t *testing.T) {
		t.Parallel()
		cfg := HyperchargeConfig{
			Values: []*big.Rat{
				big.NewRat(1, 2),
				big.NewRat(-1, 2),
				big.NewRat(2, 4),
				big.NewRat(1, 1),
			},
			KMax: 3,
		}
		values := HyperchargeValues(cfg, DefaultAbsYMax)
		if len(values) != 3 {
			t.Fatalf("got %d values %v, expected 3", len(values), values)
		}
		if values[0].Cmp(big.NewRat(-1, 2)) != 0 {
			t.Errorf("got first value %s, expected -1/2", values[0])
		}
		if values[2].Cmp(big.NewRat(1, 1)) != 0 {
			t.Errorf("got last value %s, expected 1", values[2])
		}
	})

	t.Run("rational range over denominators", func(t *testing.T) {
		t.Parallel()
		cfg := HyperchargeConfig{
			RangeMin:     -2,
			RangeMax:     2,
			Denominators: []int{1, 2},
		}
		values := HyperchargeValues(cfg, DefaultAbsYMax)
		// {-2..2} ∪ {-1, -1/2, 0, 1/2, 1} deduplicates to nine values.
		if len(values) != 9 {
			t.Fatalf("got %d values %v, expected 9", len(values), values)
		}
		for i := 1; i < len(values); i++ {
			if values[i-1].Cmp(values[i]) >= 0 {
				t.Fatalf("values not strictly ascending: %v", values)
			}
		}
	})

	t.Run("zero denominator is skipped", func(t *testing.T) {
		t.Parallel()
		cfg := HyperchargeConfig{
			RangeMin:     0,
			RangeMax:     1,
			Denominators: []int{0, 2},
		}
		values := HyperchargeValues(cfg, DefaultAbsYMax)
		if len(values) != 2 {
			t.Fatalf("got %d values %v, expected 2", len(values), values)
		}
	})

	t.Run("grid with block cutoff", func(t *testing.T) {
		t.Parallel()
		values := HyperchargeValues(HyperchargeConfig{}, DefaultAbsYMax)
		// Default k_max 6 and |Y| <= 2 keep all thirteen grid points.
		if len(values) != 13 {
			t.Fatalf("got %d values, expected 13", len(values))
		}
	})

	t.Run("grid with explicit cutoff", func(t *testing.T) {
		t.Parallel()
		values := HyperchargeValues(HyperchargeConfig{AbsYMax: 0.5}, DefaultAbsYMax)
		if len(values) != 7 {
			t.Fatalf("got %d values, expected 7", len(values))
		}
	})
}
