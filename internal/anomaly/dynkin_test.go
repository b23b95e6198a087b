package anomaly

import (
	"math/big"
	"testing"
)

// TestSU2Dynkin tests the SU(2) Dynkin index table and its closed form.
func TestSU2Dynkin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		dimension int
		expected  *big.Rat
	}{
		{"singlet", 1, new(big.Rat)},
		{"doublet", 2, big.NewRat(1, 2)},
		{"triplet", 3, big.NewRat(2, 1)},
		{"quartet via closed form", 4, big.NewRat(5, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SU2Dynkin(tc.dimension); got.Cmp(tc.expected) != 0 {
				t.Errorf("SU2Dynkin(%d) = %s, expected %s", tc.dimension, got, tc.expected)
			}
		})
	}
}

// TestSU2Cubic tests that the cubic coefficient vanishes for every dimension.
func TestSU2Cubic(t *testing.T) {
	t.Parallel()

	for _, dimension := range []int{1, 2, 3, 5} {
		if got := SU2Cubic(dimension); got.Sign() != 0 {
			t.Errorf("SU2Cubic(%d) = %s, expected 0", dimension, got)
		}
	}
}

// TestSU3Dynkin tests the SU(3) Dynkin index table.
func TestSU3Dynkin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		dimension int
		expected  *big.Rat
	}{
		{"singlet", 1, new(big.Rat)},
		{"fundamental", 3, big.NewRat(1, 2)},
		{"symmetric", 6, big.NewRat(5, 2)},
		{"adjoint", 8, big.NewRat(3, 1)},
		{"unknown dimension", 15, new(big.Rat)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SU3Dynkin(tc.dimension); got.Cmp(tc.expected) != 0 {
				t.Errorf("SU3Dynkin(%d) = %s, expected %s", tc.dimension, got, tc.expected)
			}
		})
	}
}

// TestDynkinValuesAreFresh tests that table lookups never alias, so callers
// can accumulate into returned values safely.
func TestDynkinValuesAreFresh(t *testing.T) {
	t.Parallel()

	a := SU3Dynkin(3)
	a.SetInt64(42)
	if got := SU3Dynkin(3); got.Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("table value changed to %s after caller mutation", got)
	}
}
