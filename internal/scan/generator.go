package scan

import (
	"math"
	"math/big"
	"sort"
)

// RepPair is one (SU(3), SU(2)) representation dimension combination.
type RepPair struct {
	SU3 int
	SU2 int
}

// BlockARepPairs is the curated list of representation pairs block A scans,
// rather than the full cross product: the physically common combinations of
// color singlets/triplets with small SU(2) multiplets, plus the color sextet
// and octet singlets.
var BlockARepPairs = []RepPair{
	{1, 1}, {1, 2}, {1, 3},
	{3, 1}, {3, 2},
	{6, 1}, {8, 1},
}

// HyperchargeValues generates the hypercharge values to test under the given
// policy. blockAbsYMax is the block's default |Y| cutoff, applied when the
// grid policy is active and the configuration does not set its own.
//
// Values are deduplicated and returned in ascending order so that runs are
// reproducible candidate-for-candidate.
func HyperchargeValues(cfg HyperchargeConfig, blockAbsYMax float64) []*big.Rat {
	var values []*big.Rat

	switch {
	case len(cfg.Values) > 0:
		values = append(values, cfg.Values...)

	case len(cfg.Denominators) > 0:
		// Rational range: every numerator/denominator combination in range.
		for _, den := range cfg.Denominators {
			if den == 0 {
				continue
			}
			for num := cfg.RangeMin; num <= cfg.RangeMax; num++ {
				values = append(values, big.NewRat(int64(num), int64(den)))
			}
		}

	default:
		kMax := cfg.KMax
		if kMax == 0 {
			kMax = DefaultKMax
		}
		absMax := cfg.AbsYMax
		if absMax == 0 {
			absMax = blockAbsYMax
		}
		for k := -kMax; k <= kMax; k++ {
			y := big.NewRat(int64(k), GridDenominator)
			approx, _ := y.Float64()
			if math.Abs(approx) <= absMax {
				values = append(values, y)
			}
		}
	}

	return dedupeSorted(values)
}

// GridK returns the numerators k of the block A grid Y = k/6, filtered by
// the block's |Y| cutoff. Block A keys candidate names and tags by k, so it
// iterates the integers rather than the rationals.
func GridK(cfg HyperchargeConfig) []int {
	kMax := cfg.KMax
	if kMax == 0 {
		kMax = DefaultKMax
	}
	absMax := cfg.AbsYMax
	if absMax == 0 {
		absMax = BlockAAbsYMax
	}
	var ks []int
	for k := -kMax; k <= kMax; k++ {
		y, _ := big.NewRat(int64(k), GridDenominator).Float64()
		if math.Abs(y) <= absMax {
			ks = append(ks, k)
		}
	}
	return ks
}

// dedupeSorted removes duplicate rationals and sorts ascending.
func dedupeSorted(values []*big.Rat) []*big.Rat {
	sort.Slice(values, func(i, j int) bool { return values[i].Cmp(values[j]) < 0 })
	out := values[:0]
	for i, v := range values {
		if i == 0 || v.Cmp(out[len(out)-1]) != 0 {
			out = append(out, v)
		}
	}
	return out
}
