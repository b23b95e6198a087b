package scan

import (
	"math/big"
	"slices"
)

// Default configuration values. These mirror the grid the search was
// designed around: hypercharges on the k/6 lattice with |k| ≤ 6.
const (
	// DefaultKMax is the default half-width of the Y = k/6 hypercharge grid.
	DefaultKMax = 6

	// DefaultAbsYMax is the default |Y| cutoff for the exhaustive pair grid.
	DefaultAbsYMax = 2.0

	// BlockAAbsYMax is the tighter |Y| cutoff used by block A. Single chiral
	// additions with large hypercharge cannot cancel the cubic trace anyway,
	// so the block trims them up front.
	BlockAAbsYMax = 1.0

	// GridDenominator is the denominator of the standard hypercharge lattice.
	GridDenominator = 6
)

// Block identifies one search stage.
type Block string

// The four search blocks. BlockBPrime is enabled through
// Config.SeedPairsFromBlockA rather than the Blocks list, matching the
// template format where "B'" is a flag, not a listed block.
const (
	BlockA      Block = "A"
	BlockB      Block = "B"
	BlockBPrime Block = "B'"
	BlockC      Block = "C"
)

// HyperchargeConfig selects how candidate hypercharge values are generated.
// Exactly one of the three policies applies, checked in order: an explicit
// value list wins, then a numerator range with denominators, then the grid.
type HyperchargeConfig struct {
	// Values is an explicit list of hypercharges to test. When non-empty it
	// overrides the grid.
	Values []*big.Rat

	// RangeMin and RangeMax bound the numerator sweep of the rational-range
	// policy; Denominators lists the denominators to combine with. The policy
	// is active when Denominators is non-empty.
	RangeMin, RangeMax int
	Denominators       []int

	// KMax is the half-width of the Y = k/6 grid. Zero means DefaultKMax.
	KMax int

	// AbsYMax filters grid values by absolute value. Zero means the block
	// default (BlockAAbsYMax for block A, DefaultAbsYMax elsewhere).
	AbsYMax float64
}

// Config is the read-only knob set consumed by the candidate generator and
// the scanner. Build it once per run, directly or via the rule layer.
type Config struct {
	// Hypercharge selects the hypercharge generation policy.
	Hypercharge HyperchargeConfig `json:"hypercharge"`

	// SU3Reps and SU2Reps restrict the representation dimensions tested by
	// the exhaustive block. Empty means all dimensions the fermion validator
	// accepts: {1, 3, 6, 8} and {1, 2, 3}.
	SU3Reps []int `json:"su3_rep,omitempty"`
	SU2Reps []int `json:"su2_rep,omitempty"`

	// Blocks lists the enabled stages. Empty means A, B, and C.
	Blocks []Block `json:"enabled_blocks,omitempty"`

	// SeedPairsFromBlockA enables block B′. Most runs want it, so the
	// zero-value Config (built by DefaultConfig) enables it.
	SeedPairsFromBlockA bool `json:"scan_block_a_pairs"`

	// Limit caps the total number of anomaly-free hits; the scanner checks
	// it after each completed block, never mid-block. Zero means no limit.
	Limit int `json:"limit,omitempty"`

	// Workers bounds the number of goroutines evaluating candidates in the
	// exhaustive block. Values below 2 mean sequential evaluation, which
	// also keeps hit order deterministic.
	Workers int `json:"workers,omitempty"`

	// Tolerance for the cancellation judgment. Zero means the engine default.
	Tolerance float64 `json:"tolerance,omitempty"`

	// Metadata carries free-form provenance, such as the rule that produced
	// this configuration. Echoed into the run export, never interpreted.
	Metadata map[string]string `json:"rule_metadata,omitempty"`
}

// DefaultConfig returns the configuration for a full A/B/B′/C scan over the
// default grids.
func DefaultConfig() Config {
	return Config{
		Blocks:              []Block{BlockA, BlockB, BlockC},
		SeedPairsFromBlockA: true,
	}
}

// QuickConfig returns a reduced configuration for fast exploratory scans:
// color singlets and triplets, SU(2) singlets and doublets, k/6 grid with
// |k| ≤ 3.
func QuickConfig() Config {
	cfg := DefaultConfig()
	cfg.SU3Reps = []int{1, 3}
	cfg.SU2Reps = []int{1, 2}
	cfg.Hypercharge.KMax = 3
	return cfg
}

// BlockEnabled reports whether the given block is enabled.
// An empty Blocks list enables A, B, and C; block B′ is governed by
// SeedPairsFromBlockA instead.
func (c Config) BlockEnabled(b Block) bool {
	if b == BlockBPrime {
		return c.SeedPairsFromBlockA
	}
	if len(c.Blocks) == 0 {
		return b == BlockA || b == BlockB || b == BlockC
	}
	return slices.Contains(c.Blocks, b)
}

// SU3Dimensions returns the SU(3) representation dimensions to scan.
func (c Config) SU3Dimensions() []int {
	if len(c.SU3Reps) > 0 {
		return c.SU3Reps
	}
	return []int{1, 3, 6, 8}
}

// SU2Dimensions returns the SU(2) representation dimensions to scan.
func (c Config) SU2Dimensions() []int {
	if len(c.SU2Reps) > 0 {
		return c.SU2Reps
	}
	return []int{1, 2, 3}
}
