package model

import "math/big"

// Stage identifies which search stage produced a scan result.
// The letters follow the block naming of the staged search:
// single additions (A), exhaustive vector-like pairs (B), vector-like pairs
// seeded from block A hits (B′), and Higgsino-style chiral pairs (C).
type Stage int

const (
	// StageUnknown indicates a result of unknown origin.
	StageUnknown Stage = iota
	// StageSingleAddition is block A: one candidate fermion added to the base.
	StageSingleAddition
	// StageVectorLikePair is block B: an exhaustively generated L/R pair.
	StageVectorLikePair
	// StageVectorLikeFromA is block B′: the conjugate partner of a block A hit.
	StageVectorLikeFromA
	// StageChiralPair is block C: a Higgsino-style same-chirality pair.
	StageChiralPair
	// StagePhysicsSet marks a pre-built physics-motivated fermion set.
	StagePhysicsSet
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageSingleAddition:
		return "single fermion"
	case StageVectorLikePair, StageVectorLikeFromA:
		return "vector-like pair"
	case StageChiralPair:
		return "chiral pair"
	case StagePhysicsSet:
		return "physics-motivated set"
	default:
		return "unknown"
	}
}

// ScanResult is an immutable record of one passing candidate spectrum.
// It is created only by the scanner when the invariant engine reports that
// every coefficient vanishes, and is never modified afterwards.
type ScanResult struct {
	// Spectrum is the full spectrum that was tested (base plus candidates).
	Spectrum Spectrum

	// Anomalies maps coefficient names to their exact values.
	// For a recorded result every value is the exact zero rational, but the
	// full map is kept so reports can show the coefficients that were checked.
	Anomalies map[string]*big.Rat

	// AnomalyFree reports whether every coefficient vanished within tolerance.
	AnomalyFree bool

	// Description is the human-readable tag for the candidate, for example
	// "Single fermion: (3, 2)_1/6 × 1".
	Description string

	// Stage records which search block produced the result.
	Stage Stage
}
