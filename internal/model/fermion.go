package model

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Fermion validation errors.
var (
	// ErrInvalidSU3Rep is returned when the SU(3) representation dimension
	// is not one of the supported values {1, 3, 6, 8}.
	ErrInvalidSU3Rep = errors.New("unsupported SU(3) representation")
	// ErrInvalidSU2Rep is returned when the SU(2) representation dimension
	// is not one of the supported values {1, 2, 3}.
	ErrInvalidSU2Rep = errors.New("unsupported SU(2) representation")
	// ErrInvalidChirality is returned when chirality is not +1 or -1.
	ErrInvalidChirality = errors.New("chirality must be +1 or -1")
	// ErrInvalidGenerations is returned when the generation count is not positive.
	ErrInvalidGenerations = errors.New("generations must be positive")
	// ErrInvalidHypercharge is returned when a hypercharge string cannot be
	// parsed as an exact rational number.
	ErrInvalidHypercharge = errors.New("invalid hypercharge")
)

// Chirality values. The sign convention follows the usual one for
// four-component Weyl spinors.
const (
	// LeftHanded marks a left-handed chiral fermion.
	LeftHanded = 1
	// RightHanded marks a right-handed chiral fermion.
	RightHanded = -1
)

// supportedSU3Reps lists the SU(3) representation dimensions the anomaly
// tables know about: singlet, fundamental, symmetric, adjoint.
var supportedSU3Reps = map[int]bool{1: true, 3: true, 6: true, 8: true}

// supportedSU2Reps lists the SU(2) representation dimensions the anomaly
// tables know about: singlet, doublet, triplet.
var supportedSU2Reps = map[int]bool{1: true, 2: true, 3: true}

// Fermion is an immutable value object representing one irreducible chiral
// field, possibly repeated across generations. All quantum numbers are
// validated at construction; once built, a Fermion never changes.
//
// Design decision: Fermion is immutable so that anomaly computations cached
// against a spectrum can never silently go stale. Callers that need a
// modified copy (for example a deliberately broken hypercharge assignment in
// tests) use the With* copy constructors instead of mutating fields.
type Fermion struct {
	name        string
	su3Rep      int
	su2Rep      int
	hypercharge *big.Rat
	chirality   int
	generations int
}

// NewFermion creates a Fermion with the given quantum numbers and validates
// every field. The hypercharge is copied, so callers may reuse the *big.Rat.
// Validation failures identify the offending field and fermion name so that
// batch generation stages can skip individual bad candidates.
func NewFermion(name string, su3Rep, su2Rep int, hypercharge *big.Rat, chirality, generations int) (Fermion, error) {
	if !supportedSU3Reps[su3Rep] {
		return Fermion{}, fmt.Errorf("fermion %q: %w: %d", name, ErrInvalidSU3Rep, su3Rep)
	}
	if !supportedSU2Reps[su2Rep] {
		return Fermion{}, fmt.Errorf("fermion %q: %w: %d", name, ErrInvalidSU2Rep, su2Rep)
	}
	if chirality != LeftHanded && chirality != RightHanded {
		return Fermion{}, fmt.Errorf("fermion %q: %w: got %d", name, ErrInvalidChirality, chirality)
	}
	if generations < 1 {
		return Fermion{}, fmt.Errorf("fermion %q: %w: got %d", name, ErrInvalidGenerations, generations)
	}
	if hypercharge == nil {
		hypercharge = new(big.Rat)
	}
	return Fermion{
		name:        name,
		su3Rep:      su3Rep,
		su2Rep:      su2Rep,
		hypercharge: new(big.Rat).Set(hypercharge),
		chirality:   chirality,
		generations: generations,
	}, nil
}

// MustFermion is like NewFermion but panics on validation failure.
// It is intended for fixed, known-good spectra such as the Standard Model
// builder and for tests.
func MustFermion(name string, su3Rep, su2Rep int, hypercharge *big.Rat, chirality, generations int) Fermion {
	f, err := NewFermion(name, su3Rep, su2Rep, hypercharge, chirality, generations)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field identifier. Names are used for display and for the
// "new versus base" set difference during export; uniqueness within a
// spectrum is conventional, not enforced.
func (f Fermion) Name() string { return f.name }

// SU3Rep returns the SU(3) representation dimension.
func (f Fermion) SU3Rep() int { return f.su3Rep }

// SU2Rep returns the SU(2) representation dimension.
func (f Fermion) SU2Rep() int { return f.su2Rep }

// Hypercharge returns a copy of the exact U(1)_Y charge.
// A copy is returned so callers cannot mutate the fermion through it.
func (f Fermion) Hypercharge() *big.Rat {
	if f.hypercharge == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(f.hypercharge)
}

// Chirality returns +1 for left-handed and -1 for right-handed.
func (f Fermion) Chirality() int { return f.chirality }

// Generations returns the multiplicity of identical copies.
func (f Fermion) Generations() int { return f.generations }

// WithName returns a copy of the fermion with a different name.
func (f Fermion) WithName(name string) Fermion {
	c := f
	c.name = name
	c.hypercharge = f.Hypercharge()
	return c
}

// WithHypercharge returns a copy of the fermion with a different hypercharge.
// This is how callers build deliberately broken variants without mutation.
func (f Fermion) WithHypercharge(y *big.Rat) Fermion {
	c := f
	c.hypercharge = new(big.Rat).Set(y)
	return c
}

// WithChirality returns a copy of the fermion with the given chirality.
// Passing an invalid chirality leaves the copy unchanged; candidate
// generation only ever flips between the two valid values.
func (f Fermion) WithChirality(chirality int) Fermion {
	if chirality != LeftHanded && chirality != RightHanded {
		return f
	}
	c := f
	c.chirality = chirality
	c.hypercharge = f.Hypercharge()
	return c
}

// Conjugate returns the chirality-flipped partner of the fermion with the
// given name. Quantum numbers other than chirality are unchanged, so adding
// a fermion together with its conjugate forms a vector-like pair.
func (f Fermion) Conjugate(name string) Fermion {
	c := f.WithChirality(-f.chirality)
	c.name = name
	return c
}

// SameQuantumNumbers reports whether two fermions carry identical
// representations and hypercharge, ignoring name, chirality, and generations.
func (f Fermion) SameQuantumNumbers(other Fermion) bool {
	return f.su3Rep == other.su3Rep &&
		f.su2Rep == other.su2Rep &&
		f.hypercharge.Cmp(other.hypercharge) == 0
}

// Signature returns the machine-readable tuple form used in export files:
// "(su3,su2,hypercharge,chirality)".
func (f Fermion) Signature() string {
	return fmt.Sprintf("(%d,%d,%s,%d)", f.su3Rep, f.su2Rep, FormatHypercharge(f.hypercharge), f.chirality)
}

// String renders the fermion as "name: (su3, su2)_Y × g gen" for reports.
func (f Fermion) String() string {
	return fmt.Sprintf("%s: (%d, %d)_%s × %d gen",
		f.name, f.su3Rep, f.su2Rep, FormatHypercharge(f.hypercharge), f.generations)
}

// Descriptor returns the serializable descriptor form of the fermion.
func (f Fermion) Descriptor() FermionDescriptor {
	return FermionDescriptor{
		Name:        f.name,
		SU3Rep:      f.su3Rep,
		SU2Rep:      f.su2Rep,
		Hypercharge: FormatHypercharge(f.hypercharge),
		Chirality:   f.chirality,
		Generations: f.generations,
	}
}

// ParseHypercharge parses an exact rational from its string form.
// Accepted forms are "n/d" and plain integers, with an optional sign.
// Floats are rejected: exactness is the whole point.
func ParseHypercharge(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidHypercharge)
	}
	if strings.ContainsAny(s, ".eE") {
		return nil, fmt.Errorf("%w: %q is not an exact rational", ErrInvalidHypercharge, s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHypercharge, s)
	}
	return r, nil
}

// FormatHypercharge renders an exact rational as "n/d", or "n" when the
// denominator is 1. Rendering through here (never through float conversion)
// keeps serialized spectra exact and canonical.
func FormatHypercharge(y *big.Rat) string {
	if y == nil {
		return "0"
	}
	if y.IsInt() {
		return y.Num().String()
	}
	return y.RatString()
}
