package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// Rule-level errors.
var (
	// ErrUnknownRule is returned when a named rule does not exist in the file.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnnamedRule is returned when a rule set is missing its name field.
	ErrUnnamedRule = errors.New("rule must have a name")
	// ErrUnknownSymmetryKind is returned for an unrecognized symmetry type tag.
	ErrUnknownSymmetryKind = errors.New("unknown symmetry kind")
)

// SymmetryKind discriminates symmetry requirement variants.
type SymmetryKind string

// The symmetry kinds a rule may require. Only parity carries structural
// checks today; the others are recorded and echoed for provenance.
const (
	SymmetryParity            SymmetryKind = "parity"
	SymmetryChargeConjugation SymmetryKind = "charge_conjugation"
	SymmetryFamily            SymmetryKind = "family"
	SymmetryCustodial         SymmetryKind = "custodial"
	SymmetryDiscrete          SymmetryKind = "discrete"
)

// knownSymmetryKinds is the closed set of accepted symmetry type tags.
var knownSymmetryKinds = map[SymmetryKind]bool{
	SymmetryParity:            true,
	SymmetryChargeConjugation: true,
	SymmetryFamily:            true,
	SymmetryCustodial:         true,
	SymmetryDiscrete:          true,
}

// NamePair is one left:right fermion name pairing in a parity requirement.
type NamePair struct {
	Left  string
	Right string
}

// SymmetryRequirement is a symmetry the rule expects the spectrum to carry.
// Requirements are validated post hoc via ValidateSpectrum; candidate
// generation never enforces them.
type SymmetryRequirement struct {
	Kind SymmetryKind

	// Pairs lists the name pairs a parity requirement checks.
	Pairs []NamePair

	// GroupAction and Constraints carry free-form structure for the kinds
	// without structural checks.
	GroupAction map[string]any
	Constraints map[string]any
}

// PhysicsSet is a pre-built, physics-motivated fermion set a rule tests
// directly against the base spectrum.
type PhysicsSet struct {
	Name     string
	Fermions []model.Fermion
}

// Rule is a complete scanning policy: which base spectrum to extend, which
// blocks to run, and what constraints the candidate grid obeys.
type Rule struct {
	Name         string
	Description  string
	BaseSpectrum string
	Blocks       []string

	Hypercharge *HyperchargeConstraint
	SU3         *RepConstraint
	SU2         *RepConstraint

	Symmetries  []SymmetryRequirement
	PhysicsSets []PhysicsSet

	// Metadata keeps any rule fields beyond the known schema.
	Metadata map[string]any
}

// ValidateSpectrum checks a fermion list against the rule's constraints:
// representation allow-lists, hypercharge membership, and parity pair
// completeness. It returns the full violation list; an empty list means the
// spectrum satisfies the rule.
func (r Rule) ValidateSpectrum(fermions []model.Fermion) (bool, []string, error) {
	var violations []string

	for _, f := range fermions {
		if r.SU3 != nil && !r.SU3.AllowsDim(f.SU3Rep()) {
			violations = append(violations,
				fmt.Sprintf("%s: SU(3) rep %d not allowed", f.Name(), f.SU3Rep()))
		}
		if r.SU2 != nil && !r.SU2.AllowsDim(f.SU2Rep()) {
			violations = append(violations,
				fmt.Sprintf("%s: SU(2) rep %d not allowed", f.Name(), f.SU2Rep()))
		}
		if r.Hypercharge != nil {
			ok, err := r.Hypercharge.Allows(f.Hypercharge())
			if err != nil {
				return false, nil, err
			}
			if !ok {
				violations = append(violations,
					fmt.Sprintf("%s: hypercharge %s not allowed",
						f.Name(), model.FormatHypercharge(f.Hypercharge())))
			}
		}
	}

	byName := make(map[string]model.Fermion, len(fermions))
	for _, f := range fermions {
		byName[f.Name()] = f
	}
	for _, sym := range r.Symmetries {
		if sym.Kind != SymmetryParity {
			continue
		}
		for _, pair := range sym.Pairs {
			left, leftOK := byName[pair.Left]
			right, rightOK := byName[pair.Right]
			if !leftOK || !rightOK {
				violations = append(violations,
					fmt.Sprintf("parity pair (%s, %s) incomplete", pair.Left, pair.Right))
				continue
			}
			if left.SU3Rep() != right.SU3Rep() || left.SU2Rep() != right.SU2Rep() {
				violations = append(violations,
					fmt.Sprintf("parity pair (%s, %s) has mismatched representations",
						pair.Left, pair.Right))
			}
		}
	}

	return len(violations) == 0, violations, nil
}

// parseNamePair splits a "left:right" pairing.
func parseNamePair(s string) (NamePair, error) {
	left, right, ok := strings.Cut(s, ":")
	if !ok || left == "" || right == "" {
		return NamePair{}, fmt.Errorf("%w: pair %q must be \"left:right\"", ErrMalformedConstraint, s)
	}
	return NamePair{Left: left, Right: right}, nil
}
