package rule

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// Constraint parsing errors.
var (
	// ErrUnknownConstraintKind is returned for an unrecognized constraint type tag.
	ErrUnknownConstraintKind = errors.New("unknown constraint kind")
	// ErrMalformedConstraint is returned when a constraint is missing the
	// fields its kind requires.
	ErrMalformedConstraint = errors.New("malformed constraint")
)

// ConstraintKind discriminates the hypercharge constraint variants.
type ConstraintKind string

// The closed set of hypercharge constraint kinds.
const (
	// KindExact lists the exact values to test.
	KindExact ConstraintKind = "exact"
	// KindSet is an unordered collection of allowed values; generation-wise
	// identical to KindExact.
	KindSet ConstraintKind = "set"
	// KindInteger sweeps the integers of a closed range.
	KindInteger ConstraintKind = "integer"
	// KindRational combines a numerator range with a set of denominators.
	KindRational ConstraintKind = "rational"
	// KindGrid is the symmetric k/denominator lattice with |k| ≤ k_max.
	KindGrid ConstraintKind = "grid"
	// KindRange discretizes a continuous range using common denominators,
	// keeping only values inside the range bounds.
	KindRange ConstraintKind = "range"
)

// HyperchargeConstraint is the tagged-variant hypercharge specification.
// Only the fields relevant to Kind are populated.
type HyperchargeConstraint struct {
	Kind ConstraintKind

	// Values carries the explicit list for KindExact and KindSet.
	Values []*big.Rat

	// Lo and Hi bound KindInteger, KindRational, and KindRange.
	Lo, Hi *big.Rat

	// Denominators applies to KindRational and KindRange.
	Denominators []int

	// KMax and Denominator specify the KindGrid lattice.
	KMax        int
	Denominator int

	// Exclude lists values removed after generation, whatever the kind.
	Exclude []*big.Rat
}

// Generate produces the allowed hypercharge values for the constraint,
// exclusions applied, deduplicated, in ascending order.
func (c HyperchargeConstraint) Generate() ([]*big.Rat, error) {
	var values []*big.Rat

	switch c.Kind {
	case KindExact, KindSet:
		values = append(values, c.Values...)

	case KindInteger:
		if c.Lo == nil || c.Hi == nil {
			return nil, fmt.Errorf("%w: integer constraint requires a range", ErrMalformedConstraint)
		}
		lo, hi := ratCeil(c.Lo), ratFloor(c.Hi)
		for n := lo; n <= hi; n++ {
			values = append(values, big.NewRat(n, 1))
		}

	case KindRational, KindRange:
		if c.Lo == nil || c.Hi == nil {
			return nil, fmt.Errorf("%w: %s constraint requires a range", ErrMalformedConstraint, c.Kind)
		}
		dens := c.Denominators
		if len(dens) == 0 {
			dens = []int{1, 2, 3, 6}
		}
		for _, den := range dens {
			if den == 0 {
				continue
			}
			d := big.NewRat(int64(den), 1)
			lo := ratCeil(new(big.Rat).Mul(c.Lo, d))
			hi := ratFloor(new(big.Rat).Mul(c.Hi, d))
			for n := lo; n <= hi; n++ {
				values = append(values, big.NewRat(n, int64(den)))
			}
		}

	case KindGrid:
		kMax := c.KMax
		if kMax == 0 {
			kMax = 6
		}
		den := c.Denominator
		if den == 0 {
			den = 6
		}
		for k := -kMax; k <= kMax; k++ {
			values = append(values, big.NewRat(int64(k), int64(den)))
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstraintKind, c.Kind)
	}

	values = c.applyExclusions(values)
	sort.Slice(values, func(i, j int) bool { return values[i].Cmp(values[j]) < 0 })

	// Dedupe after sorting; the rational sweep can produce equal values from
	// different denominators (e.g. 2/2 and 3/3).
	out := values[:0]
	for i, v := range values {
		if i == 0 || v.Cmp(out[len(out)-1]) != 0 {
			out = append(out, v)
		}
	}
	return out, nil
}

// applyExclusions removes excluded values from the list.
func (c HyperchargeConstraint) applyExclusions(values []*big.Rat) []*big.Rat {
	if len(c.Exclude) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		excluded := false
		for _, e := range c.Exclude {
			if v.Cmp(e) == 0 {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, v)
		}
	}
	return out
}

// Allows reports whether a hypercharge value satisfies the constraint.
func (c HyperchargeConstraint) Allows(y *big.Rat) (bool, error) {
	values, err := c.Generate()
	if err != nil {
		return false, err
	}
	for _, v := range values {
		if v.Cmp(y) == 0 {
			return true, nil
		}
	}
	return false, nil
}

// ForbiddenCombo is one (su3, su2, hypercharge) combination a representation
// constraint rules out even though its dimensions are individually allowed.
type ForbiddenCombo struct {
	SU3         int
	SU2         int
	Hypercharge *big.Rat
}

// RepConstraint restricts a gauge group's representation dimensions.
type RepConstraint struct {
	// Allowed lists the permitted representation dimensions.
	Allowed []int

	// Forbidden lists combination exceptions. Only the (su3, su2) part
	// participates in combination checks; the hypercharge component is
	// carried for provenance.
	Forbidden []ForbiddenCombo
}

// AllowsDim reports whether the dimension is in the allow list.
// An empty allow list permits everything.
func (c RepConstraint) AllowsDim(dim int) bool {
	if len(c.Allowed) == 0 {
		return true
	}
	for _, d := range c.Allowed {
		if d == dim {
			return true
		}
	}
	return false
}

// AllowsCombo reports whether the (su3, su2) pair avoids every forbidden
// combination.
func (c RepConstraint) AllowsCombo(su3, su2 int) bool {
	for _, f := range c.Forbidden {
		if f.SU3 == su3 && f.SU2 == su2 {
			return false
		}
	}
	return true
}

// ratCeil returns the smallest integer ≥ r.
func ratCeil(r *big.Rat) int64 {
	q := new(big.Int).Div(r.Num(), r.Denom())
	if new(big.Rat).SetInt(q).Cmp(r) < 0 {
		return q.Int64() + 1
	}
	return q.Int64()
}

// ratFloor returns the largest integer ≤ r.
func ratFloor(r *big.Rat) int64 {
	// big.Int.Div is Euclidean (floor) division for positive divisors.
	return new(big.Int).Div(r.Num(), r.Denom()).Int64()
}

// parseFraction parses rule-file fraction values: "n/d" strings or integers.
func parseFraction(v any) (*big.Rat, error) {
	switch x := v.(type) {
	case string:
		return model.ParseHypercharge(x)
	case int:
		return big.NewRat(int64(x), 1), nil
	case int64:
		return big.NewRat(x, 1), nil
	default:
		return nil, fmt.Errorf("%w: cannot parse fraction from %T value %v", ErrMalformedConstraint, v, v)
	}
}
