package anomaly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// DefaultTolerance is the absolute value below which a coefficient's float
// rendering counts as zero. Coefficients are exact rationals, so any genuine
// cancellation produces an exact zero; the tolerance only guards the final
// float conversion.
const DefaultTolerance = 1e-10

// Coefficient names, in the order they are computed and reported.
const (
	CoeffU1           = "[U(1)_Y]"
	CoeffU1Cubed      = "[U(1)_Y]³"
	CoeffU1SU2        = "[U(1)_Y][SU(2)]²"
	CoeffU1SU3        = "[U(1)_Y][SU(3)]²"
	CoeffSU2Cubed     = "[SU(2)]³"
	CoeffSU3Cubed     = "[SU(3)]³"
	CoeffGravityU1    = "[Gravity]²[U(1)_Y]"
	coefficientsCount = 7
)

// CoefficientNames lists all coefficient names in canonical report order.
// Maps in Go iterate in random order, so ordered traversal goes through here.
var CoefficientNames = [coefficientsCount]string{
	CoeffU1,
	CoeffU1Cubed,
	CoeffU1SU2,
	CoeffU1SU3,
	CoeffSU2Cubed,
	CoeffSU3Cubed,
	CoeffGravityU1,
}

// Failure describes one coefficient that did not vanish.
type Failure struct {
	// Coefficient is the anomaly coefficient name, e.g. "[U(1)_Y]³".
	Coefficient string
	// Value is the exact non-zero value.
	Value *big.Rat
}

// String renders the failure as "name = value" with the exact rational.
func (f Failure) String() string {
	return fmt.Sprintf("%s = %s", f.Coefficient, model.FormatHypercharge(f.Value))
}

// Checker computes and caches the anomaly coefficients of one spectrum.
// Build a new Checker per distinct spectrum; the coefficient map is memoized
// after the first computation and, since fermions are immutable, never stales.
type Checker struct {
	spectrum  model.Spectrum
	anomalies map[string]*big.Rat
}

// NewChecker creates a Checker for the given spectrum.
// An empty (or nil) spectrum is valid: every coefficient is the additive
// identity and cancellation trivially holds.
func NewChecker(spectrum model.Spectrum) *Checker {
	return &Checker{spectrum: spectrum}
}

// Compute evaluates all seven anomaly coefficients and returns the mapping
// from coefficient name to exact value. The result is memoized; subsequent
// calls return the cached map. Callers must not modify the returned map.
func (c *Checker) Compute() map[string]*big.Rat {
	if c.anomalies != nil {
		return c.anomalies
	}

	sums := make(map[string]*big.Rat, coefficientsCount)
	for _, name := range CoefficientNames {
		sums[name] = new(big.Rat)
	}

	term := new(big.Rat)
	for _, f := range c.spectrum {
		// weight = chirality × generations, common to every term
		weight := big.NewRat(int64(f.Chirality()*f.Generations()), 1)
		y := f.Hypercharge()
		d3 := big.NewRat(int64(f.SU3Rep()), 1)
		d2 := big.NewRat(int64(f.SU2Rep()), 1)

		// [U(1)_Y]: Y · d3 · d2
		term.Mul(y, d3).Mul(term, d2).Mul(term, weight)
		sums[CoeffU1].Add(sums[CoeffU1], term)

		// [Gravity]²[U(1)_Y]: same formula as the linear U(1) trace
		sums[CoeffGravityU1].Add(sums[CoeffGravityU1], term)

		// [U(1)_Y]³: Y³ · d3 · d2
		term.Mul(y, y).Mul(term, y).Mul(term, d3).Mul(term, d2).Mul(term, weight)
		sums[CoeffU1Cubed].Add(sums[CoeffU1Cubed], term)

		// [U(1)_Y][SU(2)]²: Y · d3 · T2(d2)
		term.Mul(y, d3).Mul(term, SU2Dynkin(f.SU2Rep())).Mul(term, weight)
		sums[CoeffU1SU2].Add(sums[CoeffU1SU2], term)

		// [U(1)_Y][SU(3)]²: Y · d2 · T3(d3)
		term.Mul(y, d2).Mul(term, SU3Dynkin(f.SU3Rep())).Mul(term, weight)
		sums[CoeffU1SU3].Add(sums[CoeffU1SU3], term)

		// [SU(2)]³: d3 · (SU(2) cubic coefficient), identically zero
		term.Mul(d3, SU2Cubic(f.SU2Rep())).Mul(term, weight)
		sums[CoeffSU2Cubed].Add(sums[CoeffSU2Cubed], term)

		// [SU(3)]³: d2 · T3(d3)
		term.Mul(d2, SU3Dynkin(f.SU3Rep())).Mul(term, weight)
		sums[CoeffSU3Cubed].Add(sums[CoeffSU3Cubed], term)
	}

	c.anomalies = sums
	return c.anomalies
}

// VerifyCancellation reports whether every coefficient vanishes within the
// given absolute tolerance, together with the list of coefficients that do
// not. A tolerance of zero demands exact floating equality to zero; exact
// zero rationals still pass because their float conversion is exactly 0.0.
//
// Failures are returned in canonical coefficient order.
func (c *Checker) VerifyCancellation(tolerance float64) (bool, []Failure) {
	anomalies := c.Compute()

	var failures []Failure
	for _, name := range CoefficientNames {
		value := anomalies[name]
		approx, _ := value.Float64()
		if math.Abs(approx) > tolerance {
			failures = append(failures, Failure{Coefficient: name, Value: value})
		}
	}
	return len(failures) == 0, failures
}

// Spectrum returns the spectrum this checker was built from.
func (c *Checker) Spectrum() model.Spectrum { return c.spectrum }
