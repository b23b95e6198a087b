// Package anomaly implements the exact-arithmetic anomaly invariant engine.
//
// Given a fermion spectrum, the engine evaluates seven gauge and
// gravitational anomaly coefficients and judges whether they all vanish.
// Every sum is carried out with *big.Rat; conversion to floating point
// happens only at the final tolerance comparison, so exact zeros are never
// blurred by rounding.
//
// Design decision: The engine is a pure function set over immutable model
// values. A Checker memoizes its coefficient map after the first computation;
// because Fermion is immutable, the cache can never silently go stale, which
// removes the recompute-after-mutation hazard entirely.
package anomaly
