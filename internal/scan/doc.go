// Package scan implements the staged combinatorial search for anomaly-free
// fermion spectrum extensions.
//
// The search runs in four ordered blocks, each optional via configuration:
//
//	Block A  single fermion additions over a curated list of representation
//	         pairs and a symmetric hypercharge grid
//	Block B  exhaustive vector-like pairs over the full cross product of
//	         hypercharges and representation dimensions
//	Block B′ vector-like partners seeded from block A hits
//	Block C  Higgsino-style chiral pairs with opposite hypercharges
//
// Each candidate extension of the base spectrum is handed to the anomaly
// invariant engine; passing spectra are persisted through an injected
// store.Sink and recorded as typed results. Failing candidates are silently
// discarded: a non-cancelling spectrum is a normal negative result, not an
// error.
//
// Design decision: The blocks are independent, idempotent stages sharing
// only an append-only hit list, but they live as methods on one Scanner
// because block B′ consumes block A's side list. The exhaustive block may
// evaluate candidates in parallel with errgroup: the invariant engine is
// pure and result identity is content-hash based, so insertion order does
// not matter.
package scan
