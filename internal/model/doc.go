// Package model defines the core data structures used throughout anomalyscan.
//
// This package contains the following main types:
//   - Fermion: One irreducible chiral field with its quantum numbers
//   - Spectrum: An ordered list of fermions defining a gauge theory's matter content
//   - ScanResult: The outcome of testing one candidate spectrum
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (anomaly, scan, store, report) need to use
// these types, so centralizing them prevents import cycles.
//
// Hypercharges are held as *big.Rat so that all anomaly arithmetic stays exact;
// the descriptor forms serialize them as "numerator/denominator" strings to
// survive JSON and YAML round trips without float rounding.
package model
