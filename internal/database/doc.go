// Package database provides SQLite-based history storage for scan runs.
//
// Each comprehensive scan can be recorded as one run row plus one row per
// anomaly-free hit, keyed by the hit's content hash. The history makes runs
// comparable over time without re-parsing the per-hit result files.
//
// The package uses modernc.org/sqlite, a pure-Go driver, so no cgo is
// required to build or cross-compile.
package database
