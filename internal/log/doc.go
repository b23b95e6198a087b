// Package log provides structured logging support for anomalyscan.
//
// The package wraps a standard slog.Handler with RatHandler, which renders
// *big.Rat attribute values as exact "n/d" strings. Without it, slog falls
// back to the Stringer-less %+v rendering of big.Rat's internals, and grid
// values end up in logs as struct dumps or lossy floats.
package log
