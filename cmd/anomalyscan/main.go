// Package main provides the entry point for the anomalyscan CLI.
//
// anomalyscan verifies gauge anomaly cancellation for chiral fermion spectra
// and searches for anomaly-free extensions of the Standard Model.
//
// Usage:
//
//	anomalyscan check sm
//	anomalyscan scan template.json
//	anomalyscan rules run rules.yaml
//
// See --help for all available options.
package main

// main is the entry point for anomalyscan.
func main() {
	Execute()
}
