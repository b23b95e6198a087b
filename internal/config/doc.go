// Package config holds the CLI configuration for anomalyscan and the
// template-file loader.
//
// A template file is a JSON document with two sections: the base_spectrum
// descriptor list and the scan_config knob map. The loader validates the
// descriptors and translates the knobs into a scan.Config; all malformed
// input surfaces here, before any candidates are generated.
//
// Design decision: The CLI configuration is a single flat struct populated
// from flags and passed via dependency injection rather than global state,
// with Validate() returning package-level sentinel errors so callers can use
// errors.Is for programmatic handling.
package config
