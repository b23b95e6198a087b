package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
var (
	// ErrNoTemplate is returned when no template file is specified for a scan.
	ErrNoTemplate = errors.New("no template specified: provide a template JSON file")

	// ErrInvalidLimit is returned when the hit limit is negative.
	// Use 0 for no limit.
	ErrInvalidLimit = errors.New("invalid limit: must be non-negative")

	// ErrInvalidHyperMax is returned when the hypercharge grid half-width is
	// negative. Use 0 to keep the default grid.
	ErrInvalidHyperMax = errors.New("invalid hyper-max: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is negative.
	// Use 0 or 1 for sequential evaluation.
	ErrInvalidWorkers = errors.New("invalid workers: must be non-negative")

	// ErrInvalidMaxDisplay is returned when the per-category display cap is
	// not positive.
	ErrInvalidMaxDisplay = errors.New("invalid max-display: must be positive")

	// ErrInvalidTolerance is returned when the cancellation tolerance is
	// negative. Use 0 to demand exact zeros.
	ErrInvalidTolerance = errors.New("invalid tolerance: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
