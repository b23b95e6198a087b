package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "anomalyscan"

	// DefaultMaxDisplay is the number of models shown per category in the
	// scan summary before truncation.
	DefaultMaxDisplay = 20

	// DefaultExportFile is the default run-export filename.
	DefaultExportFile = "anomaly_free_models.json"

	// HistoryDBName is the filename of the scan-history database.
	HistoryDBName = "anomalyscan.db"
)

// Config holds the CLI options for anomalyscan scans.
// It is populated from flags, validated once, and passed read-only through
// the application.
type Config struct {
	// TemplatePath is the JSON template with base spectrum and scan knobs.
	TemplatePath string

	// ResultsDir is where per-hit files are written.
	// Empty means DefaultResultsDir().
	ResultsDir string

	// ExportPath is the run export file. Empty means DefaultExportFile in
	// the current directory.
	ExportPath string

	// HyperMax overrides the k/6 grid half-width when positive.
	HyperMax int

	// Limit caps the total anomaly-free hits; 0 means no limit.
	Limit int

	// Quick restricts the scan to the reduced quick-scan grids.
	Quick bool

	// Workers bounds parallel candidate evaluation in the exhaustive block.
	Workers int

	// MaxDisplay caps the number of models printed per category.
	MaxDisplay int

	// Tolerance for the cancellation judgment; 0 means the engine default
	// unless ExactTolerance is set.
	Tolerance float64

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects machine-readable JSON output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects GitHub Flavored Markdown output.
	MarkdownReport bool

	// History enables recording the run in the sqlite history database.
	History bool

	// HistoryDBPath overrides the history database location.
	// Empty means HistoryDBName inside the XDG data directory.
	HistoryDBPath string
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		MaxDisplay: DefaultMaxDisplay,
		ExportPath: DefaultExportFile,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.TemplatePath == "" {
		return ErrNoTemplate
	}
	if c.Limit < 0 {
		return ErrInvalidLimit
	}
	if c.HyperMax < 0 {
		return ErrInvalidHyperMax
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.MaxDisplay <= 0 {
		return ErrInvalidMaxDisplay
	}
	if c.Tolerance < 0 {
		return ErrInvalidTolerance
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// EffectiveResultsDir returns the per-hit results directory, falling back to
// the XDG default.
func (c *Config) EffectiveResultsDir() string {
	if c.ResultsDir != "" {
		return c.ResultsDir
	}
	return DefaultResultsDir()
}

// EffectiveHistoryDBPath returns the history database path, falling back to
// the XDG default.
func (c *Config) EffectiveHistoryDBPath() string {
	if c.HistoryDBPath != "" {
		return c.HistoryDBPath
	}
	return filepath.Join(DataDir(), HistoryDBName)
}

// DataDir returns the XDG data directory for anomalyscan.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultResultsDir returns the default directory for per-hit result files.
func DefaultResultsDir() string {
	return filepath.Join(DataDir(), "results")
}
