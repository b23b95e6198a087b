package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewConfigDefaults tests the default values.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if cfg.MaxDisplay != DefaultMaxDisplay {
		t.Errorf("got max display %d, expected %d", cfg.MaxDisplay, DefaultMaxDisplay)
	}
	if cfg.ExportPath != DefaultExportFile {
		t.Errorf("got export path %q, expected %q", cfg.ExportPath, DefaultExportFile)
	}
}

// TestConfigValidate tests the validation error taxonomy.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.TemplatePath = "template.json"
		return cfg
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing template", func(c *Config) { c.TemplatePath = "" }, ErrNoTemplate},
		{"negative limit", func(c *Config) { c.Limit = -1 }, ErrInvalidLimit},
		{"negative hyper-max", func(c *Config) { c.HyperMax = -2 }, ErrInvalidHyperMax},
		{"negative workers", func(c *Config) { c.Workers = -1 }, ErrInvalidWorkers},
		{"zero max display", func(c *Config) { c.MaxDisplay = 0 }, ErrInvalidMaxDisplay},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1e-10 }, ErrInvalidTolerance},
		{"both report formats", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

// TestEffectivePaths tests the flag-over-default path resolution.
func TestEffectivePaths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if got := cfg.EffectiveResultsDir(); got != DefaultResultsDir() {
		t.Errorf("got %q, expected the XDG default", got)
	}
	cfg.ResultsDir = "/tmp/custom"
	if got := cfg.EffectiveResultsDir(); got != "/tmp/custom" {
		t.Errorf("got %q, expected the override", got)
	}

	if got := cfg.EffectiveHistoryDBPath(); filepath.Base(got) != HistoryDBName {
		t.Errorf("got %q, expected a path ending in %q", got, HistoryDBName)
	}
	cfg.HistoryDBPath = "/tmp/custom.db"
	if got := cfg.EffectiveHistoryDBPath(); got != "/tmp/custom.db" {
		t.Errorf("got %q, expected the override", got)
	}
}

// TestDataDir tests that the XDG data directory carries the app name.
func TestDataDir(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(DataDir(), AppName) {
		t.Errorf("got %q, expected suffix %q", DataDir(), AppName)
	}
	if filepath.Dir(DefaultResultsDir()) != DataDir() {
		t.Errorf("results dir %q not under data dir %q", DefaultResultsDir(), DataDir())
	}
}
