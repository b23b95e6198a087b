package report

import (
	"io"
	"time"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// Summary is the assembled outcome of one scan run, ready for rendering.
type Summary struct {
	// Source identifies what drove the run: a template path or rule name.
	Source string

	// Description is the optional human description (from a rule).
	Description string

	// Base is the base spectrum the scan extended.
	Base model.Spectrum

	// Hits lists the anomaly-free models in discovery order.
	Hits []model.ScanResult

	// Tested is the total number of candidate spectra evaluated.
	Tested int

	// Blocks names the search blocks that ran.
	Blocks []string

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration

	// Config echoes the scan configuration for machine-readable output.
	Config any
}

// Categorize groups the hits by stage and returns the counts keyed by the
// stage's display name.
func (s *Summary) Categorize() map[string]int {
	counts := make(map[string]int)
	for _, hit := range s.Hits {
		counts[hit.Stage.String()]++
	}
	return counts
}

// ByStage returns the hits grouped by stage, preserving discovery order
// within each group.
func (s *Summary) ByStage() map[model.Stage][]model.ScanResult {
	groups := make(map[model.Stage][]model.ScanResult)
	for _, hit := range s.Hits {
		groups[hit.Stage] = append(groups[hit.Stage], hit)
	}
	return groups
}

// Writer defines the interface for summary output.
// Implementations write scan summaries in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers with
// the same API.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *Summary) (int, error)
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
