package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// knownModels are the textbook extensions the summary calls out when the
// scan rediscovers them. Matching is by stage group and description
// substring, the same way the hits themselves are tagged.
var knownModels = []struct {
	label    string
	stage    model.Stage
	fragment string
}{
	{"right-handed neutrino: (1, 1)_0 × -1", model.StageSingleAddition, "(1, 1)_0 × -1"},
	{"vector-like lepton doublet: (1, 2)_-1/2", model.StageVectorLikePair, "(1, 2)_-1/2"},
	{"MSSM Higgsino pair: (1, 2)_[+1/2, -1/2]", model.StageChiralPair, "(1, 2)_[+1/2, -1/2]"},
	{"vector-like quark doublet: (3, 2)_1/6", model.StageVectorLikePair, "(3, 2)_1/6"},
}

// stageSections fixes the display order and headings of the per-block
// sections.
var stageSections = []struct {
	heading string
	stages  []model.Stage
}{
	{"Block A - Single fermion additions", []model.Stage{model.StageSingleAddition}},
	{"Block B - Vector-like fermion pairs", []model.Stage{model.StageVectorLikePair, model.StageVectorLikeFromA}},
	{"Block C - Higgsino-style chiral pairs", []model.Stage{model.StageChiralPair}},
	{"Physics-motivated sets", []model.Stage{model.StagePhysicsSet}},
}

// titleCaser renders category names in title case for the by-type listing.
var titleCaser = cases.Title(language.English)

// SimpleWriter outputs human-readable text summaries.
//
// Design decision: Plain text with ASCII rules rather than ANSI colors: it
// works in every terminal and pipes cleanly into files.
type SimpleWriter struct {
	baseWriter

	// maxDisplay caps the number of models listed per category before
	// truncating with an "... and N more" line.
	maxDisplay int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMaxDisplay sets the per-category display cap. Default is 20.
func WithMaxDisplay(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n > 0 {
			w.maxDisplay = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		maxDisplay: 20,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary as human-readable text.
func (w *SimpleWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	rule := strings.Repeat("=", 60)
	sb.WriteString(rule + "\n")
	sb.WriteString("ANOMALY-FREE MODELS DISCOVERED\n")
	sb.WriteString(rule + "\n")

	if summary.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", summary.Source)
	}
	if summary.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", summary.Description)
	}
	fmt.Fprintf(&sb, "Configurations tested: %d\n", summary.Tested)
	fmt.Fprintf(&sb, "Anomaly-free models found: %d\n", len(summary.Hits))
	if summary.Elapsed > 0 {
		fmt.Fprintf(&sb, "Scan time: %.2f seconds\n", summary.Elapsed.Seconds())
	}

	if len(summary.Hits) == 0 {
		sb.WriteString("\nNo anomaly-free models found in the scan range.\n")
		return w.output.Write([]byte(sb.String()))
	}

	groups := summary.ByStage()
	for _, section := range stageSections {
		var hits []model.ScanResult
		for _, stage := range section.stages {
			hits = append(hits, groups[stage]...)
		}
		if len(hits) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n%s:\n", section.heading)
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, hit := range hits {
			if i >= w.maxDisplay {
				fmt.Fprintf(&sb, "   ... and %d more\n", len(hits)-w.maxDisplay)
				break
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, hit.Description)
		}
	}

	sb.WriteString("\nModels by type:\n")
	counts := summary.Categorize()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&sb, "  %s: %d\n", titleCaser.String(category), counts[category])
	}

	w.writeKnownModels(&sb, groups)

	return w.output.Write([]byte(sb.String()))
}

// writeKnownModels appends the verification section for textbook extensions.
func (w *SimpleWriter) writeKnownModels(sb *strings.Builder, groups map[model.Stage][]model.ScanResult) {
	var lines []string
	for _, known := range knownModels {
		for _, hit := range groups[known.stage] {
			if strings.Contains(hit.Description, known.fragment) {
				lines = append(lines, "✓ Found "+known.label)
				break
			}
		}
	}
	if len(lines) == 0 {
		return
	}

	rule := strings.Repeat("=", 60)
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("VERIFICATION OF KNOWN MODELS\n")
	sb.WriteString(rule + "\n")
	for _, line := range lines {
		sb.WriteString(line + "\n")
	}
}
