package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// MarkdownWriter outputs summaries in GitHub Flavored Markdown.
// This format is designed for documentation and sharing scan outcomes.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation: type-safe tables, lists, and GFM alerts without hand-rolled
// string concatenation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as markdown.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Anomaly-Free Model Scan")
	md.PlainText("")

	w.writeOverview(md, summary)
	w.writeBaseSpectrum(md, summary)
	w.writeHits(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeOverview writes the run statistics table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, summary *Summary) {
	rows := [][]string{
		{"Configurations tested", fmt.Sprintf("%d", summary.Tested)},
		{"Anomaly-free models", fmt.Sprintf("%d", len(summary.Hits))},
	}
	if summary.Source != "" {
		rows = append([][]string{{"Source", summary.Source}}, rows...)
	}
	if summary.Elapsed > 0 {
		rows = append(rows, []string{"Scan time", fmt.Sprintf("%.2fs", summary.Elapsed.Seconds())})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Run", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBaseSpectrum writes the base spectrum table.
func (w *MarkdownWriter) writeBaseSpectrum(md *markdown.Markdown, summary *Summary) {
	md.H2("Base Spectrum")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Base))
	for _, f := range summary.Base {
		rows = append(rows, []string{
			f.Name(),
			fmt.Sprintf("%d", f.SU3Rep()),
			fmt.Sprintf("%d", f.SU2Rep()),
			model.FormatHypercharge(f.Hypercharge()),
			fmt.Sprintf("%d", f.Chirality()),
			fmt.Sprintf("%d", f.Generations()),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "SU(3)", "SU(2)", "Y", "Chirality", "Generations"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeHits writes one section per search block with its hits.
func (w *MarkdownWriter) writeHits(md *markdown.Markdown, summary *Summary) {
	groups := summary.ByStage()
	for _, section := range stageSections {
		var hits []model.ScanResult
		for _, stage := range section.stages {
			hits = append(hits, groups[stage]...)
		}
		if len(hits) == 0 {
			continue
		}

		md.H2(section.heading)
		md.PlainText("")

		rows := make([][]string, 0, len(hits))
		for _, hit := range hits {
			added := hit.Spectrum.NewAgainst(summary.Base)
			signature := ""
			for i, f := range added {
				if i > 0 {
					signature += " "
				}
				signature += f.Signature()
			}
			rows = append(rows, []string{hit.Description, signature})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Model", "Signature"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeAlert writes the closing GFM alert with the overall outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *Summary) {
	switch {
	case len(summary.Hits) == 0:
		md.Note("No anomaly-free extensions were found in the scanned range.")
	default:
		md.Tip(fmt.Sprintf("Found %d anomaly-free extension(s); per-hit files are content-addressed, so rediscoveries dedupe automatically.", len(summary.Hits)))
	}
	md.PlainText("")
}
