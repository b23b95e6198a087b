package report

import (
	"encoding/json"
	"io"

	"github.com/bryanroy/anomalyscan/internal/store"
)

// JSONWriter outputs the machine-readable run export document.
// The payload is the same document WriteExport persists, so piping stdout to
// a file and using --output produce identical bytes.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as indented JSON.
func (w *JSONWriter) Write(summary *Summary) (int, error) {
	doc := store.BuildExport(summary.Config, summary.Base, summary.Hits)
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}
	return w.output.Write(append(body, '\n'))
}
