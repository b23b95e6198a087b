package report

import (
	"bytes"
	"strings"
	"testing"
)

// TestMarkdownWriter tests the GFM summary output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(sampleSummary(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	out := buf.String()
	for _, want := range []string{
		"# Anomaly-Free Model Scan",
		"sm_template.json",
		"Configurations tested",
		"182",
		"1.50s",
		"## Base Spectrum",
		"Chirality",
		"Q_L",
		"## Block A - Single fermion additions",
		"Single fermion: (1, 1)_0 × -1",
		"(1,1,0,-1)",
		"## Block B - Vector-like fermion pairs",
		"(1,2,-1/2,1) (1,2,-1/2,-1)",
		"## Block C - Higgsino-style chiral pairs",
		"[!TIP]",
		"Found 3 anomaly-free extension(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "Physics-motivated sets") {
		t.Error("output has a section for a stage with no hits")
	}
}

// TestMarkdownWriterNoHits tests the empty-result alert.
func TestMarkdownWriterNoHits(t *testing.T) {
	t.Parallel()

	summary := sampleSummary(t)
	summary.Hits = nil

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[!NOTE]") {
		t.Error("output missing the no-hits alert")
	}
	if !strings.Contains(out, "No anomaly-free extensions were found in the scanned range.") {
		t.Errorf("output missing the no-hits message\n%s", out)
	}
	if strings.Contains(out, "## Block") {
		t.Error("output has hit sections without hits")
	}
}
