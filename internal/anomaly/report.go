package anomaly

import (
	"math"
	"strings"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// GenerateReport renders the fermion content, each coefficient with a
// pass/fail marker, and the overall verdict as plain text. This is purely a
// formatting view over Compute and VerifyCancellation; it takes no part in
// the pass/fail decision itself.
func (c *Checker) GenerateReport() string {
	anomalies := c.Compute()

	var b strings.Builder
	b.WriteString("Anomaly Cancellation Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	b.WriteString("Fermion Content:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, f := range c.spectrum {
		b.WriteString(f.String() + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Anomaly Coefficients:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, name := range CoefficientNames {
		value := anomalies[name]
		approx, _ := value.Float64()
		marker := "✓"
		if math.Abs(approx) >= DefaultTolerance {
			marker = "✗"
		}
		b.WriteString(marker + " " + padRight(name, 20) + " = " + model.FormatHypercharge(value) + "\n")
	}
	b.WriteString("\n")

	allCancel, failures := c.VerifyCancellation(DefaultTolerance)
	if allCancel {
		b.WriteString("✓ All anomalies cancel - model is consistent\n")
	} else {
		b.WriteString("✗ Anomalies do not cancel:\n")
		for _, f := range failures {
			b.WriteString("  - " + f.String() + "\n")
		}
	}
	return b.String()
}

// padRight pads s with spaces to at least width characters.
// The coefficient names contain multi-byte superscripts, so padding counts
// runes, not bytes.
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
