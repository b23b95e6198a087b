package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryanroy/anomalyscan/internal/anomaly"
	"github.com/bryanroy/anomalyscan/internal/model"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <spectrum-a> <spectrum-b>",
		Short: "Compare the anomaly coefficients of two spectra",
		Long: `Compare computes the anomaly coefficients of two spectra side by side and
shows where they differ.

Each argument is a built-in name (sm, sm-nu) or a JSON descriptor file.
The per-coefficient difference is exact; verdicts use the tolerance.

Examples:
  # How do right-handed neutrinos change the coefficients?
  anomalyscan compare sm sm-nu

  # Compare two candidate models
  anomalyscan compare modelA.json modelB.json

  # Machine-readable comparison
  anomalyscan compare --json sm modelA.json`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the comparison as JSON")
	cmd.Flags().Float64P("tolerance", "t", anomaly.DefaultTolerance,
		"Cancellation tolerance applied to each coefficient")

	return cmd
}

// coefficientDiff is one row of the comparison.
type coefficientDiff struct {
	Coefficient string `json:"coefficient"`
	A           string `json:"a"`
	B           string `json:"b"`
	Equal       bool   `json:"equal"`
}

// compareOutput is the JSON schema of the compare command.
type compareOutput struct {
	SpectrumA     string            `json:"spectrum_a"`
	SpectrumB     string            `json:"spectrum_b"`
	AnomalyFreeA  bool              `json:"anomaly_free_a"`
	AnomalyFreeB  bool              `json:"anomaly_free_b"`
	Tolerance     float64           `json:"tolerance"`
	Coefficients  []coefficientDiff `json:"coefficients"`
	IdenticalMaps bool              `json:"identical"`
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	tolerance, err := cmd.Flags().GetFloat64("tolerance")
	if err != nil {
		return err
	}
	if tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", tolerance)
	}

	left, err := loadSpectrumArg(args[0])
	if err != nil {
		return fmt.Errorf("spectrum %s: %w", args[0], err)
	}
	right, err := loadSpectrumArg(args[1])
	if err != nil {
		return fmt.Errorf("spectrum %s: %w", args[1], err)
	}

	out := buildComparison(args[0], args[1], left, right, tolerance)

	if jsonOut {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	writeComparison(cmd, out)
	return nil
}

// buildComparison computes both coefficient maps and diffs them exactly.
func buildComparison(nameA, nameB string, left, right model.Spectrum, tolerance float64) compareOutput {
	checkerA := anomaly.NewChecker(left)
	checkerB := anomaly.NewChecker(right)
	freeA, _ := checkerA.VerifyCancellation(tolerance)
	freeB, _ := checkerB.VerifyCancellation(tolerance)

	mapA := checkerA.Compute()
	mapB := checkerB.Compute()

	out := compareOutput{
		SpectrumA:     nameA,
		SpectrumB:     nameB,
		AnomalyFreeA:  freeA,
		AnomalyFreeB:  freeB,
		Tolerance:     tolerance,
		IdenticalMaps: true,
	}

	for _, name := range anomaly.CoefficientNames {
		a := ratOrZero(mapA[name])
		b := ratOrZero(mapB[name])
		equal := a.Cmp(b) == 0
		if !equal {
			out.IdenticalMaps = false
		}
		out.Coefficients = append(out.Coefficients, coefficientDiff{
			Coefficient: name,
			A:           model.FormatHypercharge(a),
			B:           model.FormatHypercharge(b),
			Equal:       equal,
		})
	}
	return out
}

// writeComparison renders the comparison as an aligned text table.
func writeComparison(cmd *cobra.Command, out compareOutput) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "ANOMALY COEFFICIENT COMPARISON\n")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "A: %s (anomaly-free: %t)\n", out.SpectrumA, out.AnomalyFreeA)
	fmt.Fprintf(w, "B: %s (anomaly-free: %t)\n\n", out.SpectrumB, out.AnomalyFreeB)

	width := 0
	for _, diff := range out.Coefficients {
		if n := len([]rune(diff.Coefficient)); n > width {
			width = n
		}
	}

	for _, diff := range out.Coefficients {
		marker := "="
		if !diff.Equal {
			marker = "!="
		}
		// Coefficient names contain multibyte superscripts, so pad by rune
		// count instead of %-*s byte padding.
		name := diff.Coefficient + strings.Repeat(" ", width-len([]rune(diff.Coefficient)))
		fmt.Fprintf(w, "  %s  %10s  %-2s  %s\n", name, diff.A, marker, diff.B)
	}

	fmt.Fprintln(w)
	if out.IdenticalMaps {
		fmt.Fprintln(w, "The spectra have identical anomaly coefficients.")
	} else {
		fmt.Fprintln(w, "The spectra differ in the marked coefficients.")
	}
}
