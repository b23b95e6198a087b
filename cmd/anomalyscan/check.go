package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanroy/anomalyscan/internal/anomaly"
	"github.com/bryanroy/anomalyscan/internal/model"
)

// errAnomaliesDetected signals a non-cancelling spectrum. The check itself
// succeeded; the nonzero exit code reports the physics verdict.
var errAnomaliesDetected = errors.New("anomalies do not cancel")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [spectrum]",
		Short: "Verify anomaly cancellation for a fermion spectrum",
		Long: `Check computes all seven anomaly coefficients for a spectrum and reports
whether they cancel within the tolerance.

The spectrum argument is either a built-in name or a JSON file:
  sm       Standard Model (three generations, no right-handed neutrinos)
  sm-nu    Standard Model plus right-handed neutrinos
  <path>   JSON file with a list of fermion descriptors

The exit code is 1 when the anomalies do not cancel, so the command can
gate scripts on the verdict.

Examples:
  # Verify the Standard Model
  anomalyscan check sm

  # Verify a custom spectrum
  anomalyscan check myspectrum.json

  # Machine-readable output
  anomalyscan check --json sm-nu`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the coefficient map and verdict as JSON")
	cmd.Flags().Float64P("tolerance", "t", anomaly.DefaultTolerance,
		"Cancellation tolerance applied to each coefficient")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
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

	spectrum, err := loadSpectrumArg(args[0])
	if err != nil {
		return err
	}

	checker := anomaly.NewChecker(spectrum)
	free, failures := checker.VerifyCancellation(tolerance)

	if jsonOut {
		if err := writeCheckJSON(cmd, checker, tolerance, free, failures); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), checker.GenerateReport())
	}

	if !free {
		return errAnomaliesDetected
	}
	return nil
}

// checkOutput is the JSON schema of the check command.
type checkOutput struct {
	Anomalies   map[string]string `json:"anomalies"`
	AnomalyFree bool              `json:"anomaly_free"`
	Tolerance   float64           `json:"tolerance"`
	Failures    []string          `json:"failures,omitempty"`
}

// writeCheckJSON renders the verdict as indented JSON. Coefficient values
// stay exact n/d strings rather than floats.
func writeCheckJSON(cmd *cobra.Command, checker *anomaly.Checker, tolerance float64, free bool, failures []anomaly.Failure) error {
	out := checkOutput{
		Anomalies:   make(map[string]string, len(anomaly.CoefficientNames)),
		AnomalyFree: free,
		Tolerance:   tolerance,
	}
	for name, value := range checker.Compute() {
		out.Anomalies[name] = model.FormatHypercharge(value)
	}
	for _, f := range failures {
		out.Failures = append(out.Failures, f.String())
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// loadSpectrumArg resolves a spectrum argument: the built-in names "sm" and
// "sm-nu", or a path to a JSON descriptor file.
func loadSpectrumArg(arg string) (model.Spectrum, error) {
	switch arg {
	case "sm", "standard_model":
		return model.StandardModel(false), nil
	case "sm-nu", "standard_model_with_nu":
		return model.StandardModel(true), nil
	}

	data, err := os.ReadFile(arg) //nolint:gosec // User-provided spectrum path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read spectrum file: %w", err)
	}
	return parseSpectrumJSON(data)
}

// parseSpectrumJSON accepts either a bare descriptor array or an object with
// a "fermions" key, so both hand-written files and exported models load.
func parseSpectrumJSON(data []byte) (model.Spectrum, error) {
	var descriptors []model.FermionDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		var wrapped struct {
			Fermions []model.FermionDescriptor `json:"fermions"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil || len(wrapped.Fermions) == 0 {
			return nil, fmt.Errorf("spectrum file must be a descriptor array or contain a fermions key")
		}
		descriptors = wrapped.Fermions
	}
	return model.SpectrumFromDescriptors(descriptors)
}

// ratOrZero converts a possibly nil rational to a displayable value.
func ratOrZero(r *big.Rat) *big.Rat {
	if r == nil {
		return new(big.Rat)
	}
	return r
}
