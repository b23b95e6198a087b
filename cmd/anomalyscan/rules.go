package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryanroy/anomalyscan/internal/config"
	"github.com/bryanroy/anomalyscan/internal/log"
	"github.com/bryanroy/anomalyscan/internal/model"
	"github.com/bryanroy/anomalyscan/internal/report"
	"github.com/bryanroy/anomalyscan/internal/rule"
	"github.com/bryanroy/anomalyscan/internal/scan"
	"github.com/bryanroy/anomalyscan/internal/store"
)

// NewRulesCmd creates the rules command group.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Rule-based scanning from YAML rule sets",
		Long: `Rules drives the search from a YAML file of named rule sets.

Each rule set selects a base spectrum, the blocks to run, and constraints on
the candidate grid. Constraints shape generation where they can (hypercharge
values, representation lists) and filter hits post hoc where they cannot
(forbidden combinations, symmetry requirements).`,
	}

	cmd.AddCommand(newRulesListCmd())
	cmd.AddCommand(newRulesRunCmd())

	return cmd
}

// newRulesListCmd creates the rules list subcommand.
func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <rules.yaml>",
		Short: "List the rule sets in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := rule.LoadFile(args[0])
			if err != nil {
				return err
			}

			rules := loader.Rules()
			fmt.Fprintf(cmd.OutOrStdout(), "%d rule set(s) in %s:\n\n", len(rules), args[0])
			for _, r := range rules {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", r.Name)
				if r.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", r.Description)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "      base: %s, blocks: %v\n",
					r.BaseSpectrum, r.Blocks)
			}
			return nil
		},
	}
}

// newRulesRunCmd creates the rules run subcommand.
func newRulesRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <rules.yaml> [rule-name...]",
		Short: "Run one or more rule sets",
		Long: `Run executes the named rule sets, or every rule set in the file when no
names are given.

Each rule produces two files in the current directory:
  scan_summary_<rule>.json   the run summary with configuration and hits
  models_<rule>.json         the exported anomaly-free models

Examples:
  # Run every rule in the file
  anomalyscan rules run example_rules.yaml

  # Run two specific rules
  anomalyscan rules run example_rules.yaml minimal_extension dark_sector`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRulesRunCmd,
	}

	cmd.Flags().StringP("results-dir", "r", "",
		"Directory for per-hit result files (default: XDG data directory)")
	cmd.Flags().IntP("max-display", "n", config.DefaultMaxDisplay,
		"Models shown per category before truncation")

	return cmd
}

// runRulesRunCmd executes the rules run subcommand.
func runRulesRunCmd(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	resultsDir, err := cmd.Flags().GetString("results-dir")
	if err != nil {
		return err
	}
	maxDisplay, err := cmd.Flags().GetInt("max-display")
	if err != nil {
		return err
	}

	loader, err := rule.LoadFile(args[0])
	if err != nil {
		return err
	}

	// Resolve the requested rule names before running anything, so a typo
	// fails fast instead of after a long batch.
	var names []string
	if len(args) > 1 {
		names = args[1:]
		for _, name := range names {
			if _, err := loader.Rule(name); err != nil {
				return err
			}
		}
	} else {
		for _, r := range loader.Rules() {
			names = append(names, r.Name)
		}
	}

	sinkDir := resultsDir
	if sinkDir == "" {
		sinkDir = config.DefaultResultsDir()
	}
	sink, err := store.NewFileStore(sinkDir)
	if err != nil {
		return fmt.Errorf("failed to prepare results directory: %w", err)
	}

	batchStart := time.Now()
	totalModels := 0
	for _, name := range names {
		hits, err := runRule(cmd.Context(), cmd, loader, name, sink, maxDisplay, logger)
		if err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
		totalModels += hits
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nBatch complete: %d rule(s), %d anomaly-free model(s), %s\n",
		len(names), totalModels, time.Since(batchStart).Round(time.Millisecond))
	return nil
}

// runRule executes one rule set and writes its summary and model export.
func runRule(ctx context.Context, cmd *cobra.Command, loader *rule.Loader, name string, sink store.Sink, maxDisplay int, logger *slog.Logger) (int, error) {
	r, err := loader.Rule(name)
	if err != nil {
		return 0, err
	}
	scanCfg, err := loader.ScanConfig(name)
	if err != nil {
		return 0, err
	}
	base, err := baseSpectrumFor(r.BaseSpectrum)
	if err != nil {
		return 0, err
	}

	logger.Info("running rule", "rule", name, "base", r.BaseSpectrum)

	start := time.Now()
	scanner := scan.NewScanner(base, scanCfg, sink, scan.WithLogger(logger))
	if err := scanner.RunComprehensive(ctx); err != nil {
		return 0, err
	}

	// Physics-motivated sets run after the blocks, against the same base.
	sets, err := loader.PhysicsSets(name)
	if err != nil {
		return 0, err
	}
	if len(sets) > 0 {
		if _, err := scanner.TestPhysicsSets(ctx, sets); err != nil {
			return 0, err
		}
	}

	hits := filterByRule(r, base, scanner.AnomalyFree(), logger)
	elapsed := time.Since(start)

	export := store.BuildExport(scanCfg, base, hits)
	modelsPath := fmt.Sprintf("models_%s.json", name)
	if err := store.WriteExport(modelsPath, export); err != nil {
		return 0, fmt.Errorf("failed to write models export: %w", err)
	}

	summary := &report.Summary{
		Source:      name,
		Description: r.Description,
		Base:        base,
		Hits:        hits,
		Tested:      scanner.TestedCount(),
		Blocks:      blockNames(scanCfg),
		Elapsed:     elapsed,
		Config:      scanCfg,
	}

	summaryPath := fmt.Sprintf("scan_summary_%s.json", name)
	summaryFile, err := os.Create(summaryPath) //nolint:gosec // Rule names come from the user's own YAML
	if err != nil {
		return 0, fmt.Errorf("failed to create summary file: %w", err)
	}
	defer summaryFile.Close()
	if _, err := report.NewJSONWriter(summaryFile).Write(summary); err != nil {
		return 0, fmt.Errorf("failed to write summary: %w", err)
	}

	if _, err := report.NewSimpleWriter(cmd.OutOrStdout(), report.WithMaxDisplay(maxDisplay)).Write(summary); err != nil {
		return 0, err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", summaryPath, modelsPath)

	return len(hits), nil
}

// filterByRule drops hits whose added fermions violate the rule's post-hoc
// constraints. Violations are logged, never treated as errors.
func filterByRule(r rule.Rule, base model.Spectrum, hits []model.ScanResult, logger *slog.Logger) []model.ScanResult {
	kept := make([]model.ScanResult, 0, len(hits))
	for _, hit := range hits {
		added := hit.Spectrum.NewAgainst(base)
		ok, violations, err := r.ValidateSpectrum(added)
		if err != nil {
			logger.Error("rule validation failed", "rule", r.Name, "error", err)
			continue
		}
		if !ok {
			logger.Debug("hit rejected by rule",
				"rule", r.Name,
				"description", hit.Description,
				"violations", violations,
			)
			continue
		}
		kept = append(kept, hit)
	}
	return kept
}

// baseSpectrumFor maps a rule's base_spectrum selector to a built-in spectrum.
func baseSpectrumFor(name string) (model.Spectrum, error) {
	switch name {
	case "", "standard_model", "sm":
		return model.StandardModel(false), nil
	case "standard_model_with_nu", "sm-nu":
		return model.StandardModel(true), nil
	}
	return nil, fmt.Errorf("unknown base spectrum %q (want standard_model or standard_model_with_nu)", name)
}
