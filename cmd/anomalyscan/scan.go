package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryanroy/anomalyscan/internal/config"
	"github.com/bryanroy/anomalyscan/internal/database"
	"github.com/bryanroy/anomalyscan/internal/log"
	"github.com/bryanroy/anomalyscan/internal/report"
	"github.com/bryanroy/anomalyscan/internal/scan"
	"github.com/bryanroy/anomalyscan/internal/store"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <template.json>",
		Short: "Search for anomaly-free extensions of a base spectrum",
		Long: `Scan runs the staged search over extensions of the template's base spectrum.

The search proceeds in blocks:
  A   single fermion additions over curated representation pairs
  B   exhaustive vector-like pairs over the configured grids
  B'  conjugate pairs seeded from block A hits
  C   chiral Higgsino-like doublet pairs

Each anomaly-free hit is written to a content-addressed JSON file, so
rerunning a scan never duplicates results. The full set of hits is also
exported as a single JSON document.

Examples:
  # Full scan from a template
  anomalyscan scan sm_template.json

  # Quick scan over reduced grids
  anomalyscan scan --quick sm_template.json

  # Wider hypercharge grid, stop after 50 hits
  anomalyscan scan --hyper-max 12 --limit 50 sm_template.json

  # Parallel exhaustive block, record the run in the history database
  anomalyscan scan --workers 8 --history sm_template.json

  # Markdown summary
  anomalyscan scan --markdown sm_template.json`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Search behavior flags
	cmd.Flags().IntP("hyper-max", "H", 0,
		"Override the k/6 hypercharge grid half-width (0 uses the template)")
	cmd.Flags().IntP("limit", "l", 0,
		"Stop after this many anomaly-free hits, checked at block boundaries (0 = no limit)")
	cmd.Flags().BoolP("quick", "q", false,
		"Reduced grids: SU(3) dims {1,3}, SU(2) dims {1,2}, k_max 3")
	cmd.Flags().IntP("workers", "w", 0,
		"Goroutines for the exhaustive block (<2 = sequential, deterministic order)")
	cmd.Flags().Float64P("tolerance", "t", 0,
		"Cancellation tolerance (0 = engine default)")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultExportFile,
		"Export file for the discovered models")
	cmd.Flags().StringP("results-dir", "r", "",
		"Directory for per-hit result files (default: XDG data directory)")
	cmd.Flags().IntP("max-display", "n", config.DefaultMaxDisplay,
		"Models shown per category before truncation")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown summary (mutually exclusive with --json)")

	// History flags
	cmd.Flags().Bool("history", false,
		"Record the run in the scan-history database")
	cmd.Flags().String("history-db", "",
		"History database path (default: XDG data directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	history, err := cmd.Flags().GetBool("history")
	if err != nil {
		return err
	}
	cfg.History = history

	return runScan(ctx, cmd, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.TemplatePath = args[0]

	var err error

	cfg.HyperMax, err = cmd.Flags().GetInt("hyper-max")
	if err != nil {
		return nil, err
	}

	cfg.Limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}

	cfg.Quick, err = cmd.Flags().GetBool("quick")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Tolerance, err = cmd.Flags().GetFloat64("tolerance")
	if err != nil {
		return nil, err
	}

	cfg.ExportPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ResultsDir, err = cmd.Flags().GetString("results-dir")
	if err != nil {
		return nil, err
	}

	cfg.MaxDisplay, err = cmd.Flags().GetInt("max-display")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.HistoryDBPath, err = cmd.Flags().GetString("history-db")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyOverrides layers the CLI flags over the template's scan configuration.
func applyOverrides(scanCfg scan.Config, cfg *config.Config) scan.Config {
	if cfg.Quick {
		quick := scan.QuickConfig()
		scanCfg.SU3Reps = quick.SU3Reps
		scanCfg.SU2Reps = quick.SU2Reps
		scanCfg.Hypercharge.KMax = quick.Hypercharge.KMax
	}
	if cfg.HyperMax > 0 {
		scanCfg.Hypercharge.KMax = cfg.HyperMax
	}
	if cfg.Limit > 0 {
		scanCfg.Limit = cfg.Limit
	}
	if cfg.Workers > 0 {
		scanCfg.Workers = cfg.Workers
	}
	if cfg.Tolerance > 0 {
		scanCfg.Tolerance = cfg.Tolerance
	}
	return scanCfg
}

// runScan executes the comprehensive scan and renders the summary.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	tmpl, err := config.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return err
	}

	scanCfg := applyOverrides(tmpl.ScanConfig, cfg)

	sink, err := store.NewFileStore(cfg.EffectiveResultsDir())
	if err != nil {
		return fmt.Errorf("failed to prepare results directory: %w", err)
	}

	logger.Info("starting scan",
		"template", cfg.TemplatePath,
		"baseFermions", len(tmpl.BaseSpectrum),
		"blocks", blockNames(scanCfg),
		"resultsDir", sink.Dir(),
	)

	// Open the history database only when asked; scans work without it.
	var db *database.ScanDB
	var runID int64
	if cfg.History {
		db, err = database.Open(cfg.EffectiveHistoryDBPath(), database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()

		runID, err = db.BeginRun(ctx, cfg.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to record run start: %w", err)
		}
		logger.Info("history database opened", "path", db.Path(), "runID", runID)
	}

	start := time.Now()
	scanner := scan.NewScanner(tmpl.BaseSpectrum, scanCfg, sink, scan.WithLogger(logger))
	if err := scanner.RunComprehensive(ctx); err != nil {
		return err
	}
	elapsed := time.Since(start)

	hits := scanner.AnomalyFree()

	if db != nil {
		for _, hit := range hits {
			if err := db.RecordHit(ctx, runID, hit); err != nil {
				logger.Error("failed to record hit", "error", err)
			}
		}
		if err := db.FinishRun(ctx, runID, scanner.TestedCount(), len(hits)); err != nil {
			logger.Error("failed to record run finish", "error", err)
		}
	}

	export := store.BuildExport(scanCfg, tmpl.BaseSpectrum, hits)
	if err := store.WriteExport(cfg.ExportPath, export); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("export written", "path", cfg.ExportPath, "models", len(hits))

	summary := &report.Summary{
		Source:  cfg.TemplatePath,
		Base:    tmpl.BaseSpectrum,
		Hits:    hits,
		Tested:  scanner.TestedCount(),
		Blocks:  blockNames(scanCfg),
		Elapsed: elapsed,
		Config:  scanCfg,
	}

	writer := selectWriter(cmd, cfg)
	if _, err := writer.Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// selectWriter picks the summary format from the report flags.
func selectWriter(cmd *cobra.Command, cfg *config.Config) report.Writer {
	out := cmd.OutOrStdout()
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithMaxDisplay(cfg.MaxDisplay))
	}
}

// blockNames lists the enabled blocks for logging and summaries.
func blockNames(cfg scan.Config) []string {
	candidates := []scan.Block{scan.BlockA, scan.BlockB, scan.BlockBPrime, scan.BlockC}
	names := make([]string, 0, len(candidates))
	for _, b := range candidates {
		if b == scan.BlockBPrime {
			if cfg.SeedPairsFromBlockA {
				names = append(names, string(b))
			}
			continue
		}
		if cfg.BlockEnabled(b) {
			names = append(names, string(b))
		}
	}
	return names
}
