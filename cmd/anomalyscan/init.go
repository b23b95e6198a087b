package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/example_rules.yaml templates/sm_template.json
var starterFiles embed.FS

// Starter file names written by init.
const (
	rulesFileName    = "example_rules.yaml"
	templateFileName = "sm_template.json"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write starter template and rule files",
		Long: `Init writes two starter files into the target directory:

  sm_template.json     the Standard Model base spectrum with default scan knobs
  example_rules.yaml   commented example rule sets

The files are ready to use:
  anomalyscan scan sm_template.json
  anomalyscan rules run example_rules.yaml

Examples:
  # Write starter files into the current directory
  anomalyscan init

  # Write into a specific directory
  anomalyscan init -d configs/

  # Overwrite existing files
  anomalyscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("dir", "d", ".",
		"Target directory for the starter files")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	for _, name := range []string{templateFileName, rulesFileName} {
		path := filepath.Join(dir, name)
		if err := writeStarterFile(path, name, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nNext steps:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  anomalyscan scan %s\n", filepath.Join(dir, templateFileName))
	fmt.Fprintf(cmd.OutOrStdout(), "  anomalyscan rules run %s\n", filepath.Join(dir, rulesFileName))
	return nil
}

// writeStarterFile copies one embedded starter file to disk.
func writeStarterFile(path, name string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	}

	data, err := starterFiles.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
