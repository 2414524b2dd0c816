package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThomasCrouzet/apicem-inventory/internal/render"
	"github.com/ThomasCrouzet/apicem-inventory/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a static inventory file",
	Long: `Query the controller once and write the result as a static Ansible
inventory file (YAML by default, JSON with --format json).`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "hosts.yml", "output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: yaml, json (default: from file extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'apicem-inventory init' to create a config file"))
		return err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, ve := range errs {
			fmt.Fprint(os.Stderr, ui.FormatError(ve.Field, ve.Message, ve.Suggestion))
		}
		return fmt.Errorf("%d configuration errors", len(errs))
	}

	format := exportFormat
	if format == "" {
		format = formatFromPath(exportOutput)
	}
	renderer, err := render.ForFormat(format, true)
	if err != nil {
		return err
	}

	ui.Step("Querying "+cfg.Controller.BaseURL(), "")

	inv, stats, err := newBuilder(cfg, logger).BuildWithStats(cmd.Context())
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Controller query failed", err.Error(), "run 'apicem-inventory validate --connect' to check access"))
		return err
	}

	content, err := renderer.Render(inv)
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOutput, content, 0644); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}

	ui.Success(fmt.Sprintf("Exported %s (%d groups, %d hosts)", exportOutput, len(inv.Groups()), stats.Hosts))
	if stats.Orphans > 0 {
		ui.Warn(fmt.Sprintf("%d hosts have no known location and are listed under all.hosts", stats.Orphans))
	}
	if stats.SkippedRecords > 0 {
		ui.Warn(fmt.Sprintf("%d records skipped because of missing fields (see --log-level debug)", stats.SkippedRecords))
	}

	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
