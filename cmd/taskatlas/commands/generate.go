package commands

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/dataset"
	"github.com/dyluth/taskatlas/internal/figure"
	"github.com/dyluth/taskatlas/internal/printer"
	"github.com/dyluth/taskatlas/internal/report"
	"github.com/spf13/cobra"
)

var (
	generateConfigPath string
	generateOutput     string
	generateTopN       int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the automation landscape report",
	Long: `Generate the interactive HTML report from the configured datasets.

Loads the worker-desire and expert-capability tables, aggregates ratings
per task, inner-joins them, scores each task (desire × capability), and
writes the report. The output file is overwritten on each run.

Examples:
  # Generate with defaults from taskatlas.yml
  taskatlas generate

  # Override the output location and table size
  taskatlas generate --output dist/index.html --top 15`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", config.DefaultPath, "Path to taskatlas.yml")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output HTML path (overrides config)")
	generateCmd.Flags().IntVar(&generateTopN, "top", 0, "Rows in the ranked table (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(generateConfigPath)
	if err != nil {
		return err
	}

	// Flag overrides
	if generateOutput != "" {
		cfg.Renderer.Output = generateOutput
	}
	if generateTopN > 0 {
		cfg.Renderer.TopN = generateTopN
	}

	result, err := generateReport(context.Background(), cfg)
	if err != nil {
		return err
	}

	printer.Success("Report written to %s\n", result.OutputPath)
	return nil
}

// generateReport runs the pipeline and prints progress; shared with `taskatlas watch`
func generateReport(ctx context.Context, cfg *config.AtlasConfig) (*report.Result, error) {
	printer.Step("Loading datasets from %s...\n", cfg.Datasets.Repository)

	gen := report.New(cfg)
	gen.Warn = printer.Warning

	result, err := gen.Run(ctx)
	if err != nil {
		return nil, reportError(err)
	}

	printer.Info("  %s worker ratings, %s expert ratings\n",
		humanize.Comma(int64(result.DesireRows)), humanize.Comma(int64(result.CapabilityRows)))
	printer.Info("  %s tasks across %d occupations after join\n",
		humanize.Comma(int64(result.Tasks)), result.Occupations)

	return result, nil
}

// reportError maps pipeline failures onto actionable CLI errors
func reportError(err error) error {
	switch {
	case dataset.IsUnavailable(err):
		return printer.Error(
			"Dataset unavailable",
			err.Error(),
			[]string{
				"Check your network connection",
				"Verify datasets.repository and file paths in taskatlas.yml",
			})
	case dataset.IsMissingColumn(err):
		return printer.Error(
			"Dataset schema mismatch",
			err.Error(),
			[]string{"Update the column names in taskatlas.yml to match the CSV headers"})
	case figure.IsFilesystem(err):
		return printer.Error(
			"Cannot write report",
			err.Error(),
			[]string{"Check permissions on the output directory"})
	default:
		return err
	}
}
