package commands

import (
	"context"

	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/dataset"
	"github.com/dyluth/taskatlas/internal/printer"
	"github.com/dyluth/taskatlas/internal/report"
	"github.com/spf13/cobra"
)

var (
	fetchConfigPath string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the datasets into the cache",
	Long: `Download both source tables and store them in the Redis cache without
rendering a report. Later 'taskatlas generate' runs then work entirely
from the cache until the entries expire.

Requires a cache section in taskatlas.yml.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchConfigPath, "config", "c", config.DefaultPath, "Path to taskatlas.yml")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(fetchConfigPath)
	if err != nil {
		return err
	}

	printer.Step("Fetching datasets from %s...\n", cfg.Datasets.Repository)

	gen := report.New(cfg)
	gen.Warn = printer.Warning

	n, err := gen.Prefetch(context.Background())
	if err != nil {
		if dataset.IsUnavailable(err) {
			return reportError(err)
		}
		return printer.Error("Prefetch failed", err.Error(), []string{
			"Add a cache section to taskatlas.yml and make sure Redis is running",
		})
	}

	printer.Success("Cached %d dataset files\n", n)
	return nil
}
