package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskatlas",
	Short: "Taskatlas - WORKBank automation landscape report generator",
	Long: `Taskatlas turns the WORKBank occupational task ratings into an
interactive report: worker-reported automation desire plotted against
expert-rated AI capability, with per-occupation filtering and a ranked
priority table.

The pipeline is a single forward pass: load both source tables,
aggregate per task, inner-join, score (desire × capability), and render
a self-contained HTML file with the chart runtime loaded from a CDN.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
