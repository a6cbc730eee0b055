package commands

import (
	"fmt"

	"github.com/dyluth/taskatlas/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new taskatlas project",
	Long: `Initialize a new taskatlas project with default configuration.

Creates:
  • taskatlas.yml - Dataset, renderer, and cache configuration,
    pre-filled for the WORKBank dataset

Use --force to reinitialize an existing project (WARNING: overwrites existing configuration).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Force reinitialization (overwrites existing taskatlas.yml)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check for existing files (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting(); err != nil {
			return err
		}
	}

	if err := scaffold.Initialize(forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess()

	return nil
}
