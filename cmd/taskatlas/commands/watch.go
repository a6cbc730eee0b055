package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/printer"
	"github.com/dyluth/taskatlas/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchConfigPath string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the report whenever the config changes",
	Long: `Generate the report, then keep watching taskatlas.yml and regenerate
on every change. Useful together with 'taskatlas serve' while tuning
titles, table size, or column bindings.

Examples:
  taskatlas watch
  taskatlas watch --config reports/taskatlas.yml`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", config.DefaultPath, "Path to taskatlas.yml")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Initial generation: a broken starting config is a hard error
	cfg, err := loadConfig(watchConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if result, err := generateReport(ctx, cfg); err == nil {
		printer.Success("Report written to %s\n", result.OutputPath)
	} else {
		return err
	}

	printer.Info("Watching %s for changes (Ctrl-C to stop)\n", watchConfigPath)

	// While watching, failures are warnings: keep going so the next save
	// can fix the config
	err = watch.File(ctx, watchConfigPath, watch.DefaultDebounce, func() {
		cfg, err := config.Load(watchConfigPath)
		if err != nil {
			printer.Warning("config reload failed: %v\n", err)
			return
		}
		result, err := generateReport(ctx, cfg)
		if err != nil {
			printer.Warning("regeneration failed: %v\n", err)
			return
		}
		printer.Success("Report written to %s\n", result.OutputPath)
	})
	if err != nil {
		return printer.Error("Watch failed", err.Error(), nil)
	}

	printer.Info("\nStopped.\n")
	return nil
}
