package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dyluth/taskatlas/internal/printer"
	"github.com/dyluth/taskatlas/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered report for local preview",
	Long: `Serve the report directory over HTTP so the generated figure can be
previewed in a browser before publishing.

Examples:
  # Serve ./public on the default port
  taskatlas serve

  # Serve a custom output directory on another port
  taskatlas serve --dir dist --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", "public", "Report directory to serve")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(filepath.Join(serveDir, "index.html")); err != nil {
		printer.Warning("no index.html in %s - run 'taskatlas generate' first\n", serveDir)
	}

	server := &http.Server{
		Addr:    serveAddr,
		Handler: web.Handler(serveDir),
	}

	// Stop serving on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	printer.Info("Serving %s at http://localhost%s (Ctrl-C to stop)\n", serveDir, serveAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return printer.Error("Shutdown failed", err.Error(), nil)
		}
		printer.Info("\nStopped.\n")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return printer.Error("Server failed", err.Error(), []string{
			"Check that the port is free, or pass a different --addr",
		})
	}
}
