package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ethicswatch/ethicswatch/internal/api"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment pipeline over HTTP",
	Long: `Serve exposes the pipeline as a small HTTP API:

  GET  /health            liveness probe
  POST /watchdog          {"text": "...", "k": 3}         -> full report
  POST /analyze           {"query": "...", "k": 3}        -> risk analysis

The server drains in-flight requests on SIGINT/SIGTERM.

Example:
  ethicswatch serve
  ethicswatch serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.API.Addr
	}

	server := api.NewServer(a.watchdog, a.analyzer, a.log)
	return server.ListenAndServe(ctx, addr)
}
