package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uccalint/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API over HTTP",
		Long: `Serve the validation API over HTTP.

  POST /api/v1/validate   passage JSON in, report JSON out
  POST /api/v1/render     passage JSON in, diagram out
  GET  /api/v1/reports/{id}
  GET  /api/v1/passages/{id}/reports
  GET  /health

Report persistence is enabled when [store] mongo_uri is configured; the
cache backend follows [cache] backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return server.New(runner, c.Logger, c.defaults()).ListenAndServe(ctx, addr)
}
