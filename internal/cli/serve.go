package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/internal/server"
	"github.com/matzehuels/chaosmeter/pkg/observability"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP",
		Long: `Run an HTTP server that analyzes dependency reports posted as request bodies.

Routes:
  POST /v1/analyze?format=<ext>&metric=<m>&exclude=<re>
  POST /v1/report?format=<ext>&exclude=<re>
  GET  /healthz
  GET  /metrics`,
		Example: `  chaosmeter serve --addr :9090
  curl --data-binary @deps.madge 'localhost:9090/v1/analyze?format=madge&metric=cycle'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			srv := server.New(cfg, loggerFromContext(cmd.Context()))
			observability.SetPipelineHooks(srv.Metrics())
			defer observability.Reset()

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, or :8080)")

	return cmd
}
