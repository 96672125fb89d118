package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/server"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /layouts/analysis   convert an analysis result
  POST /layouts/resolve    remove overlaps from items
  POST /layouts/preset     generate from a preset or pattern
  POST /layouts/binpack    generate a bin-packed layout
  GET  /presets            list presets
  GET  /presets/{name}     show one preset
  GET  /widget-types       list widget types
  GET  /stats              run, correction, cache and response counters
  GET  /healthz            health check

The cache backend comes from the config file; use "memory" for a single
instance, or "redis" or "mongo" to share cached layouts between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			stats := observability.NewStats()
			observability.Install(observability.Combine(observability.LogHooks(c.Logger), stats.Hooks()))
			defer observability.Reset()

			srv := server.New(&server.Deps{
				Log:             c.Logger,
				ResponseHandler: server.NewResponseHandler(c.Logger),
				LayoutSvc:       runner,
				Profiles:        runner.Profiles,
				Presets:         runner.Presets,
				Policy:          runner.Policy,
				Stats:           stats,
			}, server.Options{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})

			prog := newProgress(c.Logger)
			err = srv.Run(cmd.Context())
			prog.done("Server stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
