package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/observability"
	"github.com/matzehuels/labeler/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  POST /v1/layout   place the labels of a scene (JSON body)
  GET  /healthz     liveness probe
  GET  /version     build information

The service shares its layout cache across requests. Use --cache memory for
a single process or --cache redis (with cache.redis_addr in the config) to
share layouts across replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			if backend != "" {
				c.Config.Cache.Backend = backend
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&backend, "cache", "", "cache backend: null, file, memory, redis, mongo (default: from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)

	srv := server.New(runner, c.Logger, c.Config.Server)
	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(srv.Addr())))
	printDetail("cache: %s", c.Config.Cache.Backend)
	return srv.ListenAndServe(ctx)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
