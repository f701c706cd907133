package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ux4g/internal/admin"
	"github.com/goliatone/go-ux4g/internal/logging"
	"github.com/goliatone/go-ux4g/internal/mcpserver"
	"github.com/goliatone/go-ux4g/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog tools over MCP stdio",
		Long: `Serve the catalog tools (get_version, list_components, use_component,
list_tokens, generate_snippet, validate_snippet, refine_snippet,
get_bestpractices) to an MCP client over stdin and stdout.

Logs go to stderr. When admin.addr is set, /healthz, /version and /metrics are
served over HTTP on that address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			collector := metrics.New()
			opts := []mcpserver.Option{
				mcpserver.WithLogger(logging.Named("mcp")),
				mcpserver.WithMetrics(collector),
				mcpserver.WithServerVersion(version),
			}
			if a.cfg.Cache.Enabled {
				opts = append(opts, mcpserver.WithCache(a.cfg.Cache.TTL, a.cfg.Cache.Cleanup))
			}
			srv := mcpserver.New(a.orch, opts...)

			if addr := a.cfg.Admin.Addr; addr != "" {
				router := admin.NewRouter(admin.Config{
					Version: a.orch,
					Metrics: collector,
					Logger:  logging.Named("admin"),
				})
				go func() {
					if err := admin.Serve(ctx, addr, router, logging.Named("admin")); err != nil {
						logging.Logger.Errorw("admin server stopped", "addr", addr, "error", err)
					}
				}()
			}

			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("admin-addr", "", "serve /healthz, /version and /metrics on this address")
	_ = a.viper.BindPFlag("admin.addr", cmd.Flags().Lookup("admin-addr"))
	return cmd
}
