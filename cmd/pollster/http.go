package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/pollster"
	"github.com/aretw0/pollster/internal/cli"
	httpAdapter "github.com/aretw0/pollster/pkg/adapters/http"
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Run the survey behind a JSON HTTP gateway",
	Long: `Serves POST /v1/inbound for inbound messages, session inspection under /v1/sessions,
per-user SSE streams under /v1/events, /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		server := httpAdapter.NewServer(app.Controller, app.Sink,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(pollster.Version),
			httpAdapter.WithMetricsHandler(promhttp.Handler()),
			httpAdapter.WithRunnerOptions(app.RunnerOptions()...),
		)
		srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: server.Handler()}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.ServeHTTP(ctx, srv, logger)
	},
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().StringP("addr", "a", "", "Listen address (overrides http.addr)")
}
