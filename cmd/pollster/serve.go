package main

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/pollster/internal/cli"
	"github.com/aretw0/pollster/pkg/adapters/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the survey as a Telegram bot",
	Long: `Long-polls the Telegram Bot API, runs every user through the survey and exposes
Prometheus metrics on http.metrics_addr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := cfg.RequireTelegram(); err != nil {
			return err
		}
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug)
		if err != nil {
			return err
		}
		logger.Info("Authorized on Telegram", "account", bot.Self.UserName)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		g, gctx := errgroup.WithContext(ctx)
		if cfg.HTTP.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{Addr: cfg.HTTP.MetricsAddr, Handler: mux}
			g.Go(func() error { return cli.ServeHTTP(gctx, srv, logger) })
		}

		r := app.NewRunner(telegram.NewMessenger(bot, telegram.WithLogger(logger)))
		g.Go(func() error {
			return r.Run(gctx, telegram.Updates(gctx, bot, cfg.Telegram.PollTimeout, logger))
		})

		err = g.Wait()
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Stopped by signal", "signal", sig.String())
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
