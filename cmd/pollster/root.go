package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pollster"
	"github.com/aretw0/pollster/internal/cli"
	"github.com/aretw0/pollster/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pollster",
	Short: "Pollster is a chat survey bot",
	Long: `Pollster asks each chat user a fixed sequence of questions, validates the answers
against the offered choices and appends every completed survey to a record sink.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (debug, info, warn, error)")
}

// loadConfig resolves configuration from the --config file, the environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

// bootstrap loads configuration and builds the App with a stderr logger.
func bootstrap(cmd *cobra.Command) (*config.Config, *slog.Logger, *pollster.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := cli.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	app, err := pollster.New(cfg, pollster.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, app, nil
}
