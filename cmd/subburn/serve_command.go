package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"subburn/internal/config"
	"subburn/internal/daemon"
	"subburn/internal/logging"
)

func newServeCommand(configFlag *string) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and processing pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Credentials are commonly kept in a .env next to the binary;
			// absence is not an error.
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load env file %s: %w", envFile, err)
				}
			} else if _, err := os.Stat(".env"); err == nil {
				if err := godotenv.Load(); err != nil {
					return fmt.Errorf("load .env: %w", err)
				}
			}

			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if exists {
				logger.Info("configuration loaded", logging.String("path", path))
			} else {
				logger.Info("no configuration file found, using defaults and environment", logging.String("path", path))
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			d, err := daemon.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			defer d.Close()

			return d.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from this file before reading config")
	return cmd
}
