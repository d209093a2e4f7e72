package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/awekas"
	"github.com/jpalmerr/awekas/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// serveCmd starts the connector.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the station and serve the state API",
	Long: `Start the AWEKAS connector.

The connector will:
  - Load configuration from the specified YAML file
  - Poll the AWEKAS API immediately, then on the request interval
  - Serve the states, a live state page and Prometheus metrics on the
    configured port, unless disable_server is set

The connector runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  awekas serve -c config.yaml
  awekas serve --env-file .env --config /etc/awekas/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := cmdLogger(cmd)
	if err != nil {
		return err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"store", cfg.Store.Type,
		"port", cfg.Port,
		"server", !cfg.DisableServer,
	)

	opts, closeStore, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()
	opts = append(opts, awekas.WithLogger(logger))

	conn, err := awekas.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start connector - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- conn.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("connector error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("connector error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
