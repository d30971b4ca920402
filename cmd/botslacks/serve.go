package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/botslacks/botslacks/internal/bot"
	"github.com/botslacks/botslacks/internal/channels/slack"
	"github.com/botslacks/botslacks/internal/commands"
	"github.com/botslacks/botslacks/internal/config"
	"github.com/botslacks/botslacks/internal/jenkins"
	"github.com/botslacks/botslacks/internal/observability"
)

func buildServeCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to Slack and start dispatching commands",
		Long: `Connect to Slack and start dispatching commands.

The bot will:
1. Load configuration from the specified file
2. Build the command registry (help, plus jenkins when enabled)
3. Open the Slack session and process messages until interrupted`,
		Example: `  # Start with default config
  botslacks serve

  # Start with custom config and debug logging
  botslacks serve --config /etc/botslacks/bot.yaml --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, debug)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "botslacks.yaml",
		"Path to YAML configuration file")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false,
		"Enable debug logging (verbose output)")

	return cmd
}

func runServe(ctx context.Context, configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	if cfg.Metrics.Enabled {
		startMetricsServer(ctx, logger, registry, cfg.Metrics.Addr)
	}

	adapter := slack.NewAdapter(slack.Config{Token: cfg.Slack.Token}, logger)
	b := bot.New(adapter, logger, metrics)

	if cfg.Jenkins.Enabled {
		module := jenkins.New(cfg.Jenkins, logger)
		if err := module.Start(ctx); err != nil {
			return fmt.Errorf("jenkins integration: %w", err)
		}
		defer module.Stop()
		b.Register(module.Command())
	}
	b.Register(commands.NewHelpCommand(b.Registry()))

	if err := adapter.Start(ctx); err != nil {
		return fmt.Errorf("slack session: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := adapter.Stop(stopCtx); err != nil {
			logger.Warn("adapter shutdown", "error", err)
		}
	}()

	err = b.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}

// startMetricsServer exposes the prometheus registry until the context ends.
func startMetricsServer(ctx context.Context, logger *slog.Logger, registry *prometheus.Registry, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
