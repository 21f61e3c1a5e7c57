package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/scrapetab/internal/config"
	"github.com/nao1215/scrapetab/internal/log"
	"github.com/nao1215/scrapetab/internal/metrics"
	"github.com/spf13/cobra"
)

// pushTimeout bounds the Pushgateway request made after a run.
const pushTimeout = 10 * time.Second

// loadConfig builds the configuration from defaults, the configuration file
// and the global flags. Command specific flags are applied by the caller.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	if err := setString(cmd, "log-file", &cfg.LogFile); err != nil {
		return nil, err
	}
	if err := setString(cmd, "pushgateway", &cfg.PushgatewayURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting logger and installs it as the default.
// The returned function closes the log file, if any.
func setupLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	logger, closeLog, err := log.Setup(os.Stderr, log.Options{
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return logger, closeLog, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// pushMetrics sends the run metrics when a Pushgateway is configured.
// A failed push is logged and otherwise ignored.
func pushMetrics(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := recorder.Push(ctx, cfg.PushgatewayURL, cfg.PushJob); err != nil {
		logger.Warn("could not push metrics", "error", err)
		return
	}
	logger.Debug("metrics pushed", "url", cfg.PushgatewayURL, "job", cfg.PushJob)
}

// setString overrides dst with the named flag when it was given.
func setString(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setInt overrides dst with the named flag when it was given.
func setInt(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setInt64 overrides dst with the named flag when it was given.
func setInt64(cmd *cobra.Command, name string, dst *int64) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setDuration overrides dst with the named flag when it was given.
func setDuration(cmd *cobra.Command, name string, dst *time.Duration) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
