package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"whalecopy/whalegate/pkg/cli"
	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/server"
	"whalecopy/whalegate/pkg/telemetry/health"
	"whalecopy/whalegate/pkg/telemetry/logging"
	"whalecopy/whalegate/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watch         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the whalegate server",
	Long: `Start the whalegate server with the specified configuration.

The server listens on the configured address and forwards validated calls to
the Polymarket data, gamma and clob APIs.

Examples:
  # Start with defaults and WHALEGATE_* environment overrides
  whalegate run

  # Start with a config file and reload it when it changes
  whalegate run --config /etc/whalegate/whalegate.yaml --watch

  # Override listen address
  whalegate run --listen 0.0.0.0:8080

  # Validate config without starting server
  whalegate run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload the config file when it changes")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Setup(&cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	srv, err := server.New(cfg,
		server.WithLogger(logger),
		server.WithVersion(health.NewVersionInfo(Version, GitCommit, BuildDate)),
	)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if runFlags.watch {
		if cfgFile == "" {
			logger.Warn("--watch has no effect without --config")
		} else {
			watcher := config.NewWatcher(cfgFile, logger)
			go func() {
				err := watcher.Watch(ctx, func(next *config.Config) {
					_ = srv.Reload(next)
				})
				if err != nil {
					logger.Error("configuration watcher failed", "error", err)
				}
			}()
		}
	}

	fmt.Printf("✓ Health endpoint: http://%s%s\n", cfg.Proxy.ListenAddress, cfg.Telemetry.Health.LivenessPath)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Proxy.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Whalegate v%s\n", Version)
	if cfgFile != "" {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("upstreams configured",
		"data", cfg.Upstreams.DataURL,
		"gamma", cfg.Upstreams.GammaURL,
		"clob", cfg.Upstreams.ClobURL,
	)
	slog.Debug("access control",
		"auth_mode", cfg.Security.Auth.Mode,
		"allowed_origins", cfg.Security.Origin.AllowedOrigins,
	)
}
