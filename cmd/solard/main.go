package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"solard/internal/audit"
	"solard/internal/config"
	"solard/internal/httpapi"
	"solard/internal/inference"
	"solard/internal/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		cfg     config.Config
	)
	root := &cobra.Command{
		Use:           "solard",
		Short:         "Solar power forecasting API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfgPath, cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml); flags override it")
	root.Flags().StringVar(&cfg.Addr, "addr", envOr("SOLARD_ADDR", ":8000"), "HTTP listen address, e.g. :8000")
	root.Flags().StringVar(&cfg.ModelDir, "model-dir", envOr("SOLARD_MODEL_DIR", "app"), "Directory holding model_<version>.json and scaler_<version>.json")
	root.Flags().StringVar(&cfg.ModelVersion, "model-version", envOr("SOLARD_MODEL_VERSION", "v2"), "Artifact version tag to load at startup")
	root.Flags().StringVar(&cfg.AuditLog, "audit-log", envOr("SOLARD_AUDIT_LOG", "predictions_log.csv"), "Append-only CSV audit log path")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", envOr("SOLARD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.Flags().StringSliceVar(&cfg.CORSOrigins, "cors-origin", nil, "Allowed CORS origins for the dashboard (repeatable)")
	return root
}

// merge fills unset flag values from the config file. Flags win.
func merge(cmd *cobra.Command, fileCfg config.Config, cfg *config.Config) {
	if !cmd.Flags().Changed("addr") && fileCfg.Addr != "" {
		cfg.Addr = fileCfg.Addr
	}
	if !cmd.Flags().Changed("model-dir") && fileCfg.ModelDir != "" {
		cfg.ModelDir = fileCfg.ModelDir
	}
	if !cmd.Flags().Changed("model-version") && fileCfg.ModelVersion != "" {
		cfg.ModelVersion = fileCfg.ModelVersion
	}
	if !cmd.Flags().Changed("audit-log") && fileCfg.AuditLog != "" {
		cfg.AuditLog = fileCfg.AuditLog
	}
	if !cmd.Flags().Changed("log-level") && fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if !cmd.Flags().Changed("cors-origin") && len(fileCfg.CORSOrigins) > 0 {
		cfg.CORSOrigins = fileCfg.CORSOrigins
	}
	if fileCfg.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fileCfg.MaxBodyBytes
	}
}

func run(cmd *cobra.Command, cfgPath string, cfg config.Config) error {
	if cfgPath != "" {
		fileCfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		merge(cmd, fileCfg, &cfg)
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()

	// Startup: load artifacts. A failure here degrades the service (503 on
	// /predict) instead of aborting; Load already logged the cause.
	logger.Info().Str("dir", cfg.ModelDir).Str("version", cfg.ModelVersion).Msg("loading ML models")
	reg := registry.New(logger)
	_ = reg.Load(cfg.ModelDir, cfg.ModelVersion)

	aud := audit.Open(cfg.AuditLog, logger)
	eng := inference.New(reg, aud, logger)

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins)
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(eng)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("solard listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	// Drain the audit queue, then release model memory.
	aud.Close()
	reg.Unload()
	return nil
}
