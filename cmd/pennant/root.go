package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pennant-path/internal/config"
	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
)

var (
	configFile  string
	matchesPath string
	metricsAddr string
	focusTeam   string

	cfg           *config.Config
	log           *logrus.Logger
	metricsServer *http.Server
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&matchesPath, "matches", "m", "", "CSV match history (reads the matches table when empty)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.PersistentFlags().StringVarP(&focusTeam, "focus", "f", "", "Focus team (overrides features.focus_team)")

	rootCmd.AddCommand(ratingsCmd, featuresCmd, projectCmd, backtestCmd, outlookCmd, importCmd)
}

var rootCmd = &cobra.Command{
	Use:           "pennant",
	Short:         "Rate teams from match history and project their postseason path",
	Long:          `Folds a dated match history into ELO ratings, extracts pre-match features, and estimates a focus team's chance of advancing through the stepladder playoff.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel)
		if !cfg.IsDevelopment() {
			log.SetFormatter(&logrus.JSONFormatter{})
		}
		return startMetricsServer()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return stopMetricsServer(cmd.Context())
	},
}

func loadConfig(ctx context.Context) error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.LoadSecretsFromAWS(ctx, loaded); err != nil {
		return err
	}
	if focusTeam != "" {
		loaded.Features.FocusTeam = focusTeam
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func startMetricsServer() error {
	addr := metricsAddr
	if addr == "" && cfg.Metrics.Enabled {
		addr = fmt.Sprintf(":%d", cfg.Metrics.Port)
	}
	if addr == "" {
		return nil
	}

	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("Serving metrics")
	return nil
}

func stopMetricsServer(ctx context.Context) error {
	if metricsServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	err := metricsServer.Shutdown(shutdownCtx)
	metricsServer = nil
	return err
}

func requireFocus() (string, error) {
	if cfg.Features.FocusTeam == "" {
		return "", errors.New("no focus team: pass --focus or set features.focus_team")
	}
	return cfg.Features.FocusTeam, nil
}
