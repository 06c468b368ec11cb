// Package main provides the entry point for the match outcome predictor CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/epl-predictor/internal/config"
	"github.com/yourusername/epl-predictor/internal/datasource"
	applogger "github.com/yourusername/epl-predictor/internal/logger"
	"github.com/yourusername/epl-predictor/internal/metrics"
	"github.com/yourusername/epl-predictor/internal/prediction"
	"github.com/yourusername/epl-predictor/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	cfg         *config.Config
	logger      *logrus.Logger
	predLogger  *applogger.PredictionLogger
	auditLogger *applogger.AuditLogger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:     "predictor",
	Short:   "Poisson match outcome predictor",
	Long:    `Estimate home win, draw and away win probabilities from historical results.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogging()
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}
		return nil
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(predictCmd, matchdayCmd, fixturesCmd, teamsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return err
		}
	}

	return config.Validate(cfg)
}

// setupLogging sends logs to stderr so stdout carries only rendered output
func setupLogging() {
	logger = applogger.NewLoggerWithOutput(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)
	predLogger = applogger.NewPredictionLogger(logger)
	auditLogger = applogger.NewAuditLogger(logger)
}

// loadResults fetches the configured feed into an in-memory table
func loadResults(ctx context.Context) (*repository.InMemoryResultsRepository, error) {
	source, err := datasource.NewFactory(cfg, logger).Create(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close data source")
		}
	}()

	start := time.Now()
	repo, err := datasource.LoadRepository(ctx, source)
	if err != nil {
		return nil, err
	}

	rows := len(repo.All())
	metrics.RecordResultsLoaded(source.Name(), rows)
	predLogger.LogResultsLoaded(source.Name(), rows, len(repo.Teams()), float64(time.Since(start).Microseconds())/1000)
	return repo, nil
}

// newPredictor wires the estimators for method
func newPredictor(repo repository.ResultsRepository, method string) (*prediction.Predictor, error) {
	estimator, err := prediction.NewEstimator(method, cfg.Model.MaxGoals, cfg.Model.Trials, cfg.Model.Seed)
	if err != nil {
		return nil, err
	}
	if seeded, ok := estimator.(prediction.Seeded); ok {
		predLogger.WithFields(logrus.Fields{
			"seed":   seeded.Seed(),
			"trials": cfg.Model.Trials,
		}).Info("Simulation seed resolved")
	}

	strength := prediction.NewStrengthEstimator(prediction.StrengthOptions{
		LeagueAverageFallback: cfg.Model.LeagueAverageFallback,
	}, predLogger)
	return prediction.NewPredictor(repo, strength, estimator, predLogger), nil
}

// writeMetrics exports the registry when metrics are enabled
func writeMetrics() {
	if !cfg.Metrics.Enabled {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logger.WithError(err).WithField("path", cfg.Metrics.TextfilePath).Warn("Failed to write metrics textfile")
		return
	}
	logger.WithField("path", cfg.Metrics.TextfilePath).Debug("Metrics textfile written")
}
