// Package config provides configuration management for the predictor.
package config

import (
	"fmt"

	"github.com/yourusername/epl-predictor/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Fixtures []string       `mapstructure:"fixtures" validate:"dive,fixture"`
	Teams    []TeamConfig   `mapstructure:"teams" validate:"dive"`
	Output   OutputConfig   `mapstructure:"output" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig selects and tunes the historical results feed
type DataConfig struct {
	Source          string  `mapstructure:"source" validate:"required,oneof=http file postgres sqlite"`
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	Path            string  `mapstructure:"path"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CachePath       string  `mapstructure:"cache_path"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gt=0"`
}

// DatabaseConfig represents the Postgres connection used by the postgres source
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// ModelConfig tunes the score distribution estimator
type ModelConfig struct {
	Method                string `mapstructure:"method" validate:"required,method"`
	MaxGoals              int    `mapstructure:"max_goals" validate:"min=1,max=15"`
	Trials                int    `mapstructure:"trials" validate:"gt=0"`
	Seed                  int64  `mapstructure:"seed"`
	LeagueAverageFallback bool   `mapstructure:"league_average_fallback"`
}

// TeamConfig is display metadata for a single team
type TeamConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	BadgeURL string `mapstructure:"badge_url" validate:"omitempty,url"`
	Color    string `mapstructure:"color"`
}

// OutputConfig represents presentation settings
type OutputConfig struct {
	Format   string `mapstructure:"format" validate:"required,oneof=table json"`
	JSONPath string `mapstructure:"json_path"`
}

// MetricsConfig represents metrics export configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// MatchDay returns the configured fixture list numbered from 1
func (c *Config) MatchDay() ([]models.Fixture, error) {
	fixtures := make([]models.Fixture, 0, len(c.Fixtures))
	for i, raw := range c.Fixtures {
		fixture, err := models.ParseFixture(raw)
		if err != nil {
			return nil, fmt.Errorf("fixture %d: %w", i+1, err)
		}
		fixture.Number = i + 1
		fixtures = append(fixtures, fixture)
	}
	return fixtures, nil
}

// TeamDirectory returns team display metadata keyed by team name
func (c *Config) TeamDirectory() map[string]models.TeamMetadata {
	directory := make(map[string]models.TeamMetadata, len(c.Teams))
	for _, team := range c.Teams {
		directory[team.Name] = models.TeamMetadata{BadgeURL: team.BadgeURL, Color: team.Color}
	}
	return directory
}
