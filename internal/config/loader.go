// Package config provides configuration management for the predictor.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is used when no path is supplied
	DefaultConfigPath = "config/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. EPL_PREDICTOR_MODEL_METHOD
	EnvPrefix = "EPL_PREDICTOR"
	// DefaultResultsURL is the 2023/24 Premier League results feed
	DefaultResultsURL = "https://www.football-data.co.uk/mmz4281/2324/E0.csv"
	// DefaultCachePath holds fetched feeds between runs
	DefaultCachePath = "./.cache/results.json"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration, tolerating a missing file
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	return v
}

// setDefaults registers every optional key so environment overrides apply
// even when the file omits it
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "epl-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("data.source", "http")
	v.SetDefault("data.url", DefaultResultsURL)
	v.SetDefault("data.path", "")
	v.SetDefault("data.cache_ttl_seconds", 0)
	v.SetDefault("data.cache_path", DefaultCachePath)
	v.SetDefault("data.timeout_seconds", 30)
	v.SetDefault("data.max_retries", 3)
	v.SetDefault("data.rate_limit", 2.0)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 4)

	v.SetDefault("model.method", "exact")
	v.SetDefault("model.max_goals", 5)
	v.SetDefault("model.trials", 100000)
	v.SetDefault("model.seed", 0)
	v.SetDefault("model.league_average_fallback", false)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.json_path", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "./output/epl_predictor.prom")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
