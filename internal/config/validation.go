// Package config provides configuration management for the predictor.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yourusername/epl-predictor/internal/models"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	mustRegister(v, "environment", validateEnvironment)
	mustRegister(v, "loglevel", validateLogLevel)
	mustRegister(v, "method", validateMethod)
	mustRegister(v, "fixture", validateFixture)

	return &CustomValidator{validator: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateMethod validates the score distribution method
func validateMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "exact", "simulation":
		return true
	default:
		return false
	}
}

// validateFixture validates a "Home - Away" fixture string
func validateFixture(fl validator.FieldLevel) bool {
	_, err := models.ParseFixture(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Data.Source {
	case "http":
		if cfg.Data.URL == "" {
			return fmt.Errorf("data.url is required for the http source")
		}
	case "file", "sqlite":
		if cfg.Data.Path == "" {
			return fmt.Errorf("data.path is required for the %s source", cfg.Data.Source)
		}
	case "postgres":
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required for the postgres source")
		}
		if cfg.Database.MaxConnections <= 0 {
			return fmt.Errorf("database.max_connections must be positive for the postgres source")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	if cfg.Model.Method == "simulation" && cfg.Model.Trials < 1000 {
		return fmt.Errorf("model.trials must be at least 1000 for the simulation method, got %d", cfg.Model.Trials)
	}

	if cfg.Output.Format == "json" && cfg.Output.JSONPath == "" {
		return fmt.Errorf("output.json_path is required for json output")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		return fmt.Errorf("metrics.textfile_path is required when metrics are enabled")
	}

	seen := make(map[string]bool, len(cfg.Teams))
	for _, team := range cfg.Teams {
		if seen[team.Name] {
			return fmt.Errorf("team %q is listed more than once", team.Name)
		}
		seen[team.Name] = true
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "method":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: exact, simulation\n", field)
		case "fixture":
			errMsg += fmt.Sprintf("- Field '%s' must look like \"Home - Away\", got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
