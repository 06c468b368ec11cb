package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/epl-predictor/internal/models"
)

// DataSource defines the interface for fetching finished match results
type DataSource interface {
	// FetchResults retrieves every finished match the source holds
	FetchResults(ctx context.Context) ([]models.MatchResult, error)

	// Name returns the name of the data source
	Name() string

	// Close releases any resources held by the source
	Close() error
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "network_error")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes both models.ErrDataUnavailable and the underlying cause
func (e DataSourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{models.ErrDataUnavailable, e.Err}
	}
	return []error{models.ErrDataUnavailable}
}

// Common error codes
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
	ErrCodeQueryFailed  = "query_failed"
	ErrCodeUnknown      = "unknown"
)

// ErrCircuitOpen is returned while the HTTP circuit breaker is open
var ErrCircuitOpen = errors.New("circuit breaker open")

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
