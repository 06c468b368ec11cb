package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/epl-predictor/internal/config"
	"github.com/yourusername/epl-predictor/internal/database"
	"github.com/yourusername/epl-predictor/internal/repository"
)

// SourceType represents the type of data source
type SourceType string

const (
	// HTTPSourceType downloads the results CSV
	HTTPSourceType SourceType = HTTPSourceName
	// FileSourceType reads a local results CSV
	FileSourceType SourceType = FileSourceName
	// PostgresSourceType reads the match_results table from Postgres
	PostgresSourceType SourceType = PostgresSourceName
	// SQLiteSourceType reads the match_results table from a SQLite file
	SQLiteSourceType SourceType = SQLiteSourceName
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// Create builds the configured source, wrapped in a cache when a TTL is set
func (f *Factory) Create(ctx context.Context) (DataSource, error) {
	source, err := f.create(ctx, SourceType(f.config.Data.Source))
	if err != nil {
		return nil, err
	}

	if ttl := f.config.Data.CacheTTLSeconds; ttl > 0 {
		return NewCachedSource(source, f.cacheKey(), time.Duration(ttl)*time.Second, f.config.Data.CachePath), nil
	}
	return source, nil
}

// cacheKey identifies the configured feed so a shared cache file never
// serves one feed's results for another
func (f *Factory) cacheKey() string {
	data := f.config.Data
	switch SourceType(data.Source) {
	case HTTPSourceType:
		return data.Source + "|" + data.URL
	case PostgresSourceType:
		db := f.config.Database
		return fmt.Sprintf("%s|%s:%d/%s", data.Source, db.Host, db.Port, db.Name)
	default:
		return data.Source + "|" + data.Path
	}
}

func (f *Factory) create(ctx context.Context, sourceType SourceType) (DataSource, error) {
	data := f.config.Data

	switch sourceType {
	case HTTPSourceType:
		httpCfg := DefaultHTTPClientConfig()
		httpCfg.Timeout = time.Duration(data.TimeoutSeconds) * time.Second
		httpCfg.MaxRetries = data.MaxRetries
		httpCfg.RateLimit = data.RateLimit
		return NewHTTPSource(NewRateLimitedHTTPClient(httpCfg, f.logger), data.URL, f.logger), nil

	case FileSourceType:
		return NewFileSource(data.Path), nil

	case PostgresSourceType:
		db, err := database.Initialize(ctx, f.config)
		if err != nil {
			return nil, NewDataSourceError(PostgresSourceName, ErrCodeNetworkError, "failed to connect", err)
		}
		return NewPostgresSource(db), nil

	case SQLiteSourceType:
		db, err := database.OpenSQLite(ctx, data.Path)
		if err != nil {
			return nil, NewDataSourceError(SQLiteSourceName, ErrCodeNotFound, "failed to open", err)
		}
		return NewSQLiteSource(db), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", sourceType)
	}
}

// ListAvailableSources returns every supported source type
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{HTTPSourceType, FileSourceType, PostgresSourceType, SQLiteSourceType}
}

// LoadRepository fetches results from source and builds the in-memory table
func LoadRepository(ctx context.Context, source DataSource) (*repository.InMemoryResultsRepository, error) {
	results, err := source.FetchResults(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewResultsRepository(results)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.Name(), err)
	}
	return repo, nil
}
