package datasource

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/epl-predictor/internal/database"
	"github.com/yourusername/epl-predictor/internal/models"
)

// PostgresSourceName identifies the Postgres source
const PostgresSourceName = "postgres"

const postgresResultsQuery = `
SELECT match_date, kickoff_time, home_team, away_team, home_goals, away_goals
FROM ` + database.ResultsTable + `
ORDER BY match_date, kickoff_time`

// PostgresSource reads results from the match_results table
type PostgresSource struct {
	db *database.DB
}

// NewPostgresSource creates a source over an open pool
func NewPostgresSource(db *database.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// FetchResults queries every stored result
func (s *PostgresSource) FetchResults(ctx context.Context) ([]models.MatchResult, error) {
	rows, err := s.db.GetPool().Query(ctx, postgresResultsQuery)
	if err != nil {
		return nil, NewDataSourceError(PostgresSourceName, ErrCodeQueryFailed, "failed to query results", err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MatchResult])
	if err != nil {
		return nil, NewDataSourceError(PostgresSourceName, ErrCodeInvalidData, "failed to scan results", err)
	}
	return results, nil
}

// Name returns the data source name
func (s *PostgresSource) Name() string {
	return PostgresSourceName
}

// Close closes the connection pool
func (s *PostgresSource) Close() error {
	s.db.Close()
	return nil
}
