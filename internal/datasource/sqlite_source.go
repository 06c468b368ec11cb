package datasource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yourusername/epl-predictor/internal/database"
	"github.com/yourusername/epl-predictor/internal/models"
)

// SQLiteSourceName identifies the SQLite source
const SQLiteSourceName = "sqlite"

const sqliteResultsQuery = `
SELECT match_date, kickoff_time, home_team, away_team, home_goals, away_goals
FROM ` + database.ResultsTable + `
ORDER BY match_date, kickoff_time`

// SQLiteSource reads results from a local SQLite file
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource creates a source over an open database
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// FetchResults queries every stored result
func (s *SQLiteSource) FetchResults(ctx context.Context) ([]models.MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, sqliteResultsQuery)
	if err != nil {
		return nil, NewDataSourceError(SQLiteSourceName, ErrCodeQueryFailed, "failed to query results", err)
	}
	defer rows.Close()

	var results []models.MatchResult
	for rows.Next() {
		var (
			r    models.MatchResult
			date string
		)
		if err := rows.Scan(&date, &r.KickoffTime, &r.HomeTeam, &r.AwayTeam, &r.HomeGoals, &r.AwayGoals); err != nil {
			return nil, NewDataSourceError(SQLiteSourceName, ErrCodeInvalidData, "failed to scan result", err)
		}
		if r.Date, err = ParseDate(date); err != nil {
			return nil, NewDataSourceError(SQLiteSourceName, ErrCodeInvalidData, fmt.Sprintf("row %d", len(results)+1), err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewDataSourceError(SQLiteSourceName, ErrCodeQueryFailed, "failed to iterate results", err)
	}
	return results, nil
}

// Name returns the data source name
func (s *SQLiteSource) Name() string {
	return SQLiteSourceName
}

// Close closes the database
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
