package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yourusername/epl-predictor/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS match_results (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	match_date   TEXT    NOT NULL,
	kickoff_time TEXT    NOT NULL DEFAULT '',
	home_team    TEXT    NOT NULL,
	away_team    TEXT    NOT NULL,
	home_goals   INTEGER NOT NULL,
	away_goals   INTEGER NOT NULL
)`

// SQLiteDateLayout is how match dates are stored in SQLite
const SQLiteDateLayout = "2006-01-02"

// OpenSQLite opens a results database file
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	return db, nil
}

// EnsureSQLiteSchema creates the results table if missing
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create %s: %w", ResultsTable, err)
	}
	return nil
}

// InsertResults stores results in a single transaction
func InsertResults(ctx context.Context, db *sql.DB, results []models.MatchResult) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO match_results (match_date, kickoff_time, home_team, away_team, home_goals, away_goals)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx,
			r.Date.Format(SQLiteDateLayout), r.KickoffTime, r.HomeTeam, r.AwayTeam, r.HomeGoals, r.AwayGoals,
		); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return fmt.Errorf("insert failed: %w, rollback failed: %w", err, rollbackErr)
			}
			return fmt.Errorf("failed to insert %s: %w", r.ScoreLine(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
