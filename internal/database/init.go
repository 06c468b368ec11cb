package database

import (
	"context"
	"fmt"

	"github.com/yourusername/epl-predictor/internal/config"
)

// ResultsTable is the table both SQL sources read finished matches from
const ResultsTable = "match_results"

// Initialize creates a database connection pool and verifies the results
// table is present
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = db.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
		ResultsTable,
	).Scan(&exists)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		db.Close()
		return nil, fmt.Errorf("table %s not found; load results before predicting", ResultsTable)
	}

	return db, nil
}
