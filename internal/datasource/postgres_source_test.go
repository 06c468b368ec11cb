package datasource

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/epl-predictor/internal/database"
)

const testDSNEnv = "EPL_PREDICTOR_TEST_DSN"

// TestPostgresSourceIntegration needs a reachable Postgres at $EPL_PREDICTOR_TEST_DSN.
// The pool holds one connection so the temp table stays visible.
func TestPostgresSourceIntegration(t *testing.T) {
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" || testing.Short() {
		t.Skip("Skipping integration test: " + testDSNEnv + " not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewDBFromDSN(ctx, dsn, 1)
	require.NoError(t, err)
	require.NoError(t, db.HealthCheck(ctx))

	pool := db.GetPool()
	_, err = pool.Exec(ctx, `CREATE TEMP TABLE match_results (
		match_date   DATE    NOT NULL,
		kickoff_time TEXT    NOT NULL DEFAULT '',
		home_team    TEXT    NOT NULL,
		away_team    TEXT    NOT NULL,
		home_goals   INTEGER NOT NULL,
		away_goals   INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO match_results VALUES
		('2023-08-11', '20:00', 'Burnley', 'Man City', 0, 3),
		('2023-08-12', '12:30', 'Arsenal', 'Nott''m Forest', 2, 1)`)
	require.NoError(t, err)

	source := NewPostgresSource(db)
	defer source.Close()

	results, err := source.FetchResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Burnley", results[0].HomeTeam)
	assert.Equal(t, 3, results[0].AwayGoals)
	assert.Equal(t, "Nott'm Forest", results[1].AwayTeam)
}
