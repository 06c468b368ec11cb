package repository

import "github.com/yourusername/epl-predictor/internal/models"

// ResultsRepository defines read-only access to the historical results table
type ResultsRepository interface {
	// All returns every loaded match result
	All() []models.MatchResult

	// FilterByHome returns the matches the team played at home
	FilterByHome(team string) []models.MatchResult

	// FilterByAway returns the matches the team played away
	FilterByAway(team string) []models.MatchResult

	// Teams returns the distinct team names, sorted
	Teams() []string
}
