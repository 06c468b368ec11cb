package repository

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/yourusername/epl-predictor/internal/models"
)

// InMemoryResultsRepository is an immutable in-memory results table
type InMemoryResultsRepository struct {
	results []models.MatchResult
	teams   []string
}

// NewResultsRepository validates and stores a copy of results. An empty set or
// any malformed row fails with models.ErrDataUnavailable.
func NewResultsRepository(results []models.MatchResult) (*InMemoryResultsRepository, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: results table is empty", models.ErrDataUnavailable)
	}

	validate := validator.New()
	stored := make([]models.MatchResult, len(results))
	seen := make(map[string]struct{})
	for i, result := range results {
		if err := validate.Struct(result); err != nil {
			return nil, fmt.Errorf("%w: row %d (%s): %v", models.ErrDataUnavailable, i+1, result.ScoreLine(), err)
		}
		stored[i] = result
		seen[result.HomeTeam] = struct{}{}
		seen[result.AwayTeam] = struct{}{}
	}

	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	return &InMemoryResultsRepository{results: stored, teams: teams}, nil
}

// All returns a copy of every result
func (r *InMemoryResultsRepository) All() []models.MatchResult {
	out := make([]models.MatchResult, len(r.results))
	copy(out, r.results)
	return out
}

// FilterByHome returns the results where team was the home side
func (r *InMemoryResultsRepository) FilterByHome(team string) []models.MatchResult {
	return r.filter(func(m models.MatchResult) bool { return m.HomeTeam == team })
}

// FilterByAway returns the results where team was the away side
func (r *InMemoryResultsRepository) FilterByAway(team string) []models.MatchResult {
	return r.filter(func(m models.MatchResult) bool { return m.AwayTeam == team })
}

// Teams returns the sorted team names seen in the table
func (r *InMemoryResultsRepository) Teams() []string {
	out := make([]string, len(r.teams))
	copy(out, r.teams)
	return out
}

// Len returns the number of stored results
func (r *InMemoryResultsRepository) Len() int {
	return len(r.results)
}

func (r *InMemoryResultsRepository) filter(keep func(models.MatchResult) bool) []models.MatchResult {
	out := make([]models.MatchResult, 0)
	for _, result := range r.results {
		if keep(result) {
			out = append(out, result)
		}
	}
	return out
}
