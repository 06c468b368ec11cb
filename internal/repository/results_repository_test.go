package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/epl-predictor/internal/models"
)

func sampleResults() []models.MatchResult {
	day := time.Date(2023, 8, 12, 0, 0, 0, 0, time.UTC)
	return []models.MatchResult{
		{Date: day, KickoffTime: "15:00", HomeTeam: "Arsenal", AwayTeam: "Nott'm Forest", HomeGoals: 2, AwayGoals: 1},
		{Date: day, KickoffTime: "15:00", HomeTeam: "Everton", AwayTeam: "Fulham", HomeGoals: 0, AwayGoals: 1},
		{Date: day.AddDate(0, 0, 7), KickoffTime: "17:30", HomeTeam: "Fulham", AwayTeam: "Arsenal", HomeGoals: 2, AwayGoals: 2},
	}
}

func TestNewResultsRepository(t *testing.T) {
	repo, err := NewResultsRepository(sampleResults())
	require.NoError(t, err)

	assert.Equal(t, 3, repo.Len())
	assert.Len(t, repo.All(), 3)
	assert.Equal(t, []string{"Arsenal", "Everton", "Fulham", "Nott'm Forest"}, repo.Teams())
}

func TestNewResultsRepositoryEmpty(t *testing.T) {
	_, err := NewResultsRepository(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestNewResultsRepositoryMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.MatchResult)
	}{
		{"missing home team", func(m *models.MatchResult) { m.HomeTeam = "" }},
		{"missing away team", func(m *models.MatchResult) { m.AwayTeam = "" }},
		{"negative home goals", func(m *models.MatchResult) { m.HomeGoals = -1 }},
		{"negative away goals", func(m *models.MatchResult) { m.AwayGoals = -2 }},
		{"team plays itself", func(m *models.MatchResult) { m.AwayTeam = m.HomeTeam }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := sampleResults()
			tt.mutate(&results[1])

			_, err := NewResultsRepository(results)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrDataUnavailable))
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestFilterByVenue(t *testing.T) {
	repo, err := NewResultsRepository(sampleResults())
	require.NoError(t, err)

	home := repo.FilterByHome("Fulham")
	require.Len(t, home, 1)
	assert.Equal(t, "Arsenal", home[0].AwayTeam)

	away := repo.FilterByAway("Fulham")
	require.Len(t, away, 1)
	assert.Equal(t, "Everton", away[0].HomeTeam)

	assert.Empty(t, repo.FilterByHome("Luton"))
	assert.NotNil(t, repo.FilterByAway("Luton"))
}

func TestRepositoryIsImmutable(t *testing.T) {
	input := sampleResults()
	repo, err := NewResultsRepository(input)
	require.NoError(t, err)

	input[0].HomeGoals = 9
	all := repo.All()
	all[1].AwayGoals = 7
	teams := repo.Teams()
	teams[0] = "Changed"

	fresh := repo.All()
	assert.Equal(t, 2, fresh[0].HomeGoals)
	assert.Equal(t, 1, fresh[1].AwayGoals)
	assert.Equal(t, "Arsenal", repo.Teams()[0])
}
