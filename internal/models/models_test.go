package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		home    string
		away    string
		wantErr bool
	}{
		{"spaced separator", "Liverpool - West Ham", "Liverpool", "West Ham", false},
		{"bare separator", "Luton-Wolves", "Luton", "Wolves", false},
		{"apostrophe in name", "Man City - Nott'm Forest", "Man City", "Nott'm Forest", false},
		{"missing away", "Arsenal - ", "", "", true},
		{"no separator", "Arsenal Tottenham", "", "", true},
		{"same team", "Chelsea - Chelsea", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture, err := ParseFixture(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.home, fixture.HomeTeam)
			assert.Equal(t, tt.away, fixture.AwayTeam)
		})
	}
}

func TestFixtureIDStable(t *testing.T) {
	a := Fixture{HomeTeam: "Arsenal", AwayTeam: "Tottenham"}
	b := Fixture{Number: 7, HomeTeam: "Arsenal", AwayTeam: "Tottenham"}
	reversed := Fixture{HomeTeam: "Tottenham", AwayTeam: "Arsenal"}

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), reversed.ID())
	assert.Equal(t, "Arsenal - Tottenham", a.String())
}

func TestScoreProbabilityVector(t *testing.T) {
	v := ScoreProbabilityVector{0.2, 0.4, 0.25, 0.1}

	assert.Equal(t, 3, v.MaxGoals())
	assert.InDelta(t, 0.95, v.Sum(), 1e-12)
	assert.InDelta(t, 0.05, v.TruncatedMass(), 1e-12)
	assert.Equal(t, 1, v.MostLikely())
}

func TestOutcomeFairOdds(t *testing.T) {
	outcome := OutcomeProbabilities{HomeWin: 0.5, Draw: 0.25, AwayWin: 0}
	odds := outcome.FairOdds()

	assert.True(t, odds.HomeWin.Equal(decimal.NewFromInt(2)))
	assert.True(t, odds.Draw.Equal(decimal.NewFromInt(4)))
	assert.True(t, odds.AwayWin.IsZero())
	assert.InDelta(t, 0.75, outcome.Total(), 1e-12)
}

func TestHistoryErrorUnwrap(t *testing.T) {
	var err error = &HistoryError{Team: "Luton", Venue: VenueHome}

	assert.True(t, errors.Is(err, ErrInsufficientHistory))
	assert.Contains(t, err.Error(), "Luton")
	assert.Contains(t, err.Error(), "home")
}

func TestScoreLine(t *testing.T) {
	m := MatchResult{HomeTeam: "Burnley", AwayTeam: "Man City", HomeGoals: 0, AwayGoals: 3}
	assert.Equal(t, "Burnley 0 - 3 Man City", m.ScoreLine())
}
