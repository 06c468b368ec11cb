// Package prediction implements the Poisson match outcome model: team
// strengths, per-team score distributions and their aggregation.
package prediction

import (
	"fmt"

	"github.com/yourusername/epl-predictor/internal/logger"
	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/repository"
)

// StrengthOptions configures the strength estimator
type StrengthOptions struct {
	// LeagueAverageFallback substitutes strength 1.0 for a team with no
	// matches in the required venue role instead of failing
	LeagueAverageFallback bool
}

// StrengthEstimate holds the league baselines, both team strengths and the
// resulting expected goals for one fixture
type StrengthEstimate struct {
	League            models.LeagueAverages `json:"league"`
	Home              models.TeamStrength   `json:"home"`
	Away              models.TeamStrength   `json:"away"`
	HomeExpectedGoals float64               `json:"home_expected_goals"`
	AwayExpectedGoals float64               `json:"away_expected_goals"`
}

// FallbackUsed reports whether either strength is a league-average substitute
func (e StrengthEstimate) FallbackUsed() bool {
	return e.Home.Fallback || e.Away.Fallback
}

// StrengthEstimator derives attack and defense ratios against league averages
type StrengthEstimator struct {
	opts   StrengthOptions
	logger *logger.PredictionLogger
}

// NewStrengthEstimator creates a strength estimator. logger may be nil.
func NewStrengthEstimator(opts StrengthOptions, log *logger.PredictionLogger) *StrengthEstimator {
	return &StrengthEstimator{opts: opts, logger: log}
}

// LeagueAverages computes mean home and away goals over every result
func LeagueAverages(results []models.MatchResult) (models.LeagueAverages, error) {
	if len(results) == 0 {
		return models.LeagueAverages{}, fmt.Errorf("%w: no results to average", models.ErrDataUnavailable)
	}
	var home, away int
	for _, r := range results {
		home += r.HomeGoals
		away += r.AwayGoals
	}
	n := float64(len(results))
	return models.LeagueAverages{
		HomeGoals: float64(home) / n,
		AwayGoals: float64(away) / n,
		Matches:   len(results),
	}, nil
}

// Estimate computes strengths and expected goals for home playing away
func (s *StrengthEstimator) Estimate(repo repository.ResultsRepository, home, away string) (StrengthEstimate, error) {
	if home == "" || away == "" || home == away {
		return StrengthEstimate{}, fmt.Errorf("%w: fixture needs two distinct teams, got %q and %q", models.ErrInvalidParameter, home, away)
	}

	league, err := LeagueAverages(repo.All())
	if err != nil {
		return StrengthEstimate{}, err
	}
	if league.HomeGoals == 0 || league.AwayGoals == 0 {
		return StrengthEstimate{}, fmt.Errorf("%w: league averages must be positive, got home %.3f away %.3f",
			models.ErrInvalidParameter, league.HomeGoals, league.AwayGoals)
	}

	homeStrength, err := s.teamStrength(home, models.VenueHome, repo.FilterByHome(home), league)
	if err != nil {
		return StrengthEstimate{}, err
	}
	awayStrength, err := s.teamStrength(away, models.VenueAway, repo.FilterByAway(away), league)
	if err != nil {
		return StrengthEstimate{}, err
	}

	return StrengthEstimate{
		League:            league,
		Home:              homeStrength,
		Away:              awayStrength,
		HomeExpectedGoals: homeStrength.Attack * awayStrength.Defense * league.HomeGoals,
		AwayExpectedGoals: awayStrength.Attack * homeStrength.Defense * league.AwayGoals,
	}, nil
}

// teamStrength normalises a team's scoring and conceding in one venue role.
// At home, goals scored compare with the league home average and goals
// conceded with the away average; away, the roles swap.
func (s *StrengthEstimator) teamStrength(team string, venue models.Venue, matches []models.MatchResult, league models.LeagueAverages) (models.TeamStrength, error) {
	if len(matches) == 0 {
		if !s.opts.LeagueAverageFallback {
			return models.TeamStrength{}, &models.HistoryError{Team: team, Venue: venue}
		}
		if s.logger != nil {
			s.logger.LogLeagueFallback(team, venue)
		}
		return models.TeamStrength{Team: team, Venue: venue, Attack: 1, Defense: 1, Fallback: true}, nil
	}

	var scored, conceded int
	for _, m := range matches {
		if venue == models.VenueHome {
			scored += m.HomeGoals
			conceded += m.AwayGoals
		} else {
			scored += m.AwayGoals
			conceded += m.HomeGoals
		}
	}
	n := float64(len(matches))

	scoredAvg, concededAvg := league.HomeGoals, league.AwayGoals
	if venue == models.VenueAway {
		scoredAvg, concededAvg = league.AwayGoals, league.HomeGoals
	}

	return models.TeamStrength{
		Team:          team,
		Venue:         venue,
		Attack:        float64(scored) / n / scoredAvg,
		Defense:       float64(conceded) / n / concededAvg,
		MatchesPlayed: len(matches),
	}, nil
}
