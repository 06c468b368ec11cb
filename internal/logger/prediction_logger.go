// Package logger provides prediction-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/epl-predictor/internal/models"
)

// PredictionLogger provides dedicated logging for the estimation pipeline.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogResultsLoaded logs a completed load of the historical results feed.
func (pl *PredictionLogger) LogResultsLoaded(source string, rows, teams int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"source":      source,
		"rows":        rows,
		"teams":       teams,
		"duration_ms": durationMs,
	}).Info("Historical results loaded")
}

// LogStrengthEstimate logs the strengths and expected goals for a fixture.
func (pl *PredictionLogger) LogStrengthEstimate(fixture string, league models.LeagueAverages, home, away models.TeamStrength, homeLambda, awayLambda float64) {
	pl.WithFields(logrus.Fields{
		"fixture":             fixture,
		"league_home_goals":   league.HomeGoals,
		"league_away_goals":   league.AwayGoals,
		"home_attack":         home.Attack,
		"home_defense":        home.Defense,
		"away_attack":         away.Attack,
		"away_defense":        away.Defense,
		"home_expected_goals": homeLambda,
		"away_expected_goals": awayLambda,
	}).Debug("Team strengths estimated")
}

// LogLeagueFallback logs substitution of league-average strength for a team
// with no history in the venue role.
func (pl *PredictionLogger) LogLeagueFallback(team string, venue models.Venue) {
	pl.WithFields(logrus.Fields{
		"team":  team,
		"venue": venue,
	}).Warn("No venue history, using league-average strength")
}

// LogOutcome logs the aggregated outcome probabilities for a fixture.
func (pl *PredictionLogger) LogOutcome(fixture, method string, outcome models.OutcomeProbabilities, truncated float64) {
	pl.WithFields(logrus.Fields{
		"fixture":        fixture,
		"method":         method,
		"home_win":       outcome.HomeWin,
		"draw":           outcome.Draw,
		"away_win":       outcome.AwayWin,
		"truncated_mass": truncated,
	}).Info("Outcome probabilities computed")
}

// LogPredictionFailed logs a fixture whose pipeline run failed.
func (pl *PredictionLogger) LogPredictionFailed(fixture string, err error) {
	pl.WithError(err).WithField("fixture", fixture).Error("Prediction failed")
}
