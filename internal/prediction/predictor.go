package prediction

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/epl-predictor/internal/logger"
	"github.com/yourusername/epl-predictor/internal/metrics"
	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/repository"
)

// Prediction is the full pipeline output for one fixture
type Prediction struct {
	Fixture          models.Fixture                `json:"fixture"`
	Method           string                        `json:"method"`
	Strength         StrengthEstimate              `json:"strength"`
	HomeDistribution models.ScoreProbabilityVector `json:"home_distribution"`
	AwayDistribution models.ScoreProbabilityVector `json:"away_distribution"`
	Outcome          models.OutcomeProbabilities   `json:"outcome"`
	Markets          Markets                       `json:"markets"`
	HomeHistory      []models.MatchResult          `json:"-"`
	AwayHistory      []models.MatchResult          `json:"-"`
}

// Markets are secondary quantities read off the score matrix
type Markets struct {
	MostLikelyHomeGoals int             `json:"most_likely_home_goals"`
	MostLikelyAwayGoals int             `json:"most_likely_away_goals"`
	MostLikelyScoreProb float64         `json:"most_likely_score_probability"`
	Over1p5Goals        float64         `json:"over_1_5_goals"`
	Over2p5Goals        float64         `json:"over_2_5_goals"`
	BothTeamsToScore    float64         `json:"both_teams_to_score"`
	FairOdds            models.FairOdds `json:"fair_odds"`
}

// TruncatedMass returns the outcome mass lost to the goal cap
func (p *Prediction) TruncatedMass() float64 {
	return 1 - p.Outcome.Total()
}

// Predictor runs the estimation pipeline against a results table
type Predictor struct {
	repo      repository.ResultsRepository
	strength  *StrengthEstimator
	estimator ScoreDistributionEstimator
	logger    *logger.PredictionLogger
}

// NewPredictor creates a predictor. logger may be nil.
func NewPredictor(repo repository.ResultsRepository, strength *StrengthEstimator, estimator ScoreDistributionEstimator, log *logger.PredictionLogger) *Predictor {
	return &Predictor{
		repo:      repo,
		strength:  strength,
		estimator: estimator,
		logger:    log,
	}
}

// Predict estimates outcome probabilities for fixture. It either completes
// or returns the first failure.
func (p *Predictor) Predict(fixture models.Fixture) (*Prediction, error) {
	start := time.Now()
	method := p.estimator.Method()

	prediction, err := p.predict(fixture)
	metrics.RecordPrediction(method, predictionStatus(err), time.Since(start).Seconds())
	if err != nil {
		if p.logger != nil {
			p.logger.LogPredictionFailed(fixture.String(), err)
		}
		return nil, err
	}

	metrics.SetExpectedGoals(fixture.HomeTeam, string(models.VenueHome), prediction.Strength.HomeExpectedGoals)
	metrics.SetExpectedGoals(fixture.AwayTeam, string(models.VenueAway), prediction.Strength.AwayExpectedGoals)
	metrics.SetOutcomeProbabilities(fixture.String(), prediction.Outcome.HomeWin, prediction.Outcome.Draw, prediction.Outcome.AwayWin)

	if p.logger != nil {
		p.logger.LogOutcome(fixture.String(), method, prediction.Outcome, prediction.TruncatedMass())
	}
	return prediction, nil
}

func (p *Predictor) predict(fixture models.Fixture) (*Prediction, error) {
	estimate, err := p.strength.Estimate(p.repo, fixture.HomeTeam, fixture.AwayTeam)
	if err != nil {
		return nil, err
	}
	if p.logger != nil {
		p.logger.LogStrengthEstimate(fixture.String(), estimate.League, estimate.Home, estimate.Away,
			estimate.HomeExpectedGoals, estimate.AwayExpectedGoals)
	}

	if estimate.HomeExpectedGoals <= 0 || estimate.AwayExpectedGoals <= 0 {
		return nil, fmt.Errorf("%w: expected goals must be positive, got %s %.3f and %s %.3f",
			models.ErrInvalidParameter, fixture.HomeTeam, estimate.HomeExpectedGoals, fixture.AwayTeam, estimate.AwayExpectedGoals)
	}

	homeDist, err := p.estimator.Estimate(estimate.HomeExpectedGoals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fixture.HomeTeam, err)
	}
	awayDist, err := p.awayEstimator().Estimate(estimate.AwayExpectedGoals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fixture.AwayTeam, err)
	}

	matrix, err := NewScoreMatrix(homeDist, awayDist)
	if err != nil {
		return nil, err
	}
	outcome := matrix.Outcome()
	homeGoals, awayGoals, scoreProb := matrix.MostLikelyScore()

	return &Prediction{
		Fixture:          fixture,
		Method:           p.estimator.Method(),
		Strength:         estimate,
		HomeDistribution: homeDist,
		AwayDistribution: awayDist,
		Outcome:          outcome,
		Markets: Markets{
			MostLikelyHomeGoals: homeGoals,
			MostLikelyAwayGoals: awayGoals,
			MostLikelyScoreProb: scoreProb,
			Over1p5Goals:        matrix.OverGoals(1.5),
			Over2p5Goals:        matrix.OverGoals(2.5),
			BothTeamsToScore:    matrix.BothTeamsToScore(),
			FairOdds:            outcome.FairOdds(),
		},
		HomeHistory: p.repo.FilterByHome(fixture.HomeTeam),
		AwayHistory: p.repo.FilterByAway(fixture.AwayTeam),
	}, nil
}

// awayEstimator offsets the seed so the two sides draw independent streams
func (p *Predictor) awayEstimator() ScoreDistributionEstimator {
	if seeded, ok := p.estimator.(Seeded); ok {
		return seeded.WithSeed(seeded.Seed() + 1)
	}
	return p.estimator
}

func predictionStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, models.ErrInvalidParameter):
		return "invalid_parameter"
	default:
		return "failure"
	}
}
