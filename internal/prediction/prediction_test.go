package prediction

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/repository"
)

func result(home, away string, hg, ag int) models.MatchResult {
	return models.MatchResult{
		Date:      time.Date(2023, 8, 12, 0, 0, 0, 0, time.UTC),
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: hg,
		AwayGoals: ag,
	}
}

// leagueResults has league averages of 8/6 home and 1.0 away goals
func leagueResults() []models.MatchResult {
	return []models.MatchResult{
		result("Arsenal", "Burnley", 2, 0),
		result("Burnley", "Arsenal", 1, 1),
		result("Arsenal", "Chelsea", 3, 1),
		result("Chelsea", "Burnley", 0, 2),
		result("Burnley", "Chelsea", 1, 0),
		result("Chelsea", "Arsenal", 1, 2),
	}
}

func newRepo(t *testing.T, results []models.MatchResult) *repository.InMemoryResultsRepository {
	t.Helper()
	repo, err := repository.NewResultsRepository(results)
	require.NoError(t, err)
	return repo
}

type emptyRepo struct{}

func (emptyRepo) All() []models.MatchResult { return nil }
func (emptyRepo) FilterByHome(string) []models.MatchResult { return nil }
func (emptyRepo) FilterByAway(string) []models.MatchResult { return nil }
func (emptyRepo) Teams() []string { return nil }

func TestStrengthEstimate(t *testing.T) {
	estimator := NewStrengthEstimator(StrengthOptions{}, nil)
	est, err := estimator.Estimate(newRepo(t, leagueResults()), "Arsenal", "Burnley")
	require.NoError(t, err)

	assert.InDelta(t, 8.0/6.0, est.League.HomeGoals, 1e-12)
	assert.InDelta(t, 1.0, est.League.AwayGoals, 1e-12)
	assert.Equal(t, 6, est.League.Matches)

	assert.InDelta(t, 1.875, est.Home.Attack, 1e-12)
	assert.InDelta(t, 0.5, est.Home.Defense, 1e-12)
	assert.Equal(t, 2, est.Home.MatchesPlayed)
	assert.InDelta(t, 1.0, est.Away.Attack, 1e-12)
	assert.InDelta(t, 0.75, est.Away.Defense, 1e-12)

	assert.InDelta(t, 1.875, est.HomeExpectedGoals, 1e-12)
	assert.InDelta(t, 0.5, est.AwayExpectedGoals, 1e-12)
	assert.False(t, est.FallbackUsed())
}

func TestStrengthEstimateDeterministic(t *testing.T) {
	repo := newRepo(t, leagueResults())
	estimator := NewStrengthEstimator(StrengthOptions{}, nil)

	first, err := estimator.Estimate(repo, "Chelsea", "Arsenal")
	require.NoError(t, err)
	second, err := estimator.Estimate(repo, "Chelsea", "Arsenal")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStrengthEstimateInsufficientHistory(t *testing.T) {
	results := append(leagueResults(), result("Arsenal", "Everton", 1, 0))
	repo := newRepo(t, results)

	_, err := NewStrengthEstimator(StrengthOptions{}, nil).Estimate(repo, "Everton", "Arsenal")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientHistory))

	var historyErr *models.HistoryError
	require.True(t, errors.As(err, &historyErr))
	assert.Equal(t, "Everton", historyErr.Team)
	assert.Equal(t, models.VenueHome, historyErr.Venue)

	_, err = NewStrengthEstimator(StrengthOptions{}, nil).Estimate(repo, "Arsenal", "Unknown FC")
	require.True(t, errors.As(err, &historyErr))
	assert.Equal(t, models.VenueAway, historyErr.Venue)
}

func TestStrengthEstimateLeagueAverageFallback(t *testing.T) {
	results := append(leagueResults(), result("Arsenal", "Everton", 1, 0))
	repo := newRepo(t, results)

	est, err := NewStrengthEstimator(StrengthOptions{LeagueAverageFallback: true}, nil).Estimate(repo, "Everton", "Arsenal")
	require.NoError(t, err)
	assert.True(t, est.FallbackUsed())
	assert.True(t, est.Home.Fallback)
	assert.Equal(t, 1.0, est.Home.Attack)
	assert.Equal(t, 1.0, est.Home.Defense)
	assert.Greater(t, est.HomeExpectedGoals, 0.0)
}

func TestStrengthEstimateErrors(t *testing.T) {
	estimator := NewStrengthEstimator(StrengthOptions{}, nil)

	_, err := estimator.Estimate(emptyRepo{}, "Arsenal", "Burnley")
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))

	goalless := newRepo(t, []models.MatchResult{result("Arsenal", "Burnley", 0, 0), result("Burnley", "Arsenal", 0, 0)})
	_, err = estimator.Estimate(goalless, "Arsenal", "Burnley")
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))

	_, err = estimator.Estimate(newRepo(t, leagueResults()), "Arsenal", "Arsenal")
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))
}

func TestPoissonPMF(t *testing.T) {
	assert.InDelta(t, math.Exp(-1), PoissonPMF(0, 1), 1e-12)
	assert.InDelta(t, 0.2565156207, PoissonPMF(2, 2.5), 1e-9)
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(3, 0))
	assert.Equal(t, 0.0, PoissonPMF(-1, 1))
	// Log space keeps large k finite
	assert.False(t, math.IsNaN(PoissonPMF(200, 150)))
}

func TestExactEstimatorTruncation(t *testing.T) {
	estimator, err := NewExactEstimator(DefaultMaxGoals)
	require.NoError(t, err)

	for _, tt := range []struct {
		lambda float64
		cdf    float64
	}{
		{1.0, 0.9994058152},
		{2.5, 0.9579789618},
	} {
		v, err := estimator.Estimate(tt.lambda)
		require.NoError(t, err)
		require.Len(t, v, DefaultMaxGoals+1)
		for _, p := range v {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
		assert.InDelta(t, tt.cdf, v.Sum(), 1e-9)
		assert.InDelta(t, 1-tt.cdf, v.TruncatedMass(), 1e-9)
	}
}

func TestEstimatorsRejectInvalidLambda(t *testing.T) {
	exact, err := NewExactEstimator(5)
	require.NoError(t, err)
	mc, err := NewMonteCarloEstimator(5, 1000, 7)
	require.NoError(t, err)

	for _, estimator := range []ScoreDistributionEstimator{exact, mc} {
		for _, lambda := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5} {
			_, err := estimator.Estimate(lambda)
			assert.True(t, errors.Is(err, models.ErrInvalidParameter), "%s %v", estimator.Method(), lambda)
		}
	}
}

func TestEstimatorsZeroLambda(t *testing.T) {
	exact, err := NewExactEstimator(5)
	require.NoError(t, err)
	mc, err := NewMonteCarloEstimator(5, 1000, 7)
	require.NoError(t, err)

	for _, estimator := range []ScoreDistributionEstimator{exact, mc} {
		v, err := estimator.Estimate(0)
		require.NoError(t, err, estimator.Method())
		assert.Equal(t, models.ScoreProbabilityVector{1, 0, 0, 0, 0, 0}, v, estimator.Method())
	}
}

func TestNewEstimator(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		maxGoals int
		trials   int
		want     string
		wantErr  bool
	}{
		{"exact", MethodExact, 5, 0, MethodExact, false},
		{"default", "", 5, 0, MethodExact, false},
		{"simulation", MethodSimulation, 5, 1000, MethodSimulation, false},
		{"zero max goals", MethodExact, 0, 0, "", true},
		{"zero trials", MethodSimulation, 5, 0, "", true},
		{"unknown", "bayes", 5, 1000, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimator, err := NewEstimator(tt.method, tt.maxGoals, tt.trials, 1)
			if tt.wantErr {
				assert.True(t, errors.Is(err, models.ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, estimator.Method())
		})
	}
}

func TestMonteCarloDeterministic(t *testing.T) {
	estimator, err := NewMonteCarloEstimator(5, 20000, 42)
	require.NoError(t, err)

	first, err := estimator.Estimate(1.4)
	require.NoError(t, err)
	second, err := estimator.Estimate(1.4)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reseeded, err := estimator.WithSeed(43).Estimate(1.4)
	require.NoError(t, err)
	assert.NotEqual(t, first, reseeded)
	assert.Equal(t, int64(42), estimator.Seed())
}

func TestMonteCarloTimeSeed(t *testing.T) {
	estimator, err := NewMonteCarloEstimator(5, 100, 0)
	require.NoError(t, err)
	assert.NotZero(t, estimator.Seed())
}

func TestMonteCarloConvergesToExact(t *testing.T) {
	exact, err := NewExactEstimator(5)
	require.NoError(t, err)
	mc, err := NewMonteCarloEstimator(5, DefaultTrials, 2024)
	require.NoError(t, err)

	want, err := exact.Estimate(1.6)
	require.NoError(t, err)
	got, err := mc.Estimate(1.6)
	require.NoError(t, err)

	for k := range want {
		assert.InDelta(t, want[k], got[k], 0.01, "k=%d", k)
	}
	assert.LessOrEqual(t, got.Sum(), 1.0)
}

func TestPoissonSampleNormalApproximation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	total := 0
	const n = 5000
	for i := 0; i < n; i++ {
		k := poissonSample(45, rng)
		require.GreaterOrEqual(t, k, 0)
		total += k
	}
	assert.InDelta(t, 45, float64(total)/n, 0.5)
}
