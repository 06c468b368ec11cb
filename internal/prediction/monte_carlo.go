package prediction

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/yourusername/epl-predictor/internal/models"
)

// knuthLimit is the λ above which sampling switches to a normal approximation
const knuthLimit = 30

// Seeded is implemented by estimators whose output depends on a seed
type Seeded interface {
	Seed() int64
	WithSeed(seed int64) ScoreDistributionEstimator
}

// MonteCarloEstimator approximates the PMF by sampling. Every Estimate call
// starts a fresh source from the seed, so equal inputs give equal outputs.
type MonteCarloEstimator struct {
	maxGoals int
	trials   int
	seed     int64
}

// NewMonteCarloEstimator creates a sampling estimator. A zero seed is
// replaced with a time-based one; read it back with Seed.
func NewMonteCarloEstimator(maxGoals, trials int, seed int64) (*MonteCarloEstimator, error) {
	if maxGoals <= 0 {
		return nil, fmt.Errorf("%w: max goals must be positive, got %d", models.ErrInvalidParameter, maxGoals)
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", models.ErrInvalidParameter, trials)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MonteCarloEstimator{maxGoals: maxGoals, trials: trials, seed: seed}, nil
}

// Estimate returns count(k)/trials for k in [0, MaxGoals]
func (e *MonteCarloEstimator) Estimate(lambda float64) (models.ScoreProbabilityVector, error) {
	if err := validateLambda(lambda); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(e.seed))
	counts := make([]int, e.maxGoals+1)
	for i := 0; i < e.trials; i++ {
		if k := poissonSample(lambda, rng); k <= e.maxGoals {
			counts[k]++
		}
	}

	v := make(models.ScoreProbabilityVector, e.maxGoals+1)
	for k, c := range counts {
		v[k] = float64(c) / float64(e.trials)
	}
	return v, nil
}

// Method returns MethodSimulation
func (e *MonteCarloEstimator) Method() string {
	return MethodSimulation
}

// Seed returns the resolved seed
func (e *MonteCarloEstimator) Seed() int64 {
	return e.seed
}

// Trials returns the number of samples per estimate
func (e *MonteCarloEstimator) Trials() int {
	return e.trials
}

// WithSeed returns a copy using seed
func (e *MonteCarloEstimator) WithSeed(seed int64) ScoreDistributionEstimator {
	c := *e
	c.seed = seed
	return &c
}

// poissonSample draws one Poisson variate using Knuth's multiplication
// method, or a rounded normal approximation for large λ
func poissonSample(lambda float64, rng *rand.Rand) int {
	if lambda == 0 {
		return 0
	}
	if lambda < knuthLimit {
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}
	k := int(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
	if k < 0 {
		return 0
	}
	return k
}
