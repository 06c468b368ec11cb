package prediction

import (
	"fmt"
	"math"

	"github.com/yourusername/epl-predictor/internal/models"
)

// Estimation methods
const (
	MethodExact      = "exact"
	MethodSimulation = "simulation"
)

// Defaults for both estimators
const (
	DefaultMaxGoals = 5
	DefaultTrials   = 100000
)

// ScoreDistributionEstimator turns an expected goals value into P(goals = k)
// for k in [0, MaxGoals]
type ScoreDistributionEstimator interface {
	Estimate(lambda float64) (models.ScoreProbabilityVector, error)
	Method() string
}

// ExactEstimator evaluates the Poisson PMF directly
type ExactEstimator struct {
	maxGoals int
}

// NewExactEstimator creates an exact estimator covering 0..maxGoals
func NewExactEstimator(maxGoals int) (*ExactEstimator, error) {
	if maxGoals <= 0 {
		return nil, fmt.Errorf("%w: max goals must be positive, got %d", models.ErrInvalidParameter, maxGoals)
	}
	return &ExactEstimator{maxGoals: maxGoals}, nil
}

// Estimate returns the PMF truncated at MaxGoals
func (e *ExactEstimator) Estimate(lambda float64) (models.ScoreProbabilityVector, error) {
	if err := validateLambda(lambda); err != nil {
		return nil, err
	}
	v := make(models.ScoreProbabilityVector, e.maxGoals+1)
	for k := range v {
		v[k] = PoissonPMF(k, lambda)
	}
	return v, nil
}

// Method returns MethodExact
func (e *ExactEstimator) Method() string {
	return MethodExact
}

// MaxGoals returns the highest goal count estimated
func (e *ExactEstimator) MaxGoals() int {
	return e.maxGoals
}

// PoissonPMF returns e^-λ λ^k / k!, computed in log space so large k
// does not overflow
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	lgamma, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

func validateLambda(lambda float64) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		return fmt.Errorf("%w: expected goals must be finite and non-negative, got %v", models.ErrInvalidParameter, lambda)
	}
	return nil
}

// NewEstimator builds the estimator for method. trials and seed apply to
// the simulation method only.
func NewEstimator(method string, maxGoals, trials int, seed int64) (ScoreDistributionEstimator, error) {
	switch method {
	case MethodExact, "":
		return NewExactEstimator(maxGoals)
	case MethodSimulation:
		return NewMonteCarloEstimator(maxGoals, trials, seed)
	default:
		return nil, fmt.Errorf("%w: unknown estimation method %q", models.ErrInvalidParameter, method)
	}
}
