package prediction

import (
	"fmt"

	"github.com/yourusername/epl-predictor/internal/models"
)

// ScoreMatrix holds P(home = i, away = j) at [i][j], assuming the two
// goal counts are independent
type ScoreMatrix [][]float64

// NewScoreMatrix forms the outer product of the two vectors. Lengths may
// differ; either being empty is an error.
func NewScoreMatrix(home, away models.ScoreProbabilityVector) (ScoreMatrix, error) {
	if len(home) == 0 || len(away) == 0 {
		return nil, fmt.Errorf("%w: score vectors must be non-empty, got %d and %d",
			models.ErrInvalidParameter, len(home), len(away))
	}
	m := make(ScoreMatrix, len(home))
	for i, ph := range home {
		m[i] = make([]float64, len(away))
		for j, pa := range away {
			m[i][j] = ph * pa
		}
	}
	return m, nil
}

// Outcome sums the cells where the home side scores more, the same, or fewer
func (m ScoreMatrix) Outcome() models.OutcomeProbabilities {
	var out models.OutcomeProbabilities
	for i, row := range m {
		for j, p := range row {
			switch {
			case i > j:
				out.HomeWin += p
			case i < j:
				out.AwayWin += p
			default:
				out.Draw += p
			}
		}
	}
	return out
}

// Total returns the mass covered by the matrix
func (m ScoreMatrix) Total() float64 {
	total := 0.0
	for _, row := range m {
		for _, p := range row {
			total += p
		}
	}
	return total
}

// MostLikelyScore returns the single most probable scoreline
func (m ScoreMatrix) MostLikelyScore() (homeGoals, awayGoals int, p float64) {
	p = -1
	for i, row := range m {
		for j, cell := range row {
			if cell > p {
				homeGoals, awayGoals, p = i, j, cell
			}
		}
	}
	return homeGoals, awayGoals, p
}

// OverGoals returns the probability of more than line total goals, e.g. 2.5
func (m ScoreMatrix) OverGoals(line float64) float64 {
	total := 0.0
	for i, row := range m {
		for j, p := range row {
			if float64(i+j) > line {
				total += p
			}
		}
	}
	return total
}

// BothTeamsToScore returns the probability that each side scores at least once
func (m ScoreMatrix) BothTeamsToScore() float64 {
	total := 0.0
	for i := 1; i < len(m); i++ {
		for j := 1; j < len(m[i]); j++ {
			total += m[i][j]
		}
	}
	return total
}

// Aggregate reduces two score vectors to home win, draw and away win
func Aggregate(home, away models.ScoreProbabilityVector) (models.OutcomeProbabilities, error) {
	m, err := NewScoreMatrix(home, away)
	if err != nil {
		return models.OutcomeProbabilities{}, err
	}
	return m.Outcome(), nil
}
