package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// ScoreProbabilityVector holds P(goals = k) at index k for k in [0, MaxGoals].
//
// Mass above MaxGoals is dropped, not redistributed, so the entries sum to
// at most 1. TruncatedMass reports how much was lost; it grows with the
// expected goals (about 0.06% at 1.0 and 4.2% at 2.5 for MaxGoals=5).
type ScoreProbabilityVector []float64

// MaxGoals returns the highest goal count covered by the vector
func (v ScoreProbabilityVector) MaxGoals() int {
	return len(v) - 1
}

// Sum returns the total probability mass covered
func (v ScoreProbabilityVector) Sum() float64 {
	total := 0.0
	for _, p := range v {
		total += p
	}
	return total
}

// TruncatedMass returns the probability of scoring more than MaxGoals
func (v ScoreProbabilityVector) TruncatedMass() float64 {
	return math.Max(0, 1-v.Sum())
}

// MostLikely returns the goal count with the highest probability
func (v ScoreProbabilityVector) MostLikely() int {
	best := 0
	for k, p := range v {
		if p > v[best] {
			best = k
		}
	}
	return best
}

// OutcomeProbabilities is the home win / draw / away win triple for a fixture
type OutcomeProbabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// Total returns the combined mass, which is below 1 by the truncation error
func (o OutcomeProbabilities) Total() float64 {
	return o.HomeWin + o.Draw + o.AwayWin
}

// FairOdds are decimal odds implied by the probabilities, without margin
type FairOdds struct {
	HomeWin decimal.Decimal `json:"home_win"`
	Draw    decimal.Decimal `json:"draw"`
	AwayWin decimal.Decimal `json:"away_win"`
}

// FairOdds converts each probability to decimal odds rounded to two places.
// A zero probability yields zero odds.
func (o OutcomeProbabilities) FairOdds() FairOdds {
	return FairOdds{
		HomeWin: fairOdds(o.HomeWin),
		Draw:    fairOdds(o.Draw),
		AwayWin: fairOdds(o.AwayWin),
	}
}

func fairOdds(p float64) decimal.Decimal {
	if p <= 0 || math.IsNaN(p) {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(p)).Round(2)
}
