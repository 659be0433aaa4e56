package scoring

import (
	"math/rand/v2"

	"github.com/epeers/sqglp/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Trend perturbation bounds for TrendAdjusted
const (
	trendFactorMin = 0.9
	trendFactorMax = 1.1
)

// PredictiveGrowth is the unweighted mean of revenue growth, earnings growth
// and ROIC, expressed in percent. It is a rough indicator, not a forecast.
func PredictiveGrowth(r models.FundamentalsRecord) float64 {
	return Round2(stat.Mean([]float64{r.RevenueGrowth, r.EarningsGrowth, r.ROIC}, nil) * 100)
}

// TrendAdjusted multiplies score by a factor drawn uniformly from [0.9, 1.1).
// The same rng seed always yields the same sequence of adjustments.
func TrendAdjusted(score float64, rng *rand.Rand) float64 {
	factor := trendFactorMin + rng.Float64()*(trendFactorMax-trendFactorMin)
	return Round2(score * factor)
}

// NewRand returns a deterministic source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
