// Package scoring computes SQGLP scores and recommendations from fundamentals.
// Everything here is pure: no I/O, no logging, and randomness only through an
// injected source.
package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/epeers/sqglp/internal/models"
)

const (
	StrategyWeightedSum = "weighted_sum"
	StrategyRatio       = "ratio"
)

// Strategy is one way of turning a fundamentals record into an SQGLP score
type Strategy interface {
	Name() string
	Score(r models.FundamentalsRecord) float64
}

// StrategyByName returns the named strategy. Weights only apply to weighted_sum.
func StrategyByName(name string, weights models.ScoringWeights) (Strategy, error) {
	switch name {
	case StrategyWeightedSum, "":
		return WeightedSumScoring{Weights: weights}, nil
	case StrategyRatio:
		return RatioScoring{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

// WeightedSumScoring is a linear combination of eight metrics with signed weights
type WeightedSumScoring struct {
	Weights models.ScoringWeights
}

func (WeightedSumScoring) Name() string { return StrategyWeightedSum }

// Score returns the weighted sum rounded to 2 decimal places
func (s WeightedSumScoring) Score(r models.FundamentalsRecord) float64 {
	w := s.Weights
	return Round2(r.RevenueGrowth*w.RevenueGrowth +
		r.EarningsGrowth*w.EarningsGrowth +
		r.ROIC*w.ROIC +
		r.MarketCapCr*w.MarketCap +
		r.DebtToEquity*w.DebtToEquity +
		r.PERatio*w.PERatio +
		r.DividendYield*w.DividendYield +
		r.PriceToSales*w.PriceToSales)
}

// Floors applied by RatioScoring before dividing.
const (
	minGrowth       = 0.01
	minPERatio      = 5
	minDebtToEquity = 0.1
)

// RatioScoring rewards growth and ROIC relative to size, valuation and leverage:
//
//	(revenueGrowth*100 + ROIC*50 + earningsGrowth*100) / (marketCap * P/E * debtToEquity)
//
// Inputs are clamped to positive floors so the denominator is never zero or negative.
type RatioScoring struct{}

func (RatioScoring) Name() string { return StrategyRatio }

// Score returns the ratio rounded to 2 decimal places
func (RatioScoring) Score(r models.FundamentalsRecord) float64 {
	marketCap := r.MarketCapCr
	if !(marketCap > 0) {
		marketCap = 1
	}
	revenueGrowth := floor(r.RevenueGrowth, minGrowth)
	roic := floor(r.ROIC, minGrowth)
	earningsGrowth := floor(r.EarningsGrowth, minGrowth)
	pe := floor(r.PERatio, minPERatio)
	de := floor(r.DebtToEquity, minDebtToEquity)

	return Round2((revenueGrowth*100 + roic*50 + earningsGrowth*100) / (marketCap * pe * de))
}

// floor clamps v to at least lo; NaN clamps to lo as well
func floor(v, lo float64) float64 {
	if !(v >= lo) {
		return lo
	}
	return v
}

// Round2 rounds half-to-even on the exact binary value, to 2 decimal places.
// NaN and infinities pass through unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
