package models

import "time"

// Recommendation is the discrete tier derived from an SQGLP score
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "Strong Buy"
	RecommendationBuy       Recommendation = "Buy"
	RecommendationHold      Recommendation = "Hold"
	RecommendationSell      Recommendation = "Sell"
)

// AnalysisResult is one row of the result table
type AnalysisResult struct {
	FundamentalsRecord
	SQGLPScore            float64        `json:"sqglp_score"`
	PredictiveGrowthScore float64        `json:"predictive_growth_score"`
	TrendAdjustedScore    float64        `json:"pgs"`
	Recommendation        Recommendation `json:"recommendation"`
}

// TickerUniverse is the ordered set of symbols selected for one run
type TickerUniverse struct {
	Tickers  []string
	Fallback bool
}

// RunSummary describes a completed pipeline run
type RunSummary struct {
	RunID      string           `json:"run_id"`
	Strategy   string           `json:"strategy"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Universe   int              `json:"universe"`
	Fallback   bool             `json:"fallback"`
	Analyzed   int              `json:"analyzed"`
	Skipped    int              `json:"skipped"`
	Warnings   []Warning        `json:"warnings"`
	Results    []AnalysisResult `json:"-"`
}
