package models

// ScoringWeights holds the signed multipliers of the weighted-sum SQGLP formula
type ScoringWeights struct {
	RevenueGrowth  float64 `json:"revenue_growth"`
	EarningsGrowth float64 `json:"earnings_growth"`
	ROIC           float64 `json:"roic"`
	MarketCap      float64 `json:"market_cap"`
	DebtToEquity   float64 `json:"debt_to_equity"`
	PERatio        float64 `json:"pe_ratio"`
	DividendYield  float64 `json:"dividend_yield"`
	PriceToSales   float64 `json:"price_to_sales"`
}

// DefaultScoringWeights are the weights the screener ships with.
// Debt-to-equity and P/E count against a company; the total is not normalized to 100.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		RevenueGrowth:  25,
		EarningsGrowth: 25,
		ROIC:           20,
		MarketCap:      10,
		DebtToEquity:   -5,
		PERatio:        -5,
		DividendYield:  5,
		PriceToSales:   5,
	}
}
