package models

import "time"

// ErrorResponse is the body returned for any failed API call
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResultsQuery holds the dashboard filters for the result table
type ResultsQuery struct {
	Tickers  []string `form:"ticker"`
	Sector   string   `form:"sector"`
	MinScore *float64 `form:"min_score"`
	MaxScore *float64 `form:"max_score"`
	Sort     string   `form:"sort"`
	Order    string   `form:"order"`
}

// ResultsResponse is the filtered result table
type ResultsResponse struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Count       int              `json:"count"`
	Results     []AnalysisResult `json:"results"`
}

// SectorCount is one entry of the sector distribution
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// SectorHeatmapRow holds the mean of every numeric metric for one sector
type SectorHeatmapRow struct {
	Sector  string             `json:"sector"`
	Count   int                `json:"count"`
	Metrics map[string]float64 `json:"metrics"`
}

// TechnicalsResponse carries the latest indicator values for a ticker
type TechnicalsResponse struct {
	Ticker     string    `json:"ticker"`
	AsOf       time.Time `json:"as_of"`
	Close      float64   `json:"close"`
	SMA20      *float64  `json:"sma_20"`
	EMA20      *float64  `json:"ema_20"`
	RSI14      *float64  `json:"rsi_14"`
	MACD       *float64  `json:"macd"`
	MACDSignal *float64  `json:"macd_signal"`
}

// ScorePoint is one run's score for a ticker
type ScorePoint struct {
	RunID          string         `json:"run_id"`
	Date           time.Time      `json:"date"`
	SQGLPScore     float64        `json:"sqglp_score"`
	Recommendation Recommendation `json:"recommendation"`
}

// HistoryResponse is the score trend for one ticker
type HistoryResponse struct {
	Ticker string       `json:"ticker"`
	Points []ScorePoint `json:"points"`
}
