package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/epeers/sqglp/internal/cache"
	"github.com/epeers/sqglp/internal/models"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrHistoryUnavailable = errors.New("score history requires a database")
	ErrInvalidQuery       = errors.New("invalid results query")
)

// ResultsLoader reads the persisted result table. *repository.CSVResultStore satisfies it.
type ResultsLoader interface {
	LoadResults(ctx context.Context) ([]models.AnalysisResult, time.Time, error)
	ModTime() (time.Time, error)
}

// ScoreHistorySource returns per-run scores for a ticker. *repository.ResultRepository satisfies it.
type ScoreHistorySource interface {
	GetScoreHistory(ctx context.Context, ticker string) ([]models.ScorePoint, error)
}

// sortKeys maps accepted sort names (column headers and JSON names) to comparators
var sortKeys = map[string]func(a, b models.AnalysisResult) int{
	"SQGLP_Score":             func(a, b models.AnalysisResult) int { return cmp.Compare(a.SQGLPScore, b.SQGLPScore) },
	"sqglp_score":             func(a, b models.AnalysisResult) int { return cmp.Compare(a.SQGLPScore, b.SQGLPScore) },
	"Ticker":                  func(a, b models.AnalysisResult) int { return cmp.Compare(a.Ticker, b.Ticker) },
	"ticker":                  func(a, b models.AnalysisResult) int { return cmp.Compare(a.Ticker, b.Ticker) },
	"Market Cap (Cr)":         func(a, b models.AnalysisResult) int { return cmp.Compare(a.MarketCapCr, b.MarketCapCr) },
	"market_cap_cr":           func(a, b models.AnalysisResult) int { return cmp.Compare(a.MarketCapCr, b.MarketCapCr) },
	"Predictive Growth Score": func(a, b models.AnalysisResult) int { return cmp.Compare(a.PredictiveGrowthScore, b.PredictiveGrowthScore) },
	"predictive_growth_score": func(a, b models.AnalysisResult) int { return cmp.Compare(a.PredictiveGrowthScore, b.PredictiveGrowthScore) },
	"P/E Ratio":               func(a, b models.AnalysisResult) int { return cmp.Compare(a.PERatio, b.PERatio) },
	"pe_ratio":                func(a, b models.AnalysisResult) int { return cmp.Compare(a.PERatio, b.PERatio) },
	"Dividend Yield":          func(a, b models.AnalysisResult) int { return cmp.Compare(a.DividendYield, b.DividendYield) },
	"dividend_yield":          func(a, b models.AnalysisResult) int { return cmp.Compare(a.DividendYield, b.DividendYield) },
}

// heatmapMetrics are the numeric columns averaged per sector
var heatmapMetrics = []struct {
	name  string
	value func(r models.AnalysisResult) float64
}{
	{"SQGLP_Score", func(r models.AnalysisResult) float64 { return r.SQGLPScore }},
	{"Revenue Growth", func(r models.AnalysisResult) float64 { return r.RevenueGrowth }},
	{"Earnings Growth", func(r models.AnalysisResult) float64 { return r.EarningsGrowth }},
	{"ROIC", func(r models.AnalysisResult) float64 { return r.ROIC }},
	{"Market Cap (Cr)", func(r models.AnalysisResult) float64 { return r.MarketCapCr }},
	{"Debt-to-Equity", func(r models.AnalysisResult) float64 { return r.DebtToEquity }},
	{"P/E Ratio", func(r models.AnalysisResult) float64 { return r.PERatio }},
	{"Dividend Yield", func(r models.AnalysisResult) float64 { return r.DividendYield }},
	{"Price-to-Sales (P/S)", func(r models.AnalysisResult) float64 { return r.PriceToSales }},
	{"Operating Margin (%)", func(r models.AnalysisResult) float64 { return r.OperatingMargin }},
	{"Free Cash Flow Yield", func(r models.AnalysisResult) float64 { return r.FreeCashFlowYield }},
	{"Beta (Volatility)", func(r models.AnalysisResult) float64 { return r.Beta }},
	{"Predictive Growth Score", func(r models.AnalysisResult) float64 { return r.PredictiveGrowthScore }},
}

// ResultsService serves the persisted result table to the dashboard
type ResultsService struct {
	loader  ResultsLoader
	history ScoreHistorySource
	cache   *cache.MemoryCache
	logger  logrus.FieldLogger
}

// NewResultsService creates a new ResultsService. history may be nil when no database is configured.
func NewResultsService(loader ResultsLoader, history ScoreHistorySource, memCache *cache.MemoryCache, logger logrus.FieldLogger) *ResultsService {
	return &ResultsService{
		loader:  loader,
		history: history,
		cache:   memCache,
		logger:  logger,
	}
}

// Results returns the full table and the time it was written, reloading
// from disk only when the file changed or the cache entry expired
func (s *ResultsService) Results(ctx context.Context) ([]models.AnalysisResult, time.Time, error) {
	modTime, err := s.loader.ModTime()
	if err != nil {
		return nil, time.Time{}, err
	}
	if cached, ok := s.cache.GetResults(modTime); ok {
		return cached, modTime, nil
	}

	results, modTime, err := s.loader.LoadResults(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	s.cache.SetResults(results, modTime)
	s.logger.Debugf("Loaded %d results from disk", len(results))
	return results, modTime, nil
}

// Query filters and sorts the table. With no filters every row is returned,
// sorted by SQGLP_Score descending.
func (s *ResultsService) Query(ctx context.Context, q models.ResultsQuery) (*models.ResultsResponse, error) {
	if q.MinScore != nil && q.MaxScore != nil && *q.MinScore > *q.MaxScore {
		return nil, fmt.Errorf("%w: min_score exceeds max_score", ErrInvalidQuery)
	}
	sortKey := q.Sort
	if sortKey == "" {
		sortKey = "SQGLP_Score"
	}
	compare, ok := sortKeys[sortKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, q.Sort)
	}
	order := strings.ToLower(q.Order)
	if order != "" && order != "asc" && order != "desc" {
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidQuery)
	}

	all, generatedAt, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}

	tickers := make(map[string]bool, len(q.Tickers))
	for _, t := range q.Tickers {
		for _, part := range strings.Split(t, ",") {
			if p := strings.TrimSpace(part); p != "" {
				tickers[strings.ToUpper(p)] = true
			}
		}
	}

	filtered := make([]models.AnalysisResult, 0, len(all))
	for _, r := range all {
		if len(tickers) > 0 && !tickers[strings.ToUpper(r.Ticker)] {
			continue
		}
		if q.Sector != "" && !strings.EqualFold(q.Sector, "All") && !strings.EqualFold(q.Sector, r.Sector) {
			continue
		}
		if q.MinScore != nil && r.SQGLPScore < *q.MinScore {
			continue
		}
		if q.MaxScore != nil && r.SQGLPScore > *q.MaxScore {
			continue
		}
		filtered = append(filtered, r)
	}

	slices.SortStableFunc(filtered, func(a, b models.AnalysisResult) int {
		if order == "asc" {
			return compare(a, b)
		}
		return compare(b, a)
	})

	return &models.ResultsResponse{
		GeneratedAt: generatedAt,
		Count:       len(filtered),
		Results:     filtered,
	}, nil
}

// Sectors returns how many analyzed companies fall in each sector, largest first
func (s *ResultsService) Sectors(ctx context.Context) ([]models.SectorCount, error) {
	all, _, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range all {
		counts[r.Sector]++
	}

	sectors := make([]models.SectorCount, 0, len(counts))
	for sector, n := range counts {
		sectors = append(sectors, models.SectorCount{Sector: sector, Count: n})
	}
	slices.SortFunc(sectors, func(a, b models.SectorCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Sector, b.Sector)
	})
	return sectors, nil
}

// SectorHeatmap averages every numeric metric per sector, sectors in name order
func (s *ResultsService) SectorHeatmap(ctx context.Context) ([]models.SectorHeatmapRow, error) {
	all, _, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}

	bySector := make(map[string][]models.AnalysisResult)
	for _, r := range all {
		bySector[r.Sector] = append(bySector[r.Sector], r)
	}

	rows := make([]models.SectorHeatmapRow, 0, len(bySector))
	for sector, members := range bySector {
		row := models.SectorHeatmapRow{
			Sector:  sector,
			Count:   len(members),
			Metrics: make(map[string]float64, len(heatmapMetrics)),
		}
		values := make([]float64, len(members))
		for _, m := range heatmapMetrics {
			for i, r := range members {
				values[i] = m.value(r)
			}
			row.Metrics[m.name] = stat.Mean(values, nil)
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b models.SectorHeatmapRow) int { return cmp.Compare(a.Sector, b.Sector) })
	return rows, nil
}

// History returns the stored score trend for ticker
func (s *ResultsService) History(ctx context.Context, ticker string) (*models.HistoryResponse, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	points, err := s.history.GetScoreHistory(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", ticker, err)
	}
	if points == nil {
		points = []models.ScorePoint{}
	}
	return &models.HistoryResponse{Ticker: ticker, Points: points}, nil
}
