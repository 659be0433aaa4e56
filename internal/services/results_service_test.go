package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epeers/sqglp/internal/cache"
	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/repository"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	results []models.AnalysisResult
	modTime time.Time
	err     error
	loads   int
}

func (f *fakeLoader) LoadResults(context.Context) ([]models.AnalysisResult, time.Time, error) {
	f.loads++
	if f.err != nil {
		return nil, time.Time{}, f.err
	}
	return f.results, f.modTime, nil
}

func (f *fakeLoader) ModTime() (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.modTime, nil
}

type fakeHistory struct {
	points []models.ScorePoint
}

func (f fakeHistory) GetScoreHistory(context.Context, string) ([]models.ScorePoint, error) {
	return f.points, nil
}

func result(ticker, sector string, score, roic float64) models.AnalysisResult {
	rec := models.NewFundamentalsRecord(ticker)
	rec.Sector = sector
	rec.ROIC = roic
	return models.AnalysisResult{FundamentalsRecord: rec, SQGLPScore: score}
}

func newTestResultsService(loader ResultsLoader, history ScoreHistorySource) *ResultsService {
	logger, _ := test.NewNullLogger()
	return NewResultsService(loader, history, cache.NewMemoryCache(time.Minute), logger)
}

func sampleTable() *fakeLoader {
	return &fakeLoader{
		modTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		results: []models.AnalysisResult{
			result("TCS.NS", "Technology", 72, 0.4),
			result("SBIN.NS", "Financial Services", 55, 0.1),
			result("INFY.NS", "Technology", 88, 0.3),
			result("HDFCBANK.NS", "Financial Services", 64, 0.2),
		},
	}
}

func tickersOf(results []models.AnalysisResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Ticker
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func TestQuery_DefaultSortsByScoreDescending(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)

	resp, err := svc.Query(context.Background(), models.ResultsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, []string{"INFY.NS", "TCS.NS", "HDFCBANK.NS", "SBIN.NS"}, tickersOf(resp.Results))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), resp.GeneratedAt)
}

func TestQuery_Filters(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)
	ctx := context.Background()

	resp, err := svc.Query(ctx, models.ResultsQuery{Sector: "technology"})
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY.NS", "TCS.NS"}, tickersOf(resp.Results))

	resp, err = svc.Query(ctx, models.ResultsQuery{Sector: "All"})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Count)

	resp, err = svc.Query(ctx, models.ResultsQuery{Tickers: []string{"sbin.ns", "TCS.NS,INFY.NS"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY.NS", "TCS.NS", "SBIN.NS"}, tickersOf(resp.Results))

	resp, err = svc.Query(ctx, models.ResultsQuery{MinScore: ptr(60), MaxScore: ptr(80)})
	require.NoError(t, err)
	assert.Equal(t, []string{"TCS.NS", "HDFCBANK.NS"}, tickersOf(resp.Results))
}

func TestQuery_SortOptions(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)

	resp, err := svc.Query(context.Background(), models.ResultsQuery{Sort: "Ticker", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HDFCBANK.NS", "INFY.NS", "SBIN.NS", "TCS.NS"}, tickersOf(resp.Results))
}

func TestQuery_InvalidParameters(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)
	ctx := context.Background()

	_, err := svc.Query(ctx, models.ResultsQuery{Sort: "Shoe Size"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Query(ctx, models.ResultsQuery{Order: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Query(ctx, models.ResultsQuery{MinScore: ptr(90), MaxScore: ptr(10)})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestResults_CachedUntilFileChanges(t *testing.T) {
	loader := sampleTable()
	svc := newTestResultsService(loader, nil)
	ctx := context.Background()

	_, _, err := svc.Results(ctx)
	require.NoError(t, err)
	_, _, err = svc.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loader.loads, "second read is served from cache")

	loader.modTime = loader.modTime.Add(time.Minute)
	_, _, err = svc.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.loads, "a newer file is reloaded")
}

func TestResults_NoFile(t *testing.T) {
	svc := newTestResultsService(&fakeLoader{err: repository.ErrNoResultsFile}, nil)

	_, err := svc.Query(context.Background(), models.ResultsQuery{})
	assert.True(t, errors.Is(err, repository.ErrNoResultsFile))
}

func TestSectors(t *testing.T) {
	loader := sampleTable()
	loader.results = append(loader.results, result("ITC.NS", "Consumer Defensive", 61, 0.25))
	svc := newTestResultsService(loader, nil)

	sectors, err := svc.Sectors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.SectorCount{
		{Sector: "Financial Services", Count: 2},
		{Sector: "Technology", Count: 2},
		{Sector: "Consumer Defensive", Count: 1},
	}, sectors)
}

func TestSectorHeatmap(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)

	rows, err := svc.SectorHeatmap(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Financial Services", rows[0].Sector)
	assert.Equal(t, 2, rows[0].Count)
	assert.InDelta(t, 59.5, rows[0].Metrics["SQGLP_Score"], 1e-9)
	assert.InDelta(t, 0.15, rows[0].Metrics["ROIC"], 1e-9)
	assert.InDelta(t, 1.0, rows[0].Metrics["Beta (Volatility)"], 1e-9)

	assert.Equal(t, "Technology", rows[1].Sector)
	assert.InDelta(t, 80.0, rows[1].Metrics["SQGLP_Score"], 1e-9)
	assert.Len(t, rows[1].Metrics, len(heatmapMetrics))
}

func TestHistory(t *testing.T) {
	svc := newTestResultsService(sampleTable(), nil)
	_, err := svc.History(context.Background(), "TCS.NS")
	assert.ErrorIs(t, err, ErrHistoryUnavailable)

	svc = newTestResultsService(sampleTable(), fakeHistory{})
	resp, err := svc.History(context.Background(), "TCS.NS")
	require.NoError(t, err)
	assert.NotNil(t, resp.Points, "an unknown ticker yields an empty list, not null")
	assert.Empty(t, resp.Points)

	points := []models.ScorePoint{{RunID: "r1", SQGLPScore: 70}}
	svc = newTestResultsService(sampleTable(), fakeHistory{points: points})
	resp, err = svc.History(context.Background(), "TCS.NS")
	require.NoError(t, err)
	assert.Equal(t, points, resp.Points)
}
