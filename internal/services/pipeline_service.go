package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/scoring"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUniverseEmpty = errors.New("no tickers resolved")
	ErrNoResults     = errors.New("no ticker produced a result")
	ErrRunInProgress = errors.New("a pipeline run is already in progress")
)

// TickerResolver produces the universe for a run
type TickerResolver interface {
	Resolve(ctx context.Context, exchange string, marketCapFloor float64, maxCount int) models.TickerUniverse
}

// FundamentalsProvider returns a ticker's fundamentals, or false when unavailable
type FundamentalsProvider interface {
	Fetch(ctx context.Context, ticker string) (models.FundamentalsRecord, bool)
}

// ResultStore persists the complete result table of a run in one write
type ResultStore interface {
	SaveRun(ctx context.Context, run *models.RunSummary) error
}

// PipelineOptions bound a run
type PipelineOptions struct {
	Exchange       string
	MarketCapLimit float64
	MaxTickers     int
	Workers        int
	TickerTimeout  time.Duration
}

// PipelineService runs the screen end to end: resolve, fetch, score, classify, persist
type PipelineService struct {
	resolver TickerResolver
	provider FundamentalsProvider
	strategy scoring.Strategy
	rng      *rand.Rand
	store    ResultStore
	archives []ResultStore
	opts     PipelineOptions
	logger   logrus.FieldLogger

	running sync.Mutex
}

// NewPipelineService creates a new PipelineService. rng drives the trend
// adjustment; pass a seeded source for reproducible output.
// store receives the published table and must succeed for the run to succeed.
// archives are written only after store, and a failing archive is reported as a warning.
func NewPipelineService(
	resolver TickerResolver,
	provider FundamentalsProvider,
	strategy scoring.Strategy,
	rng *rand.Rand,
	store ResultStore,
	archives []ResultStore,
	opts PipelineOptions,
	logger logrus.FieldLogger,
) *PipelineService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &PipelineService{
		resolver: resolver,
		provider: provider,
		strategy: strategy,
		rng:      rng,
		store:    store,
		archives: archives,
		opts:     opts,
		logger:   logger,
	}
}

// tickerOutcome is what one worker produces for one ticker; exactly one field is set
type tickerOutcome struct {
	result  *models.AnalysisResult
	warning *models.Warning
}

// Run executes one full pipeline pass. It returns ErrUniverseEmpty or
// ErrNoResults without writing anything when there is nothing to persist.
// Only one run may be active at a time; a concurrent call gets ErrRunInProgress.
func (s *PipelineService) Run(ctx context.Context) (*models.RunSummary, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	run := &models.RunSummary{
		RunID:     uuid.NewString(),
		Strategy:  s.strategy.Name(),
		StartedAt: time.Now().UTC(),
	}
	logger := s.logger.WithField("run_id", run.RunID)
	defer TrackTime(logger, "Run", time.Now())

	ctx, collector := NewWarningContext(ctx)

	universe := s.resolver.Resolve(ctx, s.opts.Exchange, s.opts.MarketCapLimit, s.opts.MaxTickers)
	run.Universe = len(universe.Tickers)
	run.Fallback = universe.Fallback
	if len(universe.Tickers) == 0 {
		logger.Error("No valid tickers retrieved")
		return nil, ErrUniverseEmpty
	}
	logger.Infof("Analyzing %d tickers with %s scoring", len(universe.Tickers), run.Strategy)

	outcomes := s.processAll(ctx, universe.Tickers, logger)

	for _, o := range outcomes {
		if o.warning != nil {
			AddWarning(ctx, *o.warning)
			run.Skipped++
			continue
		}
		r := *o.result
		r.TrendAdjustedScore = scoring.TrendAdjusted(r.SQGLPScore, s.rng)
		run.Results = append(run.Results, r)
	}
	run.Analyzed = len(run.Results)
	run.Warnings = collector.GetWarnings()
	run.FinishedAt = time.Now().UTC()

	if len(run.Results) == 0 {
		logger.Error("No valid data found for any tickers")
		return run, ErrNoResults
	}

	if err := s.store.SaveRun(ctx, run); err != nil {
		return run, fmt.Errorf("failed to persist results: %w", err)
	}
	for _, archive := range s.archives {
		if err := archive.SaveRun(ctx, run); err != nil {
			logger.Warnf("Failed to archive run: %v", err)
			run.Warnings = append(run.Warnings, models.Warning{
				Code:    models.WarnArchiveFailed,
				Message: fmt.Sprintf("run history not recorded: %v", err),
			})
		}
	}

	logger.Infof("Analysis saved: %d analyzed, %d skipped", run.Analyzed, run.Skipped)
	return run, nil
}

// processAll fans tickers out over a bounded worker pool. Outcomes are
// returned in the same order as tickers regardless of completion order.
func (s *PipelineService) processAll(ctx context.Context, tickers []string, logger logrus.FieldLogger) []tickerOutcome {
	outcomes := make([]tickerOutcome, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, ticker := range tickers {
		g.Go(func() error {
			outcomes[i] = s.processTicker(gctx, ticker, logger.WithField("ticker", ticker))
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// processTicker never lets a failure escape: provider gaps, scoring errors and
// panics all become a skip warning for this ticker alone.
func (s *PipelineService) processTicker(ctx context.Context, ticker string, logger logrus.FieldLogger) (out tickerOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Failed to process ticker: %v", r)
			out = tickerOutcome{warning: &models.Warning{
				Code:    models.WarnProcessingFailed,
				Ticker:  ticker,
				Message: fmt.Sprintf("panic: %v", r),
			}}
		}
	}()

	logger.Info("Processing ticker")

	if s.opts.TickerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TickerTimeout)
		defer cancel()
	}

	record, ok := s.provider.Fetch(ctx, ticker)
	if !ok {
		logger.Warn("Skipping ticker due to missing fundamentals")
		return tickerOutcome{warning: &models.Warning{
			Code:    models.WarnProviderUnavailable,
			Ticker:  ticker,
			Message: "fundamentals unavailable",
		}}
	}

	result, err := s.analyze(record)
	if err != nil {
		logger.WithError(err).Error("Failed to process ticker")
		return tickerOutcome{warning: &models.Warning{
			Code:    models.WarnProcessingFailed,
			Ticker:  ticker,
			Message: err.Error(),
		}}
	}

	logger.Infof("Analysis completed: SQGLP Score %v, PGS %v", result.SQGLPScore, result.PredictiveGrowthScore)
	return tickerOutcome{result: result}
}

// analyze scores and classifies one record. The trend adjustment is applied
// later, in ticker order, so the random sequence does not depend on scheduling.
func (s *PipelineService) analyze(record models.FundamentalsRecord) (*models.AnalysisResult, error) {
	if record.Ticker == "" {
		return nil, errors.New("fundamentals record has no ticker")
	}

	score := s.strategy.Score(record)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, fmt.Errorf("%s score is not finite: %v", s.strategy.Name(), score)
	}

	return &models.AnalysisResult{
		FundamentalsRecord:    record,
		SQGLPScore:            score,
		PredictiveGrowthScore: scoring.PredictiveGrowth(record),
		Recommendation:        scoring.Classify(score),
	}, nil
}
