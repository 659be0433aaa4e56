package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PipelineRunner runs one screening pass. *PipelineService satisfies it.
type PipelineRunner interface {
	Run(ctx context.Context) (*models.RunSummary, error)
}

// RefreshScheduler reruns the pipeline on a cron schedule
type RefreshScheduler struct {
	cron   *cron.Cron
	runner PipelineRunner
	logger logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRefreshScheduler registers runner on schedule, a standard five-field
// cron expression (or a descriptor such as "@daily") evaluated in loc.
func NewRefreshScheduler(schedule string, loc *time.Location, runner PipelineRunner, logger logrus.FieldLogger) (*RefreshScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &RefreshScheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		runner: runner,
		logger: logger.WithField("component", "scheduler"),
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := s.cron.AddFunc(schedule, s.refresh); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.logger.Infof("Refresh registered with schedule %q", schedule)
	return s, nil
}

// Start begins firing scheduled refreshes in the background
func (s *RefreshScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop cancels any running refresh and waits for it to return
func (s *RefreshScheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// Next reports when the refresh will fire next; zero before Start
func (s *RefreshScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *RefreshScheduler) refresh() {
	s.logger.Info("Running scheduled refresh")
	run, err := s.runner.Run(s.ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.logger.Warn("Skipping scheduled refresh: a run is already in progress")
	case err != nil:
		s.logger.WithError(err).Error("Scheduled refresh failed")
	default:
		s.logger.WithField("run_id", run.RunID).Infof("Scheduled refresh completed: %d analyzed, %d skipped", run.Analyzed, run.Skipped)
	}
}
