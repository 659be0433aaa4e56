package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	fired chan struct{}
}

func (r *countingRunner) Run(ctx context.Context) (*models.RunSummary, error) {
	if r.calls.Add(1) == 1 {
		close(r.fired)
	}
	return &models.RunSummary{RunID: "scheduled"}, nil
}

func TestRefreshScheduler_InvalidSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewRefreshScheduler("every tuesday", nil, &countingRunner{}, logger)
	assert.Error(t, err)
}

func TestRefreshScheduler_NextFollowsLocation(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ist := time.FixedZone("IST", 5*60*60+30*60)

	s, err := NewRefreshScheduler("30 16 * * 1-5", ist, &countingRunner{fired: make(chan struct{})}, logger)
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	next := s.Next().In(ist)
	assert.Equal(t, 16, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.NotEqual(t, time.Saturday, next.Weekday())
	assert.NotEqual(t, time.Sunday, next.Weekday())
}

func TestRefreshScheduler_RunsPipeline(t *testing.T) {
	logger, _ := test.NewNullLogger()
	runner := &countingRunner{fired: make(chan struct{})}

	s, err := NewRefreshScheduler("@every 1s", nil, runner, logger)
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	select {
	case <-runner.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled refresh never ran")
	}
	assert.GreaterOrEqual(t, runner.calls.Load(), int32(1))
}
