package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/epeers/sqglp/config"
	"github.com/epeers/sqglp/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Exchange:        "NSE",
		MarketCapLimit:  5000,
		MaxTickers:      10,
		ResultsFile:     filepath.Join(t.TempDir(), "out.csv"),
		Indices:         []string{"NIFTY 50"},
		ScoringStrategy: "ratio",
		Weights:         models.DefaultScoringWeights(),
		Workers:         2,
		TickerTimeout:   time.Second,
		YahooBaseURL:    "http://127.0.0.1:0",
		NSEBaseURL:      "http://127.0.0.1:0",
	}
}

func TestNewPipeline_WithoutDatabase(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(t)

	p, err := NewPipeline(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer p.Close()

	assert.NotNil(t, p.Service)
	assert.NotNil(t, p.Yahoo)
	assert.Nil(t, p.History)
	assert.Equal(t, cfg.ResultsFile, p.CSVStore.Path())
}

func TestNewPipeline_UnknownStrategy(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(t)
	cfg.ScoringStrategy = "astrology"

	_, err := NewPipeline(context.Background(), cfg, logger)
	assert.Error(t, err)
}
