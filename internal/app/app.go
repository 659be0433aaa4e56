// Package app wires configuration into the services shared by the CLI and the dashboard.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/epeers/sqglp/config"
	"github.com/epeers/sqglp/internal/database"
	"github.com/epeers/sqglp/internal/nse"
	"github.com/epeers/sqglp/internal/repository"
	"github.com/epeers/sqglp/internal/scoring"
	"github.com/epeers/sqglp/internal/services"
	"github.com/epeers/sqglp/internal/yahoo"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger on stderr at the named level
func NewLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	return logger, nil
}

// Pipeline bundles a ready-to-run PipelineService with the stores it writes to
type Pipeline struct {
	Service  *services.PipelineService
	CSVStore *repository.CSVResultStore
	History  *repository.ResultRepository // nil when PG_URL is unset
	Yahoo    *yahoo.Client

	db *database.DB
}

// NewPipeline builds the provider clients, scoring strategy and result
// stores described by cfg. Postgres is connected only when cfg.PGURL is set.
func NewPipeline(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Pipeline, error) {
	strategy, err := scoring.StrategyByName(cfg.ScoringStrategy, cfg.Weights)
	if err != nil {
		return nil, err
	}

	yahooClient := yahoo.NewClientWithBaseURL(cfg.YahooBaseURL, cfg.YahooRateLimit)
	nseClient := nse.NewClientWithBaseURL(cfg.NSEBaseURL)

	p := &Pipeline{
		CSVStore: repository.NewCSVResultStore(cfg.ResultsFile),
		Yahoo:    yahooClient,
	}
	var archives []services.ResultStore

	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		p.db = db
		p.History = repository.NewResultRepository(db.Pool)
		archives = append(archives, p.History)
	}

	seed := cfg.ScoringSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	universeSvc := services.NewUniverseService(nseClient, yahooClient, cfg.Indices, logger)
	fundamentalsSvc := services.NewFundamentalsService(yahooClient, logger)
	p.Service = services.NewPipelineService(
		universeSvc,
		fundamentalsSvc,
		strategy,
		scoring.NewRand(seed),
		p.CSVStore,
		archives,
		services.PipelineOptions{
			Exchange:       cfg.Exchange,
			MarketCapLimit: cfg.MarketCapLimit,
			MaxTickers:     cfg.MaxTickers,
			Workers:        cfg.Workers,
			TickerTimeout:  cfg.TickerTimeout,
		},
		logger,
	)
	return p, nil
}

// Close releases the database pool, if any
func (p *Pipeline) Close() {
	if p.db != nil {
		p.db.Close()
	}
}
