package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/epeers/sqglp/config"
	"github.com/epeers/sqglp/internal/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	// Ctrl-C cancels in-flight provider calls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer pipeline.Close()

	logger.Infof("Starting SQGLP analysis on %s (market cap >= %.0f Cr, max %d tickers)",
		cfg.Exchange, cfg.MarketCapLimit, cfg.MaxTickers)

	run, err := pipeline.Service.Run(ctx)
	if err != nil {
		pipeline.Close()
		logger.Fatalf("Analysis failed: %v", err)
	}

	for _, w := range run.Warnings {
		logger.WithField("ticker", w.Ticker).Warnf("[%s] %s", w.Code, w.Message)
	}
	logger.Infof("Wrote %d results to %s", run.Analyzed, pipeline.CSVStore.Path())
}
