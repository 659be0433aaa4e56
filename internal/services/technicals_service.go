package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/sqglp/internal/cache"
	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/technical"
	"github.com/epeers/sqglp/internal/util"
	"github.com/epeers/sqglp/internal/yahoo"
	"github.com/sirupsen/logrus"
)

// priceRange is the chart window requested for indicator computation
const priceRange = "1y"

var ErrNoPriceData = errors.New("no price data available")

// DailyPriceSource returns daily bars, oldest first. *yahoo.Client satisfies it.
type DailyPriceSource interface {
	GetDailyPrices(ctx context.Context, symbol, chartRange string) ([]yahoo.ParsedPriceData, error)
}

// TechnicalsService computes indicators for the dashboard's per-ticker view
type TechnicalsService struct {
	prices DailyPriceSource
	cache  *cache.MemoryCache
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewTechnicalsService creates a new TechnicalsService
func NewTechnicalsService(prices DailyPriceSource, memCache *cache.MemoryCache, logger logrus.FieldLogger) *TechnicalsService {
	return &TechnicalsService{
		prices: prices,
		cache:  memCache,
		logger: logger,
		now:    time.Now,
	}
}

// Technicals returns the latest SMA, EMA, RSI and MACD values for ticker.
// Prices are cached until the next market close, when a new bar can appear.
func (s *TechnicalsService) Technicals(ctx context.Context, ticker string) (*models.TechnicalsResponse, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidQuery)
	}

	bars, err := s.dailyPrices(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	ind := technical.Compute(closes)
	latest := bars[len(bars)-1]

	return &models.TechnicalsResponse{
		Ticker:     ticker,
		AsOf:       latest.Date,
		Close:      latest.Close,
		SMA20:      ind.SMA20,
		EMA20:      ind.EMA20,
		RSI14:      ind.RSI14,
		MACD:       ind.MACD,
		MACDSignal: ind.MACDSignal,
	}, nil
}

func (s *TechnicalsService) dailyPrices(ctx context.Context, ticker string) ([]yahoo.ParsedPriceData, error) {
	now := s.now()
	if bars, ok := s.cache.GetPrices(ticker, now); ok {
		return bars, nil
	}

	bars, err := s.prices.GetDailyPrices(ctx, ticker, priceRange)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices for %s: %w", ticker, err)
	}
	s.cache.SetPrices(ticker, bars, util.NextMarketClose(now))
	s.logger.WithField("ticker", ticker).Debugf("Fetched %d daily bars", len(bars))
	return bars, nil
}
