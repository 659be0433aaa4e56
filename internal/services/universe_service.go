package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/nse"
	"github.com/epeers/sqglp/internal/yahoo"
	"github.com/sirupsen/logrus"
)

// fallbackSymbols are large, liquid names spanning energy, IT, banking,
// consumer, auto and pharma. Used whenever dynamic discovery comes up empty.
var fallbackSymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "SBIN",
	"HINDUNILVR", "TITAN", "MARUTI", "SUNPHARMA", "ITC",
}

// exchangeSuffixes maps an exchange to the provider's symbol suffix
var exchangeSuffixes = map[string]string{
	"NSE": ".NS",
	"BSE": ".BO",
}

// IndexConstituentSource lists the members of a market index. *nse.Client satisfies it.
type IndexConstituentSource interface {
	GetIndexConstituents(ctx context.Context, index string) ([]nse.Constituent, error)
}

// MarketCapSource returns batch quotes carrying market capitalization. *yahoo.Client satisfies it.
type MarketCapSource interface {
	GetQuotes(ctx context.Context, symbols []string) ([]yahoo.ParsedQuote, error)
}

// UniverseService resolves the set of tickers analyzed in one run
type UniverseService struct {
	indexSrc IndexConstituentSource
	capSrc   MarketCapSource
	indices  []string
	logger   logrus.FieldLogger
}

// NewUniverseService creates a new UniverseService discovering tickers from indices
func NewUniverseService(indexSrc IndexConstituentSource, capSrc MarketCapSource, indices []string, logger logrus.FieldLogger) *UniverseService {
	return &UniverseService{
		indexSrc: indexSrc,
		capSrc:   capSrc,
		indices:  indices,
		logger:   logger,
	}
}

// QualifySymbol appends the exchange suffix to a bare symbol. Symbols that
// already carry a suffix, and unknown exchanges, are returned unchanged.
func QualifySymbol(exchange, symbol string) string {
	suffix, ok := exchangeSuffixes[strings.ToUpper(exchange)]
	if !ok || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + suffix
}

// FallbackTickers returns the static universe qualified for exchange
func FallbackTickers(exchange string) []string {
	tickers := make([]string, len(fallbackSymbols))
	for i, s := range fallbackSymbols {
		tickers[i] = QualifySymbol(exchange, s)
	}
	return tickers
}

// Resolve returns at most maxCount tickers whose market cap is at least
// marketCapFloor crores, in discovery order. It never fails: any problem
// with discovery or filtering yields the fallback list, which skips the
// floor but still honors maxCount. maxCount <= 0 means no cap.
func (s *UniverseService) Resolve(ctx context.Context, exchange string, marketCapFloor float64, maxCount int) models.TickerUniverse {
	defer TrackTime(s.logger, "Resolve", time.Now())

	discovered := s.discover(ctx, exchange)
	if len(discovered) == 0 {
		return s.fallback(ctx, exchange, maxCount, "no tickers discovered from indices")
	}

	filtered, err := s.filterByMarketCap(ctx, discovered, marketCapFloor)
	if err != nil {
		return s.fallback(ctx, exchange, maxCount, fmt.Sprintf("market cap lookup failed: %v", err))
	}
	if len(filtered) == 0 {
		return s.fallback(ctx, exchange, maxCount, fmt.Sprintf("no tickers with market cap >= %.0f Cr", marketCapFloor))
	}

	filtered = truncate(filtered, maxCount)
	s.logger.Infof("Resolved %d tickers from %d discovered", len(filtered), len(discovered))
	return models.TickerUniverse{Tickers: filtered}
}

// discover unions the constituents of every configured index, keeping the
// first-seen order. A failing index is logged and skipped.
func (s *UniverseService) discover(ctx context.Context, exchange string) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, index := range s.indices {
		constituents, err := s.indexSrc.GetIndexConstituents(ctx, index)
		if err != nil {
			s.logger.WithField("index", index).WithError(err).Warn("failed to fetch index constituents")
			continue
		}
		for _, c := range constituents {
			ticker := QualifySymbol(exchange, c.Symbol)
			if seen[ticker] {
				continue
			}
			seen[ticker] = true
			tickers = append(tickers, ticker)
		}
	}
	return tickers
}

func (s *UniverseService) filterByMarketCap(ctx context.Context, tickers []string, floor float64) ([]string, error) {
	quotes, err := s.capSrc.GetQuotes(ctx, tickers)
	if err != nil {
		return nil, err
	}

	capsCr := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		capsCr[q.Symbol] = q.MarketCap / croreDivisor
	}

	var kept []string
	for _, t := range tickers {
		if capsCr[t] >= floor {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

func (s *UniverseService) fallback(ctx context.Context, exchange string, maxCount int, reason string) models.TickerUniverse {
	s.logger.Warnf("Using fallback tickers: %s", reason)
	AddWarning(ctx, models.Warning{
		Code:    models.WarnFallbackUniverse,
		Message: reason,
	})
	return models.TickerUniverse{Tickers: truncate(FallbackTickers(exchange), maxCount), Fallback: true}
}

func truncate(tickers []string, maxCount int) []string {
	if maxCount > 0 && len(tickers) > maxCount {
		return tickers[:maxCount]
	}
	return tickers
}
