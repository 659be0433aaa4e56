package services

import (
	"context"
	"strings"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/yahoo"
	"github.com/sirupsen/logrus"
)

// croreDivisor converts raw rupee amounts to crores (1 crore = 10 million)
const croreDivisor = 1e7

// QuoteSummaryFetcher is the provider call the fundamentals adapter depends on.
// *yahoo.Client satisfies it.
type QuoteSummaryFetcher interface {
	GetQuoteSummary(ctx context.Context, symbol string) (*yahoo.QuoteSummary, error)
}

// FundamentalsService turns provider responses into FundamentalsRecords
type FundamentalsService struct {
	source QuoteSummaryFetcher
	logger logrus.FieldLogger
}

// NewFundamentalsService creates a new FundamentalsService
func NewFundamentalsService(source QuoteSummaryFetcher, logger logrus.FieldLogger) *FundamentalsService {
	return &FundamentalsService{
		source: source,
		logger: logger,
	}
}

// Fetch returns the fundamentals for ticker. The boolean is false when the
// provider failed or had nothing usable; the cause is logged, never returned.
// A single attempt is made.
func (s *FundamentalsService) Fetch(ctx context.Context, ticker string) (models.FundamentalsRecord, bool) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		s.logger.Warn("fundamentals requested for an empty ticker")
		return models.FundamentalsRecord{}, false
	}
	logger := s.logger.WithField("ticker", ticker)

	summary, err := s.source.GetQuoteSummary(ctx, ticker)
	if err != nil {
		logger.WithError(err).Warn("failed to fetch fundamentals")
		return models.FundamentalsRecord{}, false
	}
	if summary == nil || summary.SummaryDetail.Empty() {
		logger.Warn("no summary data returned")
		return models.FundamentalsRecord{}, false
	}

	return buildFundamentalsRecord(ticker, summary), true
}

// buildFundamentalsRecord maps provider modules onto the fixed record shape.
// Absent modules and fields keep the defaults from NewFundamentalsRecord.
func buildFundamentalsRecord(ticker string, summary *yahoo.QuoteSummary) models.FundamentalsRecord {
	record := models.NewFundamentalsRecord(ticker)

	if qt := summary.QuoteType; qt != nil {
		switch {
		case qt.LongName != "":
			record.CompanyName = qt.LongName
		case qt.ShortName != "":
			record.CompanyName = qt.ShortName
		}
	}
	if ap := summary.AssetProfile; ap != nil && ap.Sector != "" {
		record.Sector = ap.Sector
	}

	rawMarketCap := 0.0
	if sd := summary.SummaryDetail; sd != nil {
		rawMarketCap = sd.MarketCap.Value()
		record.MarketCapCr = rawMarketCap / croreDivisor
		record.PERatio = sd.TrailingPE.Value()
		record.DividendYield = sd.DividendYield.Value() * 100
		record.PriceToSales = sd.PriceToSalesTrailing12Months.Value()
		if sd.Beta.Present() {
			record.Beta = sd.Beta.Value()
		}
	}
	if ks := summary.DefaultKeyStatistics; ks != nil && ks.Beta.Present() && (summary.SummaryDetail == nil || !summary.SummaryDetail.Beta.Present()) {
		record.Beta = ks.Beta.Value()
	}

	if fd := summary.FinancialData; fd != nil {
		record.RevenueGrowth = fd.RevenueGrowth.Value()
		record.EarningsGrowth = fd.EarningsGrowth.Value()
		// Return on equity stands in for ROIC; the provider does not publish invested capital.
		record.ROIC = fd.ReturnOnEquity.Value()
		record.DebtToEquity = fd.DebtToEquity.Value()
		record.OperatingMargin = fd.OperatingMargins.Value() * 100
		if rawMarketCap > 0 {
			record.FreeCashFlowYield = fd.FreeCashflow.Value() / rawMarketCap * 100
		}
	}

	return record
}
