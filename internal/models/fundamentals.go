package models

// DefaultSector is used when the provider does not report a sector
const DefaultSector = "Unknown"

// FundamentalsRecord is one snapshot of a company's financial metrics at fetch time.
// Every numeric field defaults to 0 (Beta to 1.0) when the provider omits it.
type FundamentalsRecord struct {
	CompanyName       string  `json:"company_name"`
	Ticker            string  `json:"ticker"`
	RevenueGrowth     float64 `json:"revenue_growth"`  // ratio
	EarningsGrowth    float64 `json:"earnings_growth"` // ratio
	ROIC              float64 `json:"roic"`            // ratio
	MarketCapCr       float64 `json:"market_cap_cr"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	PERatio           float64 `json:"pe_ratio"`
	DividendYield     float64 `json:"dividend_yield"` // percent
	PriceToSales      float64 `json:"price_to_sales"`
	OperatingMargin   float64 `json:"operating_margin"`     // percent
	FreeCashFlowYield float64 `json:"free_cash_flow_yield"` // percent
	Beta              float64 `json:"beta"`
	Sector            string  `json:"sector"`
}

// NewFundamentalsRecord returns a record for ticker with every default applied.
// Callers overwrite the fields the provider actually reported.
func NewFundamentalsRecord(ticker string) FundamentalsRecord {
	return FundamentalsRecord{
		CompanyName: ticker,
		Ticker:      ticker,
		Beta:        1.0,
		Sector:      DefaultSector,
	}
}
