package yahoo

import "time"

// RawValue is Yahoo's wrapper around numeric fields, e.g. {"raw": 0.12, "fmt": "12.00%"}.
// Raw is nil when the provider sent an empty object for the field.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// Value returns the raw number, or 0 when the field was absent
func (v RawValue) Value() float64 {
	if v.Raw == nil {
		return 0
	}
	return *v.Raw
}

// Present reports whether the provider supplied a number for the field
func (v RawValue) Present() bool {
	return v.Raw != nil
}

// APIError is the error object Yahoo embeds in otherwise successful responses
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return "yahoo: " + e.Code + ": " + e.Description
}

// QuoteSummaryResponse represents the /v10/finance/quoteSummary response
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummary `json:"result"`
		Error  *APIError      `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummary holds the modules requested for one symbol. Modules the
// provider did not return are nil.
type QuoteSummary struct {
	SummaryDetail        *SummaryDetail `json:"summaryDetail"`
	FinancialData        *FinancialData `json:"financialData"`
	DefaultKeyStatistics *KeyStatistics `json:"defaultKeyStatistics"`
	QuoteType            *QuoteType     `json:"quoteType"`
	AssetProfile         *AssetProfile  `json:"assetProfile"`
}

// SummaryDetail is the price/valuation module
type SummaryDetail struct {
	MarketCap                    RawValue `json:"marketCap"`
	TrailingPE                   RawValue `json:"trailingPE"`
	DividendYield                RawValue `json:"dividendYield"`
	PriceToSalesTrailing12Months RawValue `json:"priceToSalesTrailing12Months"`
	Beta                         RawValue `json:"beta"`
}

// Empty reports whether the module is missing or carries no numbers, as when
// the provider sends "summaryDetail": {}
func (sd *SummaryDetail) Empty() bool {
	return sd == nil || !(sd.MarketCap.Present() || sd.TrailingPE.Present() || sd.DividendYield.Present() ||
		sd.PriceToSalesTrailing12Months.Present() || sd.Beta.Present())
}

// FinancialData is the growth/profitability module
type FinancialData struct {
	RevenueGrowth    RawValue `json:"revenueGrowth"`
	EarningsGrowth   RawValue `json:"earningsGrowth"`
	ReturnOnEquity   RawValue `json:"returnOnEquity"`
	DebtToEquity     RawValue `json:"debtToEquity"`
	OperatingMargins RawValue `json:"operatingMargins"`
	FreeCashflow     RawValue `json:"freeCashflow"`
}

// KeyStatistics is the defaultKeyStatistics module
type KeyStatistics struct {
	Beta      RawValue `json:"beta"`
	BookValue RawValue `json:"bookValue"`
}

// QuoteType carries the display names of a symbol
type QuoteType struct {
	Symbol    string `json:"symbol"`
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
}

// AssetProfile carries sector classification
type AssetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// QuoteResponse represents the /v7/finance/quote response
type QuoteResponse struct {
	QuoteResponse struct {
		Result []Quote   `json:"result"`
		Error  *APIError `json:"error"`
	} `json:"quoteResponse"`
}

// Quote is a single entry of a batch quote response
type Quote struct {
	Symbol    string   `json:"symbol"`
	LongName  string   `json:"longName"`
	MarketCap *float64 `json:"marketCap"`
}

// ChartResponse represents the /v8/finance/chart response
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult is the time series for one symbol. Indicator slices are
// parallel to Timestamp; missing sessions are null.
type ChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ParsedQuote is a parsed batch quote entry
type ParsedQuote struct {
	Symbol    string
	Name      string
	MarketCap float64 // raw currency units, 0 when unknown
}

// ParsedPriceData represents parsed price data ready for use
type ParsedPriceData struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
