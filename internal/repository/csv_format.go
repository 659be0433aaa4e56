package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epeers/sqglp/internal/models"
)

// ResultColumns is the exact header of the result table, in order.
// The dashboard matches on these names, so they must not change.
var ResultColumns = []string{
	"Company Name",
	"Ticker",
	"SQGLP_Score",
	"Revenue Growth",
	"Earnings Growth",
	"ROIC",
	"Market Cap (Cr)",
	"Debt-to-Equity",
	"P/E Ratio",
	"Dividend Yield",
	"Price-to-Sales (P/S)",
	"Operating Margin (%)",
	"Free Cash Flow Yield",
	"Beta (Volatility)",
	"Sector",
	"Predictive Growth Score",
	"PGS",
	"Recommendation",
}

// formatFloat uses the shortest representation that parses back to the same value
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func resultRecord(r models.AnalysisResult) []string {
	return []string{
		r.CompanyName,
		r.Ticker,
		formatFloat(r.SQGLPScore),
		formatFloat(r.RevenueGrowth),
		formatFloat(r.EarningsGrowth),
		formatFloat(r.ROIC),
		formatFloat(r.MarketCapCr),
		formatFloat(r.DebtToEquity),
		formatFloat(r.PERatio),
		formatFloat(r.DividendYield),
		formatFloat(r.PriceToSales),
		formatFloat(r.OperatingMargin),
		formatFloat(r.FreeCashFlowYield),
		formatFloat(r.Beta),
		r.Sector,
		formatFloat(r.PredictiveGrowthScore),
		formatFloat(r.TrendAdjustedScore),
		string(r.Recommendation),
	}
}

// WriteResultsCSV writes the header and one row per result
func WriteResultsCSV(w io.Writer, results []models.AnalysisResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ResultColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(resultRecord(r)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Ticker, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadResultsCSV parses a result table written by WriteResultsCSV.
// Every column in ResultColumns is required; extra columns are ignored.
func ReadResultsCSV(r io.Reader) ([]models.AnalysisResult, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.TrimPrefix(col, "\ufeff")] = i
	}
	for _, col := range ResultColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var results []models.AnalysisResult
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		p := rowParser{record: record, colIdx: colIdx}
		res := models.AnalysisResult{
			FundamentalsRecord: models.FundamentalsRecord{
				CompanyName:       p.str("Company Name"),
				Ticker:            p.str("Ticker"),
				RevenueGrowth:     p.float("Revenue Growth"),
				EarningsGrowth:    p.float("Earnings Growth"),
				ROIC:              p.float("ROIC"),
				MarketCapCr:       p.float("Market Cap (Cr)"),
				DebtToEquity:      p.float("Debt-to-Equity"),
				PERatio:           p.float("P/E Ratio"),
				DividendYield:     p.float("Dividend Yield"),
				PriceToSales:      p.float("Price-to-Sales (P/S)"),
				OperatingMargin:   p.float("Operating Margin (%)"),
				FreeCashFlowYield: p.float("Free Cash Flow Yield"),
				Beta:              p.float("Beta (Volatility)"),
				Sector:            p.str("Sector"),
			},
			SQGLPScore:            p.float("SQGLP_Score"),
			PredictiveGrowthScore: p.float("Predictive Growth Score"),
			TrendAdjustedScore:    p.float("PGS"),
			Recommendation:        models.Recommendation(p.str("Recommendation")),
		}
		if p.err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, p.err)
		}
		results = append(results, res)
	}

	return results, nil
}

// rowParser reads named columns from one record, keeping the first error
type rowParser struct {
	record []string
	colIdx map[string]int
	err    error
}

func (p *rowParser) str(col string) string {
	idx := p.colIdx[col]
	if idx >= len(p.record) {
		return ""
	}
	return p.record[idx]
}

func (p *rowParser) float(col string) float64 {
	raw := strings.TrimSpace(p.str(col))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q", col, raw)
	}
	return v
}
