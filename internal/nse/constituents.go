package nse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Constituent represents a row from an NSE index constituent CSV
type Constituent struct {
	CompanyName string
	Industry    string
	Symbol      string
	Series      string
	ISIN        string
}

// parseConstituentsCSV parses an index constituent list.
// Expected columns: Company Name,Industry,Symbol,Series,ISIN Code
// Header matching is case-insensitive; rows without a symbol are skipped.
func parseConstituentsCSV(r io.Reader) ([]Constituent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}

	for _, col := range []string{"company name", "symbol"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var constituents []Constituent
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

		symbol := field(record, "symbol")
		if symbol == "" {
			continue
		}

		constituents = append(constituents, Constituent{
			CompanyName: field(record, "company name"),
			Industry:    field(record, "industry"),
			Symbol:      symbol,
			Series:      field(record, "series"),
			ISIN:        field(record, "isin code"),
		})
	}

	return constituents, nil
}
