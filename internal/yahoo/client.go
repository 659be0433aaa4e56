package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Yahoo Finance serves quote summaries, batch quotes and chart data through
// unauthenticated JSON endpoints. NSE symbols carry the ".NS" suffix, BSE ".BO".
const defaultBaseURL = "https://query2.finance.yahoo.com"

// quoteBatchSize is the number of symbols sent per /v7/finance/quote request
const quoteBatchSize = 50

const summaryModules = "summaryDetail,financialData,defaultKeyStatistics,quoteType,assetProfile"

// Client is an HTTP client for the Yahoo Finance API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Yahoo Finance client limited to requestsPerSecond
func NewClient(requestsPerSecond float64) *Client {
	return NewClientWithBaseURL(defaultBaseURL, requestsPerSecond)
}

// NewClientWithBaseURL creates a new Yahoo Finance client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string, requestsPerSecond float64) *Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// GetQuoteSummary fetches the fundamentals modules for a symbol
func (c *Client) GetQuoteSummary(ctx context.Context, symbol string) (*QuoteSummary, error) {
	params := url.Values{}
	params.Set("modules", summaryModules)

	body, err := c.doRequest(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), params)
	if err != nil {
		return nil, err
	}

	var resp QuoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, resp.QuoteSummary.Error
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary returned for %s", symbol)
	}

	return &resp.QuoteSummary.Result[0], nil
}

// GetQuotes fetches batch quotes for symbols. Symbols the provider does not
// know are absent from the result rather than an error.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]ParsedQuote, error) {
	var quotes []ParsedQuote
	for start := 0; start < len(symbols); start += quoteBatchSize {
		end := min(start+quoteBatchSize, len(symbols))

		params := url.Values{}
		params.Set("symbols", strings.Join(symbols[start:end], ","))

		body, err := c.doRequest(ctx, "/v7/finance/quote", params)
		if err != nil {
			return nil, err
		}

		var resp QuoteResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if resp.QuoteResponse.Error != nil {
			return nil, resp.QuoteResponse.Error
		}

		for _, q := range resp.QuoteResponse.Result {
			parsed := ParsedQuote{Symbol: q.Symbol, Name: q.LongName}
			if q.MarketCap != nil {
				parsed.MarketCap = *q.MarketCap
			}
			quotes = append(quotes, parsed)
		}
	}

	return quotes, nil
}

// GetDailyPrices fetches daily bars for a symbol over a range such as "6mo" or "1y".
// Sessions with a null close are dropped.
func (c *Client) GetDailyPrices(ctx context.Context, symbol string, chartRange string) ([]ParsedPriceData, error) {
	params := url.Values{}
	params.Set("range", chartRange)
	params.Set("interval", "1d")

	body, err := c.doRequest(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params)
	if err != nil {
		return nil, err
	}

	var resp ChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, resp.Chart.Error
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", symbol)
	}

	result := resp.Chart.Result[0]
	q := result.Indicators.Quote[0]

	var prices []ParsedPriceData
	for i, ts := range result.Timestamp {
		closePrice := at(q.Close, i)
		if closePrice == nil {
			continue
		}
		p := ParsedPriceData{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closePrice,
		}
		if v := at(q.Open, i); v != nil {
			p.Open = *v
		}
		if v := at(q.High, i); v != nil {
			p.High = *v
		}
		if v := at(q.Low, i); v != nil {
			p.Low = *v
		}
		if v := at(q.Volume, i); v != nil {
			p.Volume = *v
		}
		prices = append(prices, p)
	}

	return prices, nil
}

func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) sqglp-screener")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
