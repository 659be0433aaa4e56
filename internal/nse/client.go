package nse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// NSE publishes index constituent lists as static CSV files under its archives host.
const defaultBaseURL = "https://archives.nseindia.com"

// indexFiles maps an index name to its constituent CSV under /content/indices/
var indexFiles = map[string]string{
	"NIFTY 50":              "ind_nifty50list.csv",
	"NIFTY NEXT 50":         "ind_niftynext50list.csv",
	"NIFTY 100":             "ind_nifty100list.csv",
	"NIFTY 200":             "ind_nifty200list.csv",
	"NIFTY 500":             "ind_nifty500list.csv",
	"NIFTY MIDCAP 150":      "ind_niftymidcap150list.csv",
	"NIFTY LARGEMIDCAP 250": "ind_niftylargemidcap250list.csv",
}

// Client fetches index constituent lists from NSE archives
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new NSE archives client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a new NSE archives client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IndexFile returns the archive file name for an index, accepting any casing
func IndexFile(index string) (string, bool) {
	file, ok := indexFiles[strings.ToUpper(strings.TrimSpace(index))]
	return file, ok
}

// GetIndexConstituents fetches and parses the constituent list of a named index
func (c *Client) GetIndexConstituents(ctx context.Context, index string) ([]Constituent, error) {
	log.Debugf("GetIndexConstituents begins for %s", index)
	file, ok := IndexFile(index)
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/content/indices/"+file, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) sqglp-screener")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("NSE archives returned status %d for %s", resp.StatusCode, index)
	}

	constituents, err := parseConstituentsCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s constituents: %w", index, err)
	}
	log.Debugf("GetIndexConstituents ends for %s (%d symbols)", index, len(constituents))
	return constituents, nil
}
