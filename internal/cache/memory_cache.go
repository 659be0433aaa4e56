package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/yahoo"
)

// MemoryCache provides an in-memory cache for the result table and daily prices
type MemoryCache struct {
	results    *resultsEntry
	prices     map[string]priceEntry
	resultsMu  sync.RWMutex
	priceMu    sync.RWMutex
	resultsTTL time.Duration
}

type resultsEntry struct {
	data      []models.AnalysisResult
	modTime   time.Time
	fetchedAt time.Time
}

type priceEntry struct {
	data      []yahoo.ParsedPriceData
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(resultsTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		prices:     make(map[string]priceEntry),
		resultsTTL: resultsTTL,
	}
}

// GetResults returns the cached table if it was loaded from a file with the
// same modification time and is younger than the TTL
func (c *MemoryCache) GetResults(modTime time.Time) ([]models.AnalysisResult, bool) {
	c.resultsMu.RLock()
	defer c.resultsMu.RUnlock()

	if c.results == nil {
		return nil, false
	}
	if !c.results.modTime.Equal(modTime) {
		return nil, false
	}
	if time.Since(c.results.fetchedAt) > c.resultsTTL {
		return nil, false
	}
	return c.results.data, true
}

// SetResults caches the table loaded from a file with modTime
func (c *MemoryCache) SetResults(data []models.AnalysisResult, modTime time.Time) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()

	c.results = &resultsEntry{
		data:      data,
		modTime:   modTime,
		fetchedAt: time.Now(),
	}
}

// InvalidateResults drops the cached table
func (c *MemoryCache) InvalidateResults() {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()

	c.results = nil
}

// GetPrices retrieves cached daily prices if they have not expired at now
func (c *MemoryCache) GetPrices(ticker string, now time.Time) ([]yahoo.ParsedPriceData, bool) {
	c.priceMu.RLock()
	defer c.priceMu.RUnlock()

	entry, exists := c.prices[strings.ToUpper(ticker)]
	if !exists || !now.Before(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// SetPrices caches daily prices until expiresAt
func (c *MemoryCache) SetPrices(ticker string, data []yahoo.ParsedPriceData, expiresAt time.Time) {
	c.priceMu.Lock()
	defer c.priceMu.Unlock()

	c.prices[strings.ToUpper(ticker)] = priceEntry{
		data:      data,
		expiresAt: expiresAt,
	}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.resultsMu.Lock()
	c.results = nil
	c.resultsMu.Unlock()

	c.priceMu.Lock()
	c.prices = make(map[string]priceEntry)
	c.priceMu.Unlock()
}
