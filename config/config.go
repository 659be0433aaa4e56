package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Exchange        string
	MarketCapLimit  float64 // crores
	MaxTickers      int
	ResultsFile     string
	Indices         []string
	ScoringStrategy string
	Weights         models.ScoringWeights
	ScoringSeed     uint64

	Workers       int
	TickerTimeout time.Duration

	YahooBaseURL   string
	YahooRateLimit float64
	NSEBaseURL     string

	PGURL           string
	Port            string
	RefreshSchedule string
	AdminToken      string
	LogLevel        string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is honored, but variables already set in the shell win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Exchange:        strings.ToUpper(getEnv("EXCHANGE", "NSE")),
		ResultsFile:     getEnv("RESULTS_FILE", "sqglp_results.csv"),
		Indices:         splitList(getEnv("INDICES", "NIFTY 50,NIFTY 100")),
		ScoringStrategy: getEnv("SCORING_STRATEGY", "weighted_sum"),
		YahooBaseURL:    getEnv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
		NSEBaseURL:      getEnv("NSE_BASE_URL", "https://archives.nseindia.com"),
		PGURL:           os.Getenv("PG_URL"),
		Port:            getEnv("PORT", "8080"),
		RefreshSchedule: os.Getenv("REFRESH_SCHEDULE"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.MarketCapLimit, err = getFloat("MARKET_CAP_LIMIT", 5000); err != nil {
		return nil, err
	}
	if cfg.MaxTickers, err = getInt("MAX_TICKERS", 50); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getInt("PIPELINE_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("PIPELINE_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if cfg.TickerTimeout, err = getDuration("TICKER_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.YahooRateLimit, err = getFloat("YAHOO_RATE_LIMIT", 2); err != nil {
		return nil, err
	}

	seed, err := getInt("SCORING_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.ScoringSeed = uint64(seed)

	if cfg.Weights, err = loadWeights(); err != nil {
		return nil, err
	}

	if len(cfg.Indices) == 0 {
		return nil, fmt.Errorf("INDICES must name at least one index")
	}

	return cfg, nil
}

func loadWeights() (models.ScoringWeights, error) {
	w := models.DefaultScoringWeights()
	fields := []struct {
		key string
		dst *float64
	}{
		{"WEIGHT_REVENUE_GROWTH", &w.RevenueGrowth},
		{"WEIGHT_EARNINGS_GROWTH", &w.EarningsGrowth},
		{"WEIGHT_ROIC", &w.ROIC},
		{"WEIGHT_MARKET_CAP", &w.MarketCap},
		{"WEIGHT_DEBT_TO_EQUITY", &w.DebtToEquity},
		{"WEIGHT_PE_RATIO", &w.PERatio},
		{"WEIGHT_DIVIDEND_YIELD", &w.DividendYield},
		{"WEIGHT_PRICE_TO_SALES", &w.PriceToSales},
	}
	for _, f := range fields {
		v, err := getFloat(f.key, *f.dst)
		if err != nil {
			return models.ScoringWeights{}, err
		}
		*f.dst = v
	}
	return w, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
