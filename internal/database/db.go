package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the connection pool used by the repositories
type DB struct {
	Pool *pgxpool.Pool
}

// schema is applied on every start; every statement is idempotent
const schema = `
CREATE TABLE IF NOT EXISTS sqglp_run (
	id          UUID PRIMARY KEY,
	strategy    TEXT        NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	universe    INTEGER     NOT NULL,
	fallback    BOOLEAN     NOT NULL,
	analyzed    INTEGER     NOT NULL,
	skipped     INTEGER     NOT NULL
);

CREATE TABLE IF NOT EXISTS sqglp_result (
	run_id                  UUID             NOT NULL REFERENCES sqglp_run(id) ON DELETE CASCADE,
	position                INTEGER          NOT NULL,
	ticker                  TEXT             NOT NULL,
	company_name            TEXT             NOT NULL,
	sector                  TEXT             NOT NULL,
	sqglp_score             DOUBLE PRECISION NOT NULL,
	revenue_growth          DOUBLE PRECISION NOT NULL,
	earnings_growth         DOUBLE PRECISION NOT NULL,
	roic                    DOUBLE PRECISION NOT NULL,
	market_cap_cr           DOUBLE PRECISION NOT NULL,
	debt_to_equity          DOUBLE PRECISION NOT NULL,
	pe_ratio                DOUBLE PRECISION NOT NULL,
	dividend_yield          DOUBLE PRECISION NOT NULL,
	price_to_sales          DOUBLE PRECISION NOT NULL,
	operating_margin        DOUBLE PRECISION NOT NULL,
	free_cash_flow_yield    DOUBLE PRECISION NOT NULL,
	beta                    DOUBLE PRECISION NOT NULL,
	predictive_growth_score DOUBLE PRECISION NOT NULL,
	trend_adjusted_score    DOUBLE PRECISION NOT NULL,
	recommendation          TEXT             NOT NULL,
	PRIMARY KEY (run_id, ticker)
);

CREATE INDEX IF NOT EXISTS idx_sqglp_result_ticker ON sqglp_result (ticker);
`

// New connects to Postgres, verifies the connection and applies the schema
func New(ctx context.Context, pgURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close releases every pooled connection
func (db *DB) Close() {
	db.Pool.Close()
}
