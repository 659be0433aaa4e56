package repository

import (
	"context"
	"fmt"

	"github.com/epeers/sqglp/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository keeps every run's result table in Postgres
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// SaveRun stores the run and all of its rows in one transaction
func (r *ResultRepository) SaveRun(ctx context.Context, run *models.RunSummary) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO sqglp_run (id, strategy, started_at, finished_at, universe, fallback, analyzed, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.RunID, run.Strategy, run.StartedAt, run.FinishedAt, run.Universe, run.Fallback, run.Analyzed, run.Skipped)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	query := `
		INSERT INTO sqglp_result (
			run_id, position, ticker, company_name, sector, sqglp_score,
			revenue_growth, earnings_growth, roic, market_cap_cr, debt_to_equity,
			pe_ratio, dividend_yield, price_to_sales, operating_margin,
			free_cash_flow_yield, beta, predictive_growth_score, trend_adjusted_score, recommendation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	batch := &pgx.Batch{}
	for i, res := range run.Results {
		batch.Queue(query,
			run.RunID, i, res.Ticker, res.CompanyName, res.Sector, res.SQGLPScore,
			res.RevenueGrowth, res.EarningsGrowth, res.ROIC, res.MarketCapCr, res.DebtToEquity,
			res.PERatio, res.DividendYield, res.PriceToSales, res.OperatingMargin,
			res.FreeCashFlowYield, res.Beta, res.PredictiveGrowthScore, res.TrendAdjustedScore, string(res.Recommendation),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, res := range run.Results {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert result for %s: %w", res.Ticker, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetScoreHistory returns a ticker's score for every stored run, oldest first
func (r *ResultRepository) GetScoreHistory(ctx context.Context, ticker string) ([]models.ScorePoint, error) {
	query := `
		SELECT r.id::text, r.finished_at, s.sqglp_score, s.recommendation
		FROM sqglp_result s
		JOIN sqglp_run r ON r.id = s.run_id
		WHERE s.ticker = $1
		ORDER BY r.finished_at ASC
	`
	rows, err := r.pool.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query score history: %w", err)
	}
	defer rows.Close()

	var points []models.ScorePoint
	for rows.Next() {
		var p models.ScorePoint
		var rec string
		if err := rows.Scan(&p.RunID, &p.Date, &p.SQGLPScore, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan score history: %w", err)
		}
		p.Recommendation = models.Recommendation(rec)
		points = append(points, p)
	}
	return points, rows.Err()
}
