package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/epeers/sqglp/internal/database"
	"github.com/epeers/sqglp/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to PG_URL, skipping the test when it is unset
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL environment variable not set, skipping integration test")
	}

	db, err := database.New(context.Background(), pgURL)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestResultRepository_SaveRunAndHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResultRepository(db.Pool)
	ctx := context.Background()

	ticker := "TST" + uuid.NewString()[:8] + ".NS"
	var runIDs []string
	t.Cleanup(func() {
		for _, id := range runIDs {
			db.Pool.Exec(context.Background(), `DELETE FROM sqglp_run WHERE id = $1`, id)
		}
	})

	base := time.Now().UTC().Truncate(time.Second)
	for i, score := range []float64{55.5, 81.25} {
		run := &models.RunSummary{
			RunID:      uuid.NewString(),
			Strategy:   "weighted_sum",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			Universe:   1,
			Analyzed:   1,
			Results: []models.AnalysisResult{{
				FundamentalsRecord: models.NewFundamentalsRecord(ticker),
				SQGLPScore:         score,
				Recommendation:     models.RecommendationBuy,
			}},
		}
		runIDs = append(runIDs, run.RunID)
		require.NoError(t, repo.SaveRun(ctx, run))
	}

	points, err := repo.GetScoreHistory(ctx, ticker)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, runIDs[0], points[0].RunID)
	assert.Equal(t, 55.5, points[0].SQGLPScore)
	assert.Equal(t, 81.25, points[1].SQGLPScore)
	assert.True(t, points[0].Date.Before(points[1].Date))
}

func TestResultRepository_DuplicateRowRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResultRepository(db.Pool)
	ctx := context.Background()

	rec := models.NewFundamentalsRecord("DUP" + uuid.NewString()[:8] + ".NS")
	run := &models.RunSummary{
		RunID:      uuid.NewString(),
		Strategy:   "ratio",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Results: []models.AnalysisResult{
			{FundamentalsRecord: rec},
			{FundamentalsRecord: rec},
		},
	}

	require.Error(t, repo.SaveRun(ctx, run))

	var count int
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT count(*) FROM sqglp_run WHERE id = $1`, run.RunID).Scan(&count))
	assert.Equal(t, 0, count, "the run row must not survive a failed batch")
}
