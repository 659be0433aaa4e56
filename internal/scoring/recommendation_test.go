package scoring

import (
	"math"
	"testing"

	"github.com/epeers/sqglp/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Recommendation
	}{
		{100, models.RecommendationStrongBuy},
		{80.00, models.RecommendationStrongBuy},
		{79.99, models.RecommendationBuy},
		{60.00, models.RecommendationBuy},
		{59.99, models.RecommendationSell},
		{0, models.RecommendationSell},
		{-250, models.RecommendationSell},
		{math.Inf(1), models.RecommendationStrongBuy},
		{math.NaN(), models.RecommendationHold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "Classify(%v)", tt.score)
	}
}
