package scoring

import (
	"math"

	"github.com/epeers/sqglp/internal/models"
)

const (
	strongBuyThreshold = 80
	buyThreshold       = 60
)

// Classify maps a score to a recommendation tier:
// >= 80 Strong Buy, [60, 80) Buy, < 60 Sell. A NaN score cannot be ranked and is a Hold.
func Classify(score float64) models.Recommendation {
	switch {
	case math.IsNaN(score):
		return models.RecommendationHold
	case score >= strongBuyThreshold:
		return models.RecommendationStrongBuy
	case score >= buyThreshold:
		return models.RecommendationBuy
	default:
		return models.RecommendationSell
	}
}
