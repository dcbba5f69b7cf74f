package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"rfq-matcher/internal/models"
)

// normalizeWeights scales the raw criteria weights so they sum to 1. The
// compliance criterion participates only when the caller supplied it.
func normalizeWeights(criteria map[models.Criterion]int) map[models.Criterion]float64 {
	total := 0
	for _, w := range criteria {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return normalizeWeights(models.DefaultCriteria)
	}

	out := make(map[models.Criterion]float64, len(criteria))
	for criterion, w := range criteria {
		if w > 0 {
			out[criterion] = float64(w) / float64(total)
		}
	}
	return out
}

// aggregate combines sub-scores with normalized weights into a final score
// in [0,100].
func aggregate(breakdown models.ScoreBreakdown, weights map[models.Criterion]float64) float64 {
	score := breakdown.Price*weights[models.CriterionPrice] +
		breakdown.Quality*weights[models.CriterionQuality] +
		breakdown.Delivery*weights[models.CriterionDelivery] +
		breakdown.Compliance*weights[models.CriterionCompliance]
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// sortResults orders by final score descending, then price ascending, then
// candidate ID, so equal inputs always rank identically.
func sortResults(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		if !results[i].TotalPrice.Equal(results[j].TotalPrice) {
			return results[i].TotalPrice.LessThan(results[j].TotalPrice)
		}
		return results[i].CandidateID < results[j].CandidateID
	})
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
