package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rfq-matcher/internal/models"
)

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name     string
		criteria map[models.Criterion]int
		want     map[models.Criterion]float64
	}{
		{
			"already normalized",
			map[models.Criterion]int{models.CriterionPrice: 50, models.CriterionQuality: 30, models.CriterionDelivery: 20},
			map[models.Criterion]float64{models.CriterionPrice: 0.5, models.CriterionQuality: 0.3, models.CriterionDelivery: 0.2},
		},
		{
			"sum above 100",
			map[models.Criterion]int{models.CriterionPrice: 100, models.CriterionQuality: 100},
			map[models.Criterion]float64{models.CriterionPrice: 0.5, models.CriterionQuality: 0.5},
		},
		{
			"negative weights dropped",
			map[models.Criterion]int{models.CriterionPrice: -10, models.CriterionQuality: 40},
			map[models.Criterion]float64{models.CriterionQuality: 1.0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWeights(tt.criteria)
			assert.Equal(t, len(tt.want), len(got))
			sum := 0.0
			for criterion, w := range tt.want {
				assert.InDelta(t, w, got[criterion], 1e-9)
			}
			for _, w := range got {
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestNormalizeWeightsAllZeroFallsBack(t *testing.T) {
	got := normalizeWeights(map[models.Criterion]int{})
	assert.InDelta(t, 0.5, got[models.CriterionPrice], 1e-9)
	assert.InDelta(t, 0.3, got[models.CriterionQuality], 1e-9)
	assert.InDelta(t, 0.2, got[models.CriterionDelivery], 1e-9)
}

func TestAggregateBounds(t *testing.T) {
	weights := normalizeWeights(models.DefaultComplianceCriteria)

	full := aggregate(models.ScoreBreakdown{Price: 100, Quality: 100, Delivery: 100, Compliance: 100}, weights)
	assert.InDelta(t, 100.0, full, 1e-9)

	zero := aggregate(models.ScoreBreakdown{}, weights)
	assert.InDelta(t, 0.0, zero, 1e-9)
}

func TestAggregateComplianceOnlyWhenWeighted(t *testing.T) {
	breakdown := models.ScoreBreakdown{Price: 80, Quality: 80, Delivery: 80, Compliance: 0}

	threeFactor := aggregate(breakdown, normalizeWeights(models.DefaultCriteria))
	assert.InDelta(t, 80.0, threeFactor, 1e-9)

	fourFactor := aggregate(breakdown, normalizeWeights(models.DefaultComplianceCriteria))
	assert.Less(t, fourFactor, threeFactor)
}

func TestSortResultsDeterministicTieBreaks(t *testing.T) {
	results := []models.MatchResult{
		{CandidateID: "c", FinalScore: 80, TotalPrice: decimal.NewFromInt(100)},
		{CandidateID: "a", FinalScore: 90, TotalPrice: decimal.NewFromInt(300)},
		{CandidateID: "b", FinalScore: 90, TotalPrice: decimal.NewFromInt(200)},
		{CandidateID: "d", FinalScore: 90, TotalPrice: decimal.NewFromInt(200)},
	}

	sortResults(results)

	order := []string{results[0].CandidateID, results[1].CandidateID, results[2].CandidateID, results[3].CandidateID}
	assert.Equal(t, []string{"b", "d", "a", "c"}, order)
}
