package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfq-matcher/internal/models"
)

func gpu(id, price string, fp32 float64, leadDays int) models.Candidate {
	return models.Candidate{
		Product: models.ProductCandidate{
			ID:         id,
			SupplierID: "sup-" + id,
			Category:   "GPU",
			Price:      decimal.RequireFromString(price),
			Compute:    &models.ComputeSpecs{FP32TFLOPS: fp32},
			InStock:    true,
		},
		Supplier: models.SupplierProfile{
			ID:           "sup-" + id,
			Country:      "Taiwan",
			LeadTimeDays: leadDays,
		},
	}
}

func gpuSpec() *models.RequirementSpec {
	return &models.RequirementSpec{
		Title:        "Training cluster GPUs",
		BuyerCountry: "Germany",
		Categories:   []string{"GPU"},
		Accelerator: &models.AcceleratorRequirement{
			Quantity:        4,
			MinComputePower: "15 TFLOPS",
		},
	}
}

func TestRankAttachesAlternatives(t *testing.T) {
	collector := &categoryCollector{data: map[string][]models.Candidate{
		"gpu": {
			gpu("ref", "10000", 20, 30),
			gpu("twin", "9800", 21, 30),     // within 20% performance
			gpu("bargain", "6000", 15, 30),  // ≥40% cheaper, 75% performance
			gpu("slow-cheap", "500", 2, 30), // cheap but below retention floor
			gpu("express", "11000", 20, 5),  // faster delivery
		},
	}}
	e := newEngine(t, collector, nil)

	results, err := e.Rank(context.Background(), "rfq-alt", gpuSpec())
	require.NoError(t, err)

	ref := findResult(t, results, "ref")
	require.NotNil(t, ref.Alternatives)

	assert.Contains(t, ref.Alternatives.SimilarPerformance, "twin")
	assert.NotContains(t, ref.Alternatives.SimilarPerformance, "slow-cheap")

	assert.Contains(t, ref.Alternatives.LowerCost, "bargain")
	assert.NotContains(t, ref.Alternatives.LowerCost, "slow-cheap")

	assert.Equal(t, []string{"express"}, ref.Alternatives.FasterDelivery)

	for _, kind := range [][]string{
		ref.Alternatives.SimilarPerformance,
		ref.Alternatives.LowerCost,
		ref.Alternatives.FasterDelivery,
		ref.Alternatives.BetterCompliance,
	} {
		assert.NotContains(t, kind, "ref")
		assert.LessOrEqual(t, len(kind), 3)
	}
}

func TestAlternativesNeverSuggestBlockedCandidates(t *testing.T) {
	blockedTwin := gpu("blocked-twin", "9500", 20, 30)
	blockedTwin.Product.Compliance.RestrictedCountries = []string{"Germany"}

	collector := &categoryCollector{data: map[string][]models.Candidate{
		"gpu": {
			gpu("ref", "10000", 20, 30),
			gpu("twin", "9800", 21, 30),
			blockedTwin,
		},
	}}
	e := newEngine(t, collector, nil)

	results, err := e.Rank(context.Background(), "rfq-alt-blocked", gpuSpec())
	require.NoError(t, err)

	for _, r := range results {
		assert.NotEqual(t, "blocked-twin", r.CandidateID)
	}

	ref := findResult(t, results, "ref")
	require.NotNil(t, ref.Alternatives)
	assert.Contains(t, ref.Alternatives.SimilarPerformance, "twin")
	assert.NotContains(t, ref.Alternatives.SimilarPerformance, "blocked-twin")
	assert.NotContains(t, ref.Alternatives.LowerCost, "blocked-twin")
}

func TestAlternativesOrderedBySaving(t *testing.T) {
	collector := &categoryCollector{data: map[string][]models.Candidate{
		"gpu": {
			gpu("ref", "10000", 20, 30),
			gpu("cheap", "8000", 19, 30),
			gpu("cheaper", "5000", 18, 30),
		},
	}}
	e := newEngine(t, collector, nil)

	results, err := e.Rank(context.Background(), "rfq-alt-2", gpuSpec())
	require.NoError(t, err)

	ref := findResult(t, results, "ref")
	require.NotNil(t, ref.Alternatives)
	assert.Equal(t, []string{"cheaper", "cheap"}, ref.Alternatives.LowerCost)
}

func TestAlternativesCappedPerKind(t *testing.T) {
	candidates := []models.Candidate{gpu("ref", "10000", 20, 60)}
	for _, id := range []string{"f1", "f2", "f3", "f4"} {
		candidates = append(candidates, gpu(id, "10000", 20, 5))
	}
	collector := &categoryCollector{data: map[string][]models.Candidate{"gpu": candidates}}
	e := newEngine(t, collector, nil)

	results, err := e.Rank(context.Background(), "rfq-alt-3", gpuSpec())
	require.NoError(t, err)

	ref := findResult(t, results, "ref")
	require.NotNil(t, ref.Alternatives)
	assert.Len(t, ref.Alternatives.FasterDelivery, 3)
}

func findResult(t *testing.T, results []models.MatchResult, candidateID string) *models.MatchResult {
	t.Helper()
	for i := range results {
		if results[i].CandidateID == candidateID {
			return &results[i]
		}
	}
	t.Fatalf("candidate %s not in results", candidateID)
	return nil
}
