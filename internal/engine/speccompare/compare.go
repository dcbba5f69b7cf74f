// Package speccompare scores how well product specifications satisfy
// per-category requirements. Every comparator is a pure function returning a
// value in [0,1]; Neutral means a field was missing on either side and the
// comparison carries no signal.
package speccompare

import (
	"strings"

	"rfq-matcher/internal/models"
)

// Neutral is the score used when a comparison has no data to act on.
const Neutral = 0.5

type weightedScore struct {
	score  float64
	weight float64
}

// weightedMean averages the informative scores; no signal at all → Neutral.
func weightedMean(parts []weightedScore) float64 {
	var sum, total float64
	for _, p := range parts {
		sum += p.score * p.weight
		total += p.weight
	}
	if total == 0 {
		return Neutral
	}
	return sum / total
}

// QualityScore dispatches to the category comparator and scales to [0,100].
func QualityScore(spec *models.RequirementSpec, c *models.Candidate) float64 {
	switch {
	case models.NormalizeCategory(c.Product.Category) == "laptops" && spec.Laptops != nil:
		return LaptopQuality(spec.Laptops, &c.Product) * 100
	case models.NormalizeCategory(c.Product.Category) == "monitors" && spec.Monitors != nil:
		return MonitorQuality(spec.Monitors, &c.Product) * 100
	case models.IsAcceleratorCategory(c.Product.Category) && spec.Accelerator != nil:
		return AcceleratorQuality(spec.Accelerator, &c.Product) * 100
	default:
		return Neutral * 100
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
