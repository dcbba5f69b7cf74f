package engine

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"rfq-matcher/internal/models"
)

// attachAlternatives decorates the top-K results of each category with
// sibling suggestions. Results must not yet be globally sorted; the per
// category top-K is determined here.
func (e *Engine) attachAlternatives(results []models.MatchResult, byCategory map[string][]models.Candidate) {
	cfg := e.cfg.Matching.Alternatives

	perCategory := make(map[string][]*models.MatchResult)
	for i := range results {
		key := models.NormalizeCategory(results[i].Category)
		perCategory[key] = append(perCategory[key], &results[i])
	}

	for category, categoryResults := range perCategory {
		ordered := make([]*models.MatchResult, len(categoryResults))
		copy(ordered, categoryResults)
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].FinalScore != ordered[j].FinalScore {
				return ordered[i].FinalScore > ordered[j].FinalScore
			}
			return ordered[i].CandidateID < ordered[j].CandidateID
		})

		topK := cfg.TopK
		if topK > len(ordered) {
			topK = len(ordered)
		}
		candidates := byCategory[category]
		for _, ref := range ordered[:topK] {
			alts := e.findAlternatives(ref, candidates, categoryResults)
			ref.Alternatives = alts
		}
	}
}

func (e *Engine) findAlternatives(ref *models.MatchResult, candidates []models.Candidate, siblings []*models.MatchResult) *models.Alternatives {
	cfg := e.cfg.Matching.Alternatives
	alts := &models.Alternatives{
		SimilarPerformance: []string{},
		LowerCost:          []string{},
		FasterDelivery:     []string{},
		BetterCompliance:   []string{},
	}

	var refCandidate *models.Candidate
	for i := range candidates {
		if candidates[i].Product.ID == ref.CandidateID {
			refCandidate = &candidates[i]
			break
		}
	}
	if refCandidate == nil {
		return alts
	}

	// Only candidates that survived compliance gating carry a sibling
	// result; never suggest a hard-blocked candidate.
	surviving := make(map[string]bool, len(siblings))
	for _, sib := range siblings {
		surviving[sib.CandidateID] = true
	}

	refPerf := fp32Of(refCandidate)
	refPrice := refCandidate.Product.Price

	var similar, cheaper []rankedID

	for i := range candidates {
		c := &candidates[i]
		if c.Product.ID == ref.CandidateID || !surviving[c.Product.ID] {
			continue
		}

		perf := fp32Of(c)
		base := refPerf
		if base == 0 {
			base = 1
		}
		if diff := math.Abs(perf-refPerf) / base; diff <= cfg.PerformanceTolerance {
			similar = append(similar, rankedID{c.Product.ID, math.Abs(perf - refPerf)})
		}

		priceCut := refPrice.Mul(decimal.NewFromFloat(1 - cfg.MinSaving))
		if c.Product.Price.LessThan(priceCut) && perf >= refPerf*cfg.MinRetention {
			saving, _ := refPrice.Sub(c.Product.Price).Float64()
			cheaper = append(cheaper, rankedID{c.Product.ID, saving})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		if similar[i].key != similar[j].key {
			return similar[i].key < similar[j].key
		}
		return similar[i].id < similar[j].id
	})
	sort.SliceStable(cheaper, func(i, j int) bool {
		if cheaper[i].key != cheaper[j].key {
			return cheaper[i].key > cheaper[j].key
		}
		return cheaper[i].id < cheaper[j].id
	})

	var faster, compliant []rankedID
	for _, sib := range siblings {
		if sib.CandidateID == ref.CandidateID {
			continue
		}
		if sib.Breakdown.Delivery > ref.Breakdown.Delivery {
			faster = append(faster, rankedID{sib.CandidateID, sib.Breakdown.Delivery})
		}
		if sib.Breakdown.Compliance > ref.Breakdown.Compliance {
			compliant = append(compliant, rankedID{sib.CandidateID, sib.Breakdown.Compliance})
		}
	}
	sort.SliceStable(faster, func(i, j int) bool {
		if faster[i].key != faster[j].key {
			return faster[i].key > faster[j].key
		}
		return faster[i].id < faster[j].id
	})
	sort.SliceStable(compliant, func(i, j int) bool {
		if compliant[i].key != compliant[j].key {
			return compliant[i].key > compliant[j].key
		}
		return compliant[i].id < compliant[j].id
	})

	alts.SimilarPerformance = takeIDs(similar, cfg.MaxPerKind)
	alts.LowerCost = takeIDs(cheaper, cfg.MaxPerKind)
	alts.FasterDelivery = takeIDs(faster, cfg.MaxPerKind)
	alts.BetterCompliance = takeIDs(compliant, cfg.MaxPerKind)
	return alts
}

type rankedID struct {
	id  string
	key float64
}

func takeIDs(ranked []rankedID, limit int) []string {
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.id)
	}
	return out
}

func fp32Of(c *models.Candidate) float64 {
	if c.Product.Compute == nil {
		return 0
	}
	return c.Product.Compute.FP32TFLOPS
}
