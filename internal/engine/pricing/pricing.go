// Package pricing scores a candidate's price against its category siblings.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"rfq-matcher/internal/common/config"
	"rfq-matcher/internal/models"
)

// Scorer ranks a price by percentile within the sibling distribution and
// stretches or compresses the spread with price sensitivity.
type Scorer struct {
	cfg config.PriceConfig
}

func NewScorer(cfg config.PriceConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the price sub-score in [floor,100] for one candidate among
// its category siblings. priceWeight is the raw (pre-normalization) price
// criterion weight, which drives the sensitivity adjustment.
func (s *Scorer) Score(price decimal.Decimal, siblings []models.Candidate, priceWeight int) float64 {
	if len(siblings) <= 1 {
		return s.cfg.SingleCandidateScore
	}

	prices := make([]decimal.Decimal, 0, len(siblings))
	for _, c := range siblings {
		prices = append(prices, c.Product.Price)
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })

	index := -1
	for i, p := range prices {
		if p.Equal(price) {
			index = i
			break
		}
	}
	if index < 0 {
		return s.cfg.SingleCandidateScore
	}

	percentile := float64(index) / float64(len(prices))

	spread := 1.0
	switch {
	case priceWeight >= s.cfg.SensitiveWeight:
		spread = s.cfg.SensitiveSpread
	case priceWeight <= s.cfg.InsensitiveWeight:
		spread = s.cfg.InsensitiveSpread
	}

	score := 100.0 - percentile*100.0*spread
	if score > 100 {
		score = 100
	}
	if score < s.cfg.Floor {
		score = s.cfg.Floor
	}
	return score
}
