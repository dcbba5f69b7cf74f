// Package availability scores how quickly a supplier can deliver.
package availability

import (
	"rfq-matcher/internal/common/config"
	"rfq-matcher/internal/models"
	"rfq-matcher/internal/unitparse"
)

// Scorer bands supplier lead time into a delivery sub-score.
type Scorer struct {
	cfg config.DeliveryConfig
}

func NewScorer(cfg config.DeliveryConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the delivery sub-score in [0,100]. A numeric lead time wins
// over the free-text delivery window; with neither, the stock flag decides.
func (s *Scorer) Score(c *models.Candidate) float64 {
	if c.Supplier.LeadTimeDays > 0 {
		return bandScore(float64(c.Supplier.LeadTimeDays))
	}
	if c.Supplier.DeliveryTime != "" {
		days := unitparse.LeadTimeDays(c.Supplier.DeliveryTime, s.cfg.DefaultLeadTimeDays)
		return bandScore(days)
	}
	if c.Product.InStock {
		return 80
	}
	return 40
}

func bandScore(days float64) float64 {
	switch {
	case days <= 7:
		return 100
	case days <= 14:
		return 90
	case days <= 30:
		return 80
	case days <= 60:
		return 60
	default:
		return 40
	}
}
