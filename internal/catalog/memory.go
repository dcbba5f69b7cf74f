package catalog

import (
	"context"

	"rfq-matcher/internal/models"
)

// StaticCollector serves a fixed candidate set. Used in tests and local runs
// without a database.
type StaticCollector struct {
	Candidates []models.Candidate
	Err        error
}

func (s *StaticCollector) ListByCategory(_ context.Context, category string) ([]models.Candidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	normalized := models.NormalizeCategory(category)
	var out []models.Candidate
	for _, c := range s.Candidates {
		if models.NormalizeCategory(c.Product.Category) == normalized {
			out = append(out, c)
		}
	}
	return out, nil
}
