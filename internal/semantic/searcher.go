// Package semantic provides text-similarity scores between requirement
// descriptions and catalog products. The engine treats this signal as best
// effort: any failure here only skips the blend.
package semantic

import (
	"context"

	"rfq-matcher/internal/models"
)

// Searcher returns a similarity in [0,1] per product ID for one category.
// Missing IDs mean no signal for those products.
type Searcher interface {
	Similarities(ctx context.Context, spec *models.RequirementSpec, category string, productIDs []string) (map[string]float64, error)
}

// Static serves fixed similarities. Used in tests.
type Static struct {
	Scores map[string]float64
	Err    error
}

func (s *Static) Similarities(_ context.Context, _ *models.RequirementSpec, _ string, _ []string) (map[string]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Scores, nil
}
