// Package catalog retrieves supplier product candidates for a category.
package catalog

import (
	"context"

	"rfq-matcher/internal/models"
)

// Collector lists the candidate universe for one normalized category.
// Implementations must treat the returned slice as a fresh copy.
type Collector interface {
	ListByCategory(ctx context.Context, category string) ([]models.Candidate, error)
}
