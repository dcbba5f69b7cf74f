package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rfq-matcher/internal/common/config"
	"rfq-matcher/internal/models"
)

func candidatesAt(prices ...string) []models.Candidate {
	out := make([]models.Candidate, 0, len(prices))
	for i, p := range prices {
		out = append(out, models.Candidate{
			Product: models.ProductCandidate{
				ID:    string(rune('a' + i)),
				Price: decimal.RequireFromString(p),
			},
		})
	}
	return out
}

func newScorer() *Scorer {
	return NewScorer(config.Default().Matching.Price)
}

func TestScoreCheaperBeatsPricier(t *testing.T) {
	s := newScorer()
	siblings := candidatesAt("500", "1500")

	cheap := s.Score(decimal.RequireFromString("500"), siblings, 50)
	pricey := s.Score(decimal.RequireFromString("1500"), siblings, 50)

	assert.Greater(t, cheap, pricey)
	assert.InDelta(t, 100.0, cheap, 1e-9)
}

func TestScoreSensitivityStretchesSpread(t *testing.T) {
	s := newScorer()
	siblings := candidatesAt("100", "200", "300", "400")
	pricey := decimal.RequireFromString("400")

	neutral := s.Score(pricey, siblings, 30)
	sensitive := s.Score(pricey, siblings, 50)
	insensitive := s.Score(pricey, siblings, 10)

	// percentile 0.75: neutral 25, sensitive 10, insensitive 47.5; the
	// floor lifts the first two to 40.
	assert.InDelta(t, 40.0, neutral, 1e-9)
	assert.InDelta(t, 40.0, sensitive, 1e-9)
	assert.InDelta(t, 47.5, insensitive, 1e-9)
}

func TestScoreFloorHolds(t *testing.T) {
	s := newScorer()
	siblings := candidatesAt("1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	got := s.Score(decimal.RequireFromString("10"), siblings, 80)
	assert.GreaterOrEqual(t, got, 40.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestScoreSingleCandidate(t *testing.T) {
	s := newScorer()
	got := s.Score(decimal.RequireFromString("999"), candidatesAt("999"), 50)
	assert.InDelta(t, 75.0, got, 1e-9)
}

func TestScorePriceNotInSiblings(t *testing.T) {
	s := newScorer()
	got := s.Score(decimal.RequireFromString("42"), candidatesAt("500", "1500"), 50)
	assert.InDelta(t, 75.0, got, 1e-9)
}

func TestScoreEqualPricesSharePercentile(t *testing.T) {
	s := newScorer()
	siblings := candidatesAt("100", "100", "200")
	a := s.Score(decimal.RequireFromString("100"), siblings, 50)
	b := s.Score(decimal.RequireFromString("100"), siblings, 50)
	assert.InDelta(t, a, b, 1e-9)
}
