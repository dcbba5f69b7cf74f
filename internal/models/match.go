package models

import (
	"github.com/shopspring/decimal"
)

// ScoreBreakdown carries per-criterion sub-scores, each in [0,100].
// Semantic is set only when an external similarity score was blended in.
type ScoreBreakdown struct {
	Price      float64  `json:"price"`
	Quality    float64  `json:"quality"`
	Delivery   float64  `json:"delivery"`
	Compliance float64  `json:"compliance"`
	Semantic   *float64 `json:"semantic,omitempty"`
}

// Alternatives lists sibling candidate IDs offered alongside a top match.
type Alternatives struct {
	SimilarPerformance []string `json:"similarPerformance"`
	LowerCost          []string `json:"lowerCost"`
	FasterDelivery     []string `json:"fasterDelivery"`
	BetterCompliance   []string `json:"betterCompliance"`
}

// MatchResult is one scored (candidate, supplier) pair for an RFQ. Results
// are created fresh per run; the engine keeps no state between invocations.
type MatchResult struct {
	ID                string          `json:"id"`
	RFQID             string          `json:"rfqId"`
	CandidateID       string          `json:"candidateId"`
	SupplierID        string          `json:"supplierId"`
	Category          string          `json:"category"`
	FinalScore        float64         `json:"finalScore"`
	Breakdown         ScoreBreakdown  `json:"breakdown"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	EstimatedDelivery string          `json:"estimatedDelivery,omitempty"` // YYYY-MM-DD
	ComplianceNotes   string          `json:"complianceNotes,omitempty"`
	Alternatives      *Alternatives   `json:"alternatives,omitempty"`
}
