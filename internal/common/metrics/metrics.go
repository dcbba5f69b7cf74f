// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_rank_runs_total",
			Help: "Total number of RFQ rank runs",
		},
		[]string{"status"},
	)

	CandidatesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_candidates_scored_total",
			Help: "Total number of candidates scored",
		},
		[]string{"category"},
	)

	ComplianceBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_compliance_blocks_total",
			Help: "Candidates removed from ranking by a hard compliance block",
		},
		[]string{"category"},
	)

	SemanticFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matcher_semantic_fallbacks_total",
			Help: "Rank runs that skipped semantic blending due to an unavailable similarity service",
		},
	)

	CatalogFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_catalog_failures_total",
			Help: "Catalog reads that failed and were treated as empty categories",
		},
		[]string{"category"},
	)

	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matcher_rank_duration_seconds",
			Help: "Duration of a full RFQ rank run in seconds",
		},
		[]string{"status"},
	)
)
