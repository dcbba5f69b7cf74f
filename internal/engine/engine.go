// Package engine orchestrates the full match pipeline: candidate collection,
// per-criterion scoring, compliance gating, aggregation, the optional
// semantic blend, alternative suggestions, and deterministic ranking.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"rfq-matcher/internal/catalog"
	"rfq-matcher/internal/common/config"
	standerr "rfq-matcher/internal/common/errors"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/common/metrics"
	"rfq-matcher/internal/compliance"
	"rfq-matcher/internal/engine/availability"
	"rfq-matcher/internal/engine/pricing"
	"rfq-matcher/internal/engine/speccompare"
	"rfq-matcher/internal/models"
	"rfq-matcher/internal/requirement"
	"rfq-matcher/internal/semantic"
	"rfq-matcher/internal/unitparse"
)

// Deps are the injectable collaborators of the engine. Collector is
// required; Searcher and Redis are optional and their absence disables the
// semantic blend and result memoization respectively.
type Deps struct {
	Collector catalog.Collector
	Searcher  semantic.Searcher
	Redis     *redis.Client
	Logger    logger.Logger
}

type Engine struct {
	cfg        *config.Config
	collector  catalog.Collector
	searcher   semantic.Searcher
	normalizer *requirement.Normalizer
	pricing    *pricing.Scorer
	delivery   *availability.Scorer
	checker    *compliance.Checker
	cache      *resultCache
	logger     logger.Logger
}

func New(cfg *config.Config, deps Deps) *Engine {
	log := deps.Logger.WithFields(map[string]interface{}{"component": "match-engine"})
	return &Engine{
		cfg:        cfg,
		collector:  deps.Collector,
		searcher:   deps.Searcher,
		normalizer: requirement.NewNormalizer(deps.Logger),
		pricing:    pricing.NewScorer(cfg.Matching.Price),
		delivery:   availability.NewScorer(cfg.Matching.Delivery),
		checker:    compliance.NewChecker(cfg.Matching.Compliance),
		cache:      newResultCache(deps.Redis, cfg.Matching.Engine.CacheTTLSeconds, deps.Logger),
		logger:     log,
	}
}

// Rank scores every candidate in every requested category and returns the
// ranked match list. It fails only on a blank RFQ id or when the whole
// candidate universe is empty; per-category catalog failures degrade to
// zero candidates.
func (e *Engine) Rank(ctx context.Context, rfqID string, spec *models.RequirementSpec) ([]models.MatchResult, error) {
	started := time.Now()
	if strings.TrimSpace(rfqID) == "" {
		metrics.MatchRunsTotal.WithLabelValues("invalid").Inc()
		return nil, standerr.NewRFQNotFoundError(rfqID)
	}
	spec = e.normalizer.Normalize(spec)

	if cached, ok := e.cache.get(ctx, rfqID, spec); ok {
		metrics.MatchRunsTotal.WithLabelValues("cached").Inc()
		return cached, nil
	}

	byCategory := e.collect(ctx, spec)

	total := 0
	for _, candidates := range byCategory {
		total += len(candidates)
	}
	if total == 0 {
		metrics.MatchRunsTotal.WithLabelValues("empty").Inc()
		return nil, standerr.NewEmptyCandidateUniverseError(rfqID)
	}

	var results []models.MatchResult
	for _, category := range spec.Categories {
		candidates := byCategory[models.NormalizeCategory(category)]
		if len(candidates) == 0 {
			continue
		}
		scored, err := e.scoreCategory(ctx, rfqID, spec, category, candidates)
		if err != nil {
			metrics.MatchRunsTotal.WithLabelValues("cancelled").Inc()
			return nil, err
		}
		results = append(results, scored...)
	}

	e.attachAlternatives(results, byCategory)
	sortResults(results)

	e.cache.put(ctx, rfqID, spec, results)
	metrics.MatchRunsTotal.WithLabelValues("ok").Inc()
	metrics.RankDuration.WithLabelValues("ok").Observe(time.Since(started).Seconds())

	e.logger.Info("rank complete", map[string]interface{}{
		"rfqId":      rfqID,
		"candidates": total,
		"results":    len(results),
		"durationMs": time.Since(started).Milliseconds(),
	})
	return results, nil
}

// collect gathers candidates per category. A failed category is scored as
// empty so the remaining categories still rank.
func (e *Engine) collect(ctx context.Context, spec *models.RequirementSpec) map[string][]models.Candidate {
	timeout := time.Duration(e.cfg.Matching.Engine.CatalogTimeoutMS) * time.Millisecond
	out := make(map[string][]models.Candidate, len(spec.Categories))

	for _, category := range spec.Categories {
		normalized := models.NormalizeCategory(category)
		if _, seen := out[normalized]; seen {
			continue
		}

		catCtx, cancel := context.WithTimeout(ctx, timeout)
		candidates, err := e.collector.ListByCategory(catCtx, category)
		cancel()
		if err != nil {
			metrics.CatalogFailures.WithLabelValues(normalized).Inc()
			e.logger.Warn("catalog read failed, category scored as empty", map[string]interface{}{
				"category": normalized,
				"error":    standerr.NewCatalogUnavailableError(normalized, err).Error(),
			})
			continue
		}
		out[normalized] = candidates
	}
	return out
}

type scoredCandidate struct {
	result  models.MatchResult
	blocked bool
}

// scoreCategory scores all candidates of one category with a bounded
// goroutine pool, applies the semantic blend, and drops hard-blocked
// candidates.
func (e *Engine) scoreCategory(ctx context.Context, rfqID string, spec *models.RequirementSpec, category string, candidates []models.Candidate) ([]models.MatchResult, error) {
	weights := normalizeWeights(spec.Criteria)
	quantity := spec.QuantityFor(category)

	scored := make([]scoredCandidate, len(candidates))
	sem := make(chan struct{}, e.maxConcurrency())
	var wg sync.WaitGroup

	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			scored[i] = e.scoreCandidate(rfqID, spec, weights, quantity, &candidates[i], candidates)
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(scored))
	for _, sc := range scored {
		if sc.blocked {
			metrics.ComplianceBlocks.WithLabelValues(models.NormalizeCategory(category)).Inc()
			e.logger.Info("candidate blocked by compliance", map[string]interface{}{
				"rfqId":       rfqID,
				"candidateId": sc.result.CandidateID,
				"code":        string(standerr.ErrCodeComplianceBlocked),
				"reason":      sc.result.ComplianceNotes,
			})
			continue
		}
		results = append(results, sc.result)
	}

	e.blendSemantic(ctx, spec, category, results)
	metrics.CandidatesScored.WithLabelValues(models.NormalizeCategory(category)).Add(float64(len(candidates)))
	return results, nil
}

func (e *Engine) scoreCandidate(rfqID string, spec *models.RequirementSpec, weights map[models.Criterion]float64, quantity int, c *models.Candidate, siblings []models.Candidate) scoredCandidate {
	compl := e.checker.Check(spec.BuyerCountry, c)

	breakdown := models.ScoreBreakdown{
		Price:      e.pricing.Score(c.Product.Price, siblings, spec.Criteria[models.CriterionPrice]),
		Quality:    speccompare.QualityScore(spec, c),
		Delivery:   e.delivery.Score(c),
		Compliance: compl.Score,
	}

	result := models.MatchResult{
		ID:                uuid.NewString(),
		RFQID:             rfqID,
		CandidateID:       c.Product.ID,
		SupplierID:        c.Supplier.ID,
		Category:          c.Product.Category,
		FinalScore:        aggregate(breakdown, weights),
		Breakdown:         breakdown,
		TotalPrice:        c.Product.Price.Mul(decimalFromInt(quantity)),
		EstimatedDelivery: e.estimatedDelivery(c),
		ComplianceNotes:   compl.Note,
	}
	return scoredCandidate{result: result, blocked: compl.Blocked}
}

// blendSemantic folds similarity scores into the final score. Any failure
// leaves the heuristic scores unchanged.
func (e *Engine) blendSemantic(ctx context.Context, spec *models.RequirementSpec, category string, results []models.MatchResult) {
	if e.searcher == nil || !e.cfg.Semantic.Enabled || len(results) == 0 {
		return
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.CandidateID)
	}

	sims, err := e.searcher.Similarities(ctx, spec, category, ids)
	if err != nil {
		metrics.SemanticFallbacks.Inc()
		e.logger.Warn("semantic blend skipped", map[string]interface{}{
			"category": models.NormalizeCategory(category),
			"error":    err.Error(),
		})
		return
	}

	hw := e.cfg.Semantic.HeuristicWeight
	sw := e.cfg.Semantic.SemanticWeight
	for i := range results {
		sim, ok := sims[results[i].CandidateID]
		if !ok {
			continue
		}
		semScore := sim * 100
		results[i].Breakdown.Semantic = &semScore
		results[i].FinalScore = clampScore(results[i].FinalScore*hw + semScore*sw)
	}
}

func (e *Engine) estimatedDelivery(c *models.Candidate) string {
	days := float64(c.Supplier.LeadTimeDays)
	if days <= 0 {
		days = unitparse.LeadTimeDays(c.Supplier.DeliveryTime, e.cfg.Matching.Delivery.DefaultLeadTimeDays)
	}
	return time.Now().UTC().AddDate(0, 0, int(days)).Format("2006-01-02")
}

func (e *Engine) maxConcurrency() int {
	if n := e.cfg.Matching.Engine.MaxConcurrency; n > 0 {
		return n
	}
	return 1
}
