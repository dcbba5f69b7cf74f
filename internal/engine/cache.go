package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	standerr "rfq-matcher/internal/common/errors"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

// resultCache memoizes full rank outputs in redis, keyed by the requirement
// spec so two identical runs share a result. Disabled when no client or TTL
// is configured; cache failures never fail a run.
type resultCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func newResultCache(rdb *redis.Client, ttlSeconds int, log logger.Logger) *resultCache {
	c := &resultCache{logger: log.WithFields(map[string]interface{}{"component": "result-cache"})}
	if rdb != nil && ttlSeconds > 0 {
		c.redis = rdb
		c.ttl = time.Duration(ttlSeconds) * time.Second
	}
	return c
}

func (c *resultCache) enabled() bool {
	return c.redis != nil
}

func (c *resultCache) key(rfqID string, spec *models.RequirementSpec) string {
	data, err := json.Marshal(spec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return "match:" + rfqID + ":" + hex.EncodeToString(sum[:8])
}

func (c *resultCache) get(ctx context.Context, rfqID string, spec *models.RequirementSpec) ([]models.MatchResult, bool) {
	if !c.enabled() {
		return nil, false
	}
	key := c.key(rfqID, spec)
	if key == "" {
		return nil, false
	}

	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var results []models.MatchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		c.logger.Warn("discarding unreadable cached result", map[string]interface{}{"key": key})
		return nil, false
	}
	return results, true
}

func (c *resultCache) put(ctx context.Context, rfqID string, spec *models.RequirementSpec, results []models.MatchResult) {
	if !c.enabled() {
		return
	}
	key := c.key(rfqID, spec)
	if key == "" {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("result cache write failed", map[string]interface{}{
			"key":   key,
			"error": standerr.NewCacheUnavailableError(key, err).Error(),
		})
	}
}
