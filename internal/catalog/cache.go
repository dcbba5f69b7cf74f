package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	standerr "rfq-matcher/internal/common/errors"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

// CachedCollector is a read-through cache in front of another Collector.
// Cache failures degrade to the backing store and are only logged.
type CachedCollector struct {
	next   Collector
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedCollector(next Collector, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedCollector {
	return &CachedCollector{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (c *CachedCollector) ListByCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	key := cacheKey(category)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var candidates []models.Candidate
		if err := json.Unmarshal([]byte(val), &candidates); err == nil {
			return candidates, nil
		}
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key})
	}

	candidates, err := c.next.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(candidates); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"key":   key,
				"error": standerr.NewCacheUnavailableError(key, err).Error(),
			})
		}
	}
	return candidates, nil
}

func cacheKey(category string) string {
	return "catalog:" + models.NormalizeCategory(category)
}
