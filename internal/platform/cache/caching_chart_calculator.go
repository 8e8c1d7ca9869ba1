// Package cache provides caching implementations for usecase ports.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
	"natal_backend/internal/feature/chart/usecase"
)

// CachingChartCalculator decorates a ChartCalculator with Redis memoization.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying calculator. A chart is a pure function of its
// birth input, so entries never need invalidation.
type CachingChartCalculator struct {
	inner     usecase.ChartCalculator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingChartCalculator decorates a ChartCalculator with Redis memoization.
// A ttl of 0 stores entries without expiry. If namespace is empty, it uses "charts".
func NewCachingChartCalculator(rdb *redis.Client, ttl time.Duration, inner usecase.ChartCalculator, namespace string) *CachingChartCalculator {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "charts"
	}
	return &CachingChartCalculator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Compute returns the chart for the input, checking the cache first and
// falling back to the wrapped calculator.
func (c *CachingChartCalculator) Compute(ctx context.Context, input entity.BirthInput) (entity.Chart, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Compute(ctx, input)
	}

	key, err := c.cacheKey(input)
	if err != nil {
		// Inputs that cannot be fingerprinted are computed directly
		return c.inner.Compute(ctx, input)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Chart
		if err := json.Unmarshal(b, &out); err == nil && out.Hash != "" {
			return out, nil
		}
		// Delete corrupted cache entry (unparseable or missing its hash)
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the calculator
	out, err := c.inner.Compute(ctx, input)
	if err != nil {
		return entity.Chart{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey derives the memoization key from the input fingerprint.
func (c *CachingChartCalculator) cacheKey(input entity.BirthInput) (string, error) {
	fp, err := domain.InputFingerprint(input)
	if err != nil {
		return "", err
	}
	return c.namespace + ":" + fp, nil
}
