// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"kse_backend/internal/feature/allocation/domain/entity"
	"kse_backend/internal/feature/allocation/usecase"
)

// CachingSecurityRepository decorates a PriceWriter with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingSecurityRepository struct {
	inner     usecase.PriceWriter
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceWriter = (*CachingSecurityRepository)(nil)

// NewCachingSecurityRepository decorates a PriceWriter with Redis caching.
// If ttl is 0, the cache lives until the next trading-day open. If namespace
// is empty, it uses "securities".
func NewCachingSecurityRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceWriter, namespace string) *CachingSecurityRepository {
	if namespace == "" {
		namespace = "securities"
	}
	return &CachingSecurityRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List retrieves the security universe, checking cache first then falling
// back to the database.
func (c *CachingSecurityRepository) List(ctx context.Context) ([]entity.Security, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.universeKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Security
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		ttl := c.ttl
		if ttl <= 0 {
			ttl = TimeUntilNextMarketOpen()
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// UpdatePrices writes prices through to the underlying repository and
// invalidates the cached universe.
func (c *CachingSecurityRepository) UpdatePrices(ctx context.Context, prices map[string]float64) error {
	if err := c.inner.UpdatePrices(ctx, prices); err != nil {
		return err
	}
	if c.rdb == nil || len(prices) == 0 {
		return nil
	}

	// Best effort: don't fail if cache deletion fails
	_ = c.rdb.Del(ctx, c.universeKey()).Err()
	return nil
}

func (c *CachingSecurityRepository) universeKey() string {
	return c.namespace + ":universe"
}
