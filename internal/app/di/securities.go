package di

import (
	allocadapters "kse_backend/internal/feature/allocation/adapters"
	"kse_backend/internal/feature/allocation/usecase"
	"kse_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewSecurityRepository creates a PriceWriter implementation.
// If Redis is available, the GORM repository is wrapped with a caching
// decorator so the universe is served from Redis until the next market open.
func NewSecurityRepository(rdb *redis.Client, db *gorm.DB) usecase.PriceWriter {
	repo := allocadapters.NewSecurityRepository(db)
	if rdb != nil {
		return cache.NewCachingSecurityRepository(rdb, 0, repo, "securities")
	}
	return repo
}
