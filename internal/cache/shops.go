package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/models"
)

const (
	publicShopsKey = "public:shops"
	publicShopsTTL = 60 * time.Second
)

// ShopCache is a cache-aside layer over the public shop listing.
// A nil client (no REDIS_URL configured) or a redis outage degrades
// to the database silently.
type ShopCache struct {
	rdb *redis.Client
}

func NewShopCache(redisURL string) *ShopCache {
	if redisURL == "" {
		return &ShopCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logging.Get().Warn("invalid REDIS_URL, cache disabled", zap.Error(err))
		return &ShopCache{}
	}

	return &ShopCache{rdb: redis.NewClient(opts)}
}

func (c *ShopCache) GetPublicShops(ctx context.Context) ([]models.ShopWithCount, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, publicShopsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var shops []models.ShopWithCount
	if err := json.Unmarshal(raw, &shops); err != nil {
		return nil, false
	}
	return shops, true
}

func (c *ShopCache) SetPublicShops(ctx context.Context, shops []models.ShopWithCount) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(shops)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, publicShopsKey, raw, publicShopsTTL).Err(); err != nil {
		logging.Get().Warn("failed to cache public shops", zap.Error(err))
	}
}

// Invalidate drops the listing after any shop or product mutation.
func (c *ShopCache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, publicShopsKey).Err(); err != nil {
		logging.Get().Warn("failed to invalidate shop cache", zap.Error(err))
	}
}
