package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tenant:"

// redisCache is a Redis-backed Cache for deployments where multiple
// instances should share registry lookups. Failures degrade to cache
// misses; the registry stays the source of truth.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed tenant cache on an existing client.
// The cache does not own the client and Close does not close it.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, code string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+code).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, code string, tenant *Tenant, ttl time.Duration) {
	if tenant == nil || ttl <= 0 {
		return
	}

	data, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, redisKeyPrefix+code, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, code string) {
	_ = c.client.Del(ctx, redisKeyPrefix+code).Err()
}

func (c *redisCache) Close() error { return nil }
