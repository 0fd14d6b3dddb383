package crewcontext

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crewfit/internal/synergy"
	id "crewfit/pkg/domain"
)

// RedisCache shares the crew-context projection across instances. Misses
// and unmarshal failures fall through to the loader; populate races are
// acceptable since the projection is rebuilt from source stores anyway.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	load   Loader
}

// NewRedis builds a redis-backed cache over the loader.
func NewRedis(client *redis.Client, ttl time.Duration, load Loader) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, load: load}
}

func cacheKey(vessel id.VesselID) string {
	return fmt.Sprintf("crewfit:crewctx:%s", vessel)
}

// Get returns the cached context or loads and caches a fresh one.
func (c *RedisCache) Get(ctx context.Context, vessel id.VesselID) (*synergy.CrewContext, error) {
	raw, err := c.client.Get(ctx, cacheKey(vessel)).Bytes()
	if err == nil {
		var cached synergy.CrewContext
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
			return &cached, nil
		}
		// Corrupt entry: fall through and overwrite.
	} else if err != redis.Nil {
		return nil, fmt.Errorf("crew context cache read: %w", err)
	}

	fresh, err := c.load(ctx, vessel)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(fresh)
	if err != nil {
		return nil, fmt.Errorf("crew context cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(vessel), encoded, c.ttl).Err(); err != nil {
		// Cache write failure is not fatal; the caller still gets data.
		return fresh, nil
	}
	return fresh, nil
}

// Invalidate drops the cached context for a vessel.
func (c *RedisCache) Invalidate(ctx context.Context, vessel id.VesselID) error {
	return c.client.Del(ctx, cacheKey(vessel)).Err()
}
