package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/ports"
)

// RedisSearchCache decorates a RestaurantSearch with a TTL'd Redis cache.
//
// The cache is an optional collaborator: every cache failure is logged and
// the call falls through to the wrapped search, so a Redis outage degrades
// latency, never availability.
type RedisSearchCache struct {
	rdb  *redis.Client
	next ports.RestaurantSearch
	ttl  time.Duration
}

func NewRedisSearchCache(rdb *redis.Client, next ports.RestaurantSearch, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{rdb: rdb, next: next, ttl: ttl}
}

func (c *RedisSearchCache) SearchRestaurants(ctx context.Context, center domain.Coordinate, radiusMeters int, tags []string) ([]domain.RestaurantHit, error) {
	key := searchKey(center, radiusMeters, tags)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var hits []domain.RestaurantHit
		if err := json.Unmarshal(data, &hits); err == nil {
			return hits, nil
		}
		log.Printf("search cache: corrupt entry dropped key=%s", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("search cache: read failed key=%s err=%v", key, err)
	}

	hits, err := c.next.SearchRestaurants(ctx, center, radiusMeters, tags)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hits); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("search cache: write failed key=%s err=%v", key, err)
		}
	}

	return hits, nil
}

// searchKey rounds coordinates to ~1 m precision so requests from the same
// spot share an entry without colliding across blocks.
func searchKey(center domain.Coordinate, radiusMeters int, tags []string) string {
	return fmt.Sprintf("restsearch:%.5f,%.5f:%d:%s",
		center.Lat, center.Lng, radiusMeters, strings.Join(tags, ","))
}
