package cache

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mood-dining-service/internal/adapters/fake"
	"mood-dining-service/internal/domain"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSearchCacheMissThenHit(t *testing.T) {
	var calls atomic.Int32
	next := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			calls.Add(1)
			return []domain.RestaurantHit{{
				ID:         "r1",
				Name:       "Menya Aoi",
				Rating:     4.4,
				Categories: []string{"restaurant", "food"},
				PhotoRefs:  []string{"ref-1"},
			}}, nil
		},
	}

	c := NewRedisSearchCache(newTestRedis(t), next, time.Minute)
	center := domain.Coordinate{Lat: 35.6762, Lng: 139.6503}
	tags := []string{"ramen"}

	first, err := c.SearchRestaurants(context.Background(), center, 500, tags)
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	second, err := c.SearchRestaurants(context.Background(), center, 500, tags)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}

	if n := calls.Load(); n != 1 {
		t.Fatalf("wrapped search called %d times, want 1", n)
	}
	if !reflect.DeepEqual(second, first) {
		t.Fatalf("cached hit = %+v, want %+v", second, first)
	}
}

func TestSearchCacheKeyVariesWithQuery(t *testing.T) {
	var calls atomic.Int32
	next := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			calls.Add(1)
			return nil, nil
		},
	}

	c := NewRedisSearchCache(newTestRedis(t), next, time.Minute)
	center := domain.Coordinate{Lat: 35.6762, Lng: 139.6503}

	c.SearchRestaurants(context.Background(), center, 500, []string{"ramen"})
	c.SearchRestaurants(context.Background(), center, 500, []string{"sushi"})
	c.SearchRestaurants(context.Background(), center, 1000, []string{"ramen"})

	if n := calls.Load(); n != 3 {
		t.Fatalf("wrapped search called %d times, want 3 distinct keys", n)
	}
}

func TestSearchCacheDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	next := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			calls.Add(1)
			return nil, errors.New("upstream down")
		},
	}

	c := NewRedisSearchCache(newTestRedis(t), next, time.Minute)
	center := domain.Coordinate{Lat: 35.0, Lng: 139.0}

	for i := 0; i < 2; i++ {
		if _, err := c.SearchRestaurants(context.Background(), center, 500, nil); err == nil {
			t.Fatal("expected error to propagate")
		}
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("wrapped search called %d times, want 2 (errors never cached)", n)
	}
}

func TestSearchCacheFailsOpenWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	next := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			return []domain.RestaurantHit{{ID: "r1"}}, nil
		},
	}

	c := NewRedisSearchCache(rdb, next, time.Minute)

	hits, err := c.SearchRestaurants(context.Background(), domain.Coordinate{Lat: 35.0, Lng: 139.0}, 500, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
}
