package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
	"github.com/actuallystonmai/stylist-kiosk/internal/model"
)

const defaultTTL = 10 * time.Minute

// Cache stores ranked pools. Rankings are deterministic for a catalog
// version and query, so only the final random pick has to run per request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// QueryKey identifies the ranking inputs of q. Occasion is left out because it
// does not affect ranking.
func QueryKey(q domain.Query) string {
	h := xxhash.New()
	_, _ = h.WriteString(domain.Normalize(q.Style))
	_, _ = h.WriteString("\x1f")
	_, _ = h.WriteString(strconv.FormatFloat(q.Budget, 'g', -1, 64))
	_, _ = h.WriteString("\x1f")
	_, _ = h.WriteString(domain.Normalize(q.Category))
	_, _ = h.WriteString("\x1f")
	_, _ = h.WriteString(domain.Normalize(q.Vibe))
	return fmt.Sprintf("%016x", h.Sum64())
}

func buildKey(version string, q domain.Query) string {
	return fmt.Sprintf("rec:pool:%s:%s", version, QueryKey(q))
}

// Get a ranked pool from cache
func (c *Cache) Get(ctx context.Context, version string, q domain.Query) (model.Ranking, bool, error) {
	key := buildKey(version, q)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Ranking{}, false, nil
	}
	if err != nil {
		return model.Ranking{}, false, fmt.Errorf("failed to get pool from cache: %w", err)
	}

	var ranking model.Ranking
	if err := json.Unmarshal(val, &ranking); err != nil {
		return model.Ranking{}, false, fmt.Errorf("failed to unmarshal pool %s: %w", key, err)
	}
	return ranking, true, nil
}

// Store a ranked pool in cache
func (c *Cache) Set(ctx context.Context, version string, q domain.Query, ranking model.Ranking) error {
	key := buildKey(version, q)
	val, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("failed to marshal pool: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set pool in cache: %w", err)
	}
	return nil
}

// ClearVersion drops every pool cached for a catalog version; used when the
// catalog is replaced.
func (c *Cache) ClearVersion(ctx context.Context, version string) error {
	pattern := fmt.Sprintf("rec:pool:%s:*", version)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
