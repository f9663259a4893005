package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// catalogSource is the underlying (Postgres) catalog read.
type catalogSource interface {
	FindAll(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error)
}

// CatalogCache is a read-through cache over the catalog repository. A
// recommendation run performs one bulk catalog read; caching that snapshot
// keeps recomputes off the database. Cache failures degrade to the source -
// they are never surfaced as catalog unavailability.
type CatalogCache struct {
	client *redis.Client
	source catalogSource
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, source catalogSource, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

func catalogKey(limit int, category string) string {
	if category == "" {
		category = "*"
	}
	return fmt.Sprintf("catalog:snapshot:%s:%d", category, limit)
}

func (c *CatalogCache) FindAll(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error) {
	key := catalogKey(limit, category)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var items []domain.CatalogItem
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			return items, nil
		}
		// corrupt cache entry: drop it and fall through to the source
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("catalog cache read failed", "error", err)
	}

	items, err := c.source.FindAll(ctx, limit, category)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(items); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			logger.Warn("catalog cache write failed", "error", setErr)
		}
	}

	return items, nil
}

// Invalidate drops every cached catalog snapshot. Called after catalog
// writes.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "catalog:snapshot:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate catalog cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan catalog cache keys: %w", err)
	}

	return nil
}
