package cache

import (
	"context"
	"encoding/json"
	"time"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	"github.com/redis/go-redis/v9"
)

const (
	catalogKeyPrefix = "catalog:"
	scanBatchSize    = 100
)

type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a redis read-through cache for catalog reads
func NewCatalogCache(client *redis.Client, cfg *config.Config) service.CatalogCache {
	return newCatalogCache(client, cfg.Redis.CatalogTTL)
}

func newCatalogCache(client *redis.Client, ttl time.Duration) *catalogCache {
	return &catalogCache{client: client, ttl: ttl}
}

func (c *catalogCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "redis get failed")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrap(err, "unmarshal cached value failed")
	}

	return true, nil
}

func (c *catalogCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal cached value failed")
	}

	if err := c.client.Set(ctx, catalogKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}

	return nil
}

// InvalidatePrefix deletes every cached key under prefix.
func (c *catalogCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, catalogKeyPrefix+prefix+"*", scanBatchSize).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "redis scan failed")
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "redis delete failed")
	}

	return nil
}
