package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

const generationKey = "search:gen"

// RedisSearchCache caches item search results in Redis. Keys embed a
// generation counter; Invalidate bumps the counter so old entries become
// unreachable and expire via TTL.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

func (c *RedisSearchCache) key(ctx context.Context, text string, limit, offset int) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("get search generation: %w", err)
	}
	return fmt.Sprintf("search:%d:%s:%d:%d", gen, text, limit, offset), nil
}

func (c *RedisSearchCache) Get(ctx context.Context, text string, limit, offset int) ([]*models.Item, bool, error) {
	if c.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	key, err := c.key(ctx, text, limit, offset)
	if err != nil {
		return nil, false, err
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached search: %w", err)
	}

	var items []*models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("decode cached search: %w", err)
	}
	return items, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, text string, limit, offset int, items []*models.Item) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	key, err := c.key(ctx, text, limit, offset)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode search results: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached search: %w", err)
	}
	return nil
}

func (c *RedisSearchCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump search generation: %w", err)
	}
	return nil
}
