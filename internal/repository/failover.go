package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache serves from a primary (Redis) cache and falls back
// to an in-memory cache when the primary fails. The primary is re-probed
// with exponential backoff.
type FailoverSearchCache struct {
	primary  domain.SearchCache
	fallback domain.SearchCache
	logger   *zerolog.Logger
	retry    RetryPolicy

	mu        sync.Mutex
	down      bool
	attempt   int
	nextProbe time.Time
}

func NewFailoverSearchCache(primary, fallback domain.SearchCache, retry RetryPolicy, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		retry:    retry,
	}
}

// usePrimary reports whether the primary should be tried now.
func (c *FailoverSearchCache) usePrimary() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.down {
		return true
	}
	return time.Now().After(c.nextProbe)
}

func (c *FailoverSearchCache) markDown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.down {
		c.logger.Error().Err(err).Msg("primary search cache failed, falling back to memory")
	}
	c.down = true
	c.attempt++
	c.nextProbe = time.Now().Add(c.retry.NextDelay(c.attempt))
}

func (c *FailoverSearchCache) markUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		c.logger.Info().Msg("primary search cache recovered")
	}
	c.down = false
	c.attempt = 0
}

func (c *FailoverSearchCache) Get(ctx context.Context, text string, limit, offset int) ([]*models.Item, bool, error) {
	if c.usePrimary() {
		items, ok, err := c.primary.Get(ctx, text, limit, offset)
		if err == nil {
			c.markUp()
			return items, ok, nil
		}
		c.markDown(err)
	}
	return c.fallback.Get(ctx, text, limit, offset)
}

func (c *FailoverSearchCache) Set(ctx context.Context, text string, limit, offset int, items []*models.Item) error {
	if c.usePrimary() {
		err := c.primary.Set(ctx, text, limit, offset, items)
		if err == nil {
			c.markUp()
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.Set(ctx, text, limit, offset, items)
}

// Invalidate clears both caches: stale search results must not survive an
// item mutation on either side of a failover.
func (c *FailoverSearchCache) Invalidate(ctx context.Context) error {
	fallbackErr := c.fallback.Invalidate(ctx)

	if err := c.primary.Invalidate(ctx); err != nil {
		c.markDown(err)
		return fallbackErr
	}
	c.markUp()
	return fallbackErr
}
