package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shareit/internal/models"
)

type memoryEntry struct {
	items     []*models.Item
	expiresAt time.Time
}

// MemorySearchCache is the in-process fallback for the search cache.
type MemorySearchCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func searchKey(text string, limit, offset int) string {
	return fmt.Sprintf("%s:%d:%d", text, limit, offset)
}

func (c *MemorySearchCache) Get(ctx context.Context, text string, limit, offset int) ([]*models.Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[searchKey(text, limit, offset)]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, text string, limit, offset int, items []*models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[searchKey(text, limit, offset)] = memoryEntry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemorySearchCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
