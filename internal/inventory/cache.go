package inventory

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const availabilityTTL = 30 * time.Second

// Cache is a read-through cache for availability snapshots. Reserve and
// Release drop the key instead of rewriting it, so a stale value can only
// survive for one TTL after the last write. A nil Cache is valid and caches
// nothing, which keeps redis optional in development.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func availabilityKey(categoryID uuid.UUID) string {
	return "availability:" + categoryID.String()
}

func (c *Cache) Get(ctx context.Context, categoryID uuid.UUID) (int, bool) {
	if c == nil {
		return 0, false
	}
	value, err := c.client.Get(ctx, availabilityKey(categoryID)).Result()
	if err != nil {
		return 0, false
	}
	available, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return available, true
}

func (c *Cache) Set(ctx context.Context, categoryID uuid.UUID, available int) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, availabilityKey(categoryID), available, availabilityTTL).Err(); err != nil {
		log.Printf("availability cache set failed for %s: %v", categoryID, err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, categoryID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, availabilityKey(categoryID)).Err(); err != nil {
		log.Printf("availability cache invalidation failed for %s: %v", categoryID, err)
	}
}
