package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps per-event registration counts so the public
// event page does not hit Postgres on every render. Entries are
// invalidated when a registration lands and expire on their own after
// the TTL either way.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func countKey(eventID int64) string {
	return fmt.Sprintf("event_regs:%d", eventID)
}

func (c *AvailabilityCache) GetCount(ctx context.Context, eventID int64) (int, error) {
	data, err := c.client.Get(ctx, countKey(eventID)).Result()
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(data)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (c *AvailabilityCache) SetCount(ctx context.Context, eventID int64, count int) error {
	return c.client.Set(ctx, countKey(eventID), strconv.Itoa(count), c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, countKey(eventID)).Err()
}
