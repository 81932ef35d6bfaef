package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuscare/complaint-api/internal/core/ports"
)

const (
	statsKey = "admin:stats"
	statsTTL = 30 * time.Second
)

// StatsCache keeps the admin dashboard aggregate in Redis for a short TTL.
// Complaint writes invalidate the key so the dashboard never serves totals
// older than the last mutation.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.ComplaintStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.ComplaintStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// A corrupt entry is treated as a miss; the next Set repairs it.
		return nil, nil
	}
	return &stats, nil
}

// Set stores the stats with the cache TTL.
func (c *StatsCache) Set(ctx context.Context, stats *ports.ComplaintStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache marshal: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}

// Invalidate drops the cached entry.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
