package cache

import (
	"campus-rewards/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache keeps rendered leaderboard pages in Redis for a short
// TTL. The leaderboard is read-heavy and slightly stale ranks are fine.
// A nil *LeaderboardCache is valid and always misses, so the service
// runs without Redis configured.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

func key(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}

// Get returns the cached rows for a limit, or false on a miss
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]model.LeaderboardRow, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key(limit)).Result()
	if err != nil {
		return nil, false
	}

	var rows []model.LeaderboardRow
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		return nil, false
	}

	return rows, true
}

// Set stores the rows for a limit. Cache failures are ignored: the
// leaderboard is always served from the profile store on a miss.
func (c *LeaderboardCache) Set(ctx context.Context, limit int, rows []model.LeaderboardRow) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return
	}

	c.client.Set(ctx, key(limit), data, c.ttl)
}
