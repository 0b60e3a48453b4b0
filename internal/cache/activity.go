// Package cache keeps recently read activity records in Redis so repeated
// detail reads skip Postgres. Only stored fields are cached; derived status
// is always recomputed by the caller.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ngohub/casework/internal/domain"
)

const keyPrefix = "casework:activity:"

// ActivityCache is a Redis-backed read-through cache for activity records.
type ActivityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewActivityCache wraps an existing client. ttl bounds how stale a cached
// record may get if an invalidation is ever missed.
func NewActivityCache(rdb *redis.Client, ttl time.Duration) *ActivityCache {
	return &ActivityCache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL, pings the server, and returns the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.Connect: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache.Connect: ping: %w", err)
	}
	return rdb, nil
}

// cachedActivity is the JSON form stored in Redis.
type cachedActivity struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Location            string     `json:"location"`
	Description         string     `json:"description"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	SignupDeadline      *time.Time `json:"signupDeadline"`
	CurrentParticipants int        `json:"currentParticipants"`
	MaxParticipants     *int       `json:"maxParticipants"`
	Status              string     `json:"status"`
	Category            string     `json:"category"`
	TargetAudience      string     `json:"targetAudience"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Get returns the cached record and true, or false on a miss.
func (c *ActivityCache) Get(ctx context.Context, id uuid.UUID) (domain.Activity, bool, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Activity{}, false, nil
	}
	if err != nil {
		return domain.Activity{}, false, fmt.Errorf("cache.ActivityCache.Get: %w", err)
	}

	var v cachedActivity
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Activity{}, false, fmt.Errorf("cache.ActivityCache.Get: decode: %w", err)
	}
	return domain.Activity(v), true, nil
}

// Set stores a record for the cache TTL.
func (c *ActivityCache) Set(ctx context.Context, a domain.Activity) error {
	raw, err := json.Marshal(cachedActivity(a))
	if err != nil {
		return fmt.Errorf("cache.ActivityCache.Set: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key(a.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.ActivityCache.Set: %w", err)
	}
	return nil
}

// Invalidate drops a record after it has been written or deleted.
func (c *ActivityCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache.ActivityCache.Invalidate: %w", err)
	}
	return nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}
