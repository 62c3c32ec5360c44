// Package cache provides a Redis-backed read-through cache in front of a
// UserBN repository, so repeated Loads of the same user's BN don't each pay
// a disk read.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chronosuggest/engine/internal/bayes/application"
)

// DefaultTTL is how long a cached UserBN snapshot stays valid before the
// next Load falls through to the backing repository.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "chronosuggest:userbn:"

type cachedEnvelope struct {
	Evidence     map[string]string         `json:"evidence"`
	Observations []application.Observation `json:"observations"`
}

// Loader is the subset of persistence.FileRepository the cache wraps.
type Loader interface {
	Load(userID string) (*application.UserBN, error)
}

// RedisCache wraps a Loader with a read-through Redis cache, keyed per user.
type RedisCache struct {
	client *redis.Client
	next   Loader
	ttl    time.Duration
	repo   application.Repository
}

// NewRedisCache constructs a cache in front of next. repo is the
// application.Repository handed to any UserBN the cache constructs, so
// subsequent Save calls still reach the backing store; ttl<=0 uses DefaultTTL.
func NewRedisCache(client *redis.Client, next Loader, repo application.Repository, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, next: next, ttl: ttl, repo: repo}
}

func (c *RedisCache) key(userID string) string { return keyPrefix + userID }

// Load returns the cached UserBN snapshot if present and unexpired,
// otherwise falls through to next.Load and populates the cache on success.
func (c *RedisCache) Load(ctx context.Context, userID string) (*application.UserBN, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == nil {
		var env cachedEnvelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil {
			return application.RehydrateUserBN(userID, env.Evidence, env.Observations, c.repo), nil
		}
		// Corrupt cache entry: fall through to the backing repository below.
	} else if err != redis.Nil {
		// Redis unreachable: degrade to the backing repository rather than fail.
	}

	ub, err := c.next.Load(userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, ub)
	return ub, nil
}

// Invalidate evicts a user's cached snapshot; callers invoke this after
// UpdateFromTask/RemoveTask so the next Load reflects the mutation.
func (c *RedisCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *RedisCache) store(ctx context.Context, ub *application.UserBN) {
	env := cachedEnvelope{Evidence: ub.Evidence, Observations: ub.Observations}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	// Best-effort: a cache write failure never fails the caller's Load.
	_ = c.client.Set(ctx, c.key(ub.UserID), data, c.ttl).Err()
}

// NewClientFromURL parses a redis:// URL the way pkg/config's RedisURL is
// declared, and pings once so misconfiguration surfaces immediately.
func NewClientFromURL(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return client, nil
}
