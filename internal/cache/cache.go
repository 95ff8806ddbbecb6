package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jenjangkarir/internal/metrics"
	"jenjangkarir/internal/query"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL keeps listing pages short-lived; admin writes also bump the
// collection version so stale pages are never read after an edit.
const DefaultTTL = 2 * time.Minute

// Pages caches rendered listing windows keyed by plan and range.
type Pages interface {
	Get(ctx context.Context, plan query.Plan, rng query.Range, dst any) (bool, error)
	Set(ctx context.Context, plan query.Plan, rng query.Range, v any) error
	Invalidate(ctx context.Context, c query.Collection) error
}

// Noop never hits. Used when REDIS_ADDR is empty.
type Noop struct{}

func (Noop) Get(context.Context, query.Plan, query.Range, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, query.Plan, query.Range, any) error         { return nil }
func (Noop) Invalidate(context.Context, query.Collection) error              { return nil }

// Redis stores pages as JSON strings.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{Client: client, TTL: ttl, Prefix: "jk:list"}
}

// Connect dials addr and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (r *Redis) versionKey(c query.Collection) string {
	return r.Prefix + ":ver:" + string(c)
}

func (r *Redis) version(ctx context.Context, c query.Collection) (int64, error) {
	v, err := r.Client.Get(ctx, r.versionKey(c)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (r *Redis) key(ctx context.Context, plan query.Plan, rng query.Range) (string, error) {
	ver, err := r.version(ctx, plan.Collection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:v%d:%s@%d+%d", r.Prefix, plan.Collection, ver, plan.Describe(), rng.Offset, rng.Limit), nil
}

// Get decodes a cached page into dst and reports whether it was found.
func (r *Redis) Get(ctx context.Context, plan query.Plan, rng query.Range, dst any) (bool, error) {
	key, err := r.key(ctx, plan, rng)
	if err != nil {
		return false, err
	}
	raw, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ListingCache.WithLabelValues(string(plan.Collection), "miss").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		metrics.ListingCache.WithLabelValues(string(plan.Collection), "miss").Inc()
		return false, nil
	}
	metrics.ListingCache.WithLabelValues(string(plan.Collection), "hit").Inc()
	return true, nil
}

func (r *Redis) Set(ctx context.Context, plan query.Plan, rng query.Range, v any) error {
	key, err := r.key(ctx, plan, rng)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, raw, r.TTL).Err()
}

// Invalidate bumps the collection version; old entries age out by TTL.
func (r *Redis) Invalidate(ctx context.Context, c query.Collection) error {
	return r.Client.Incr(ctx, r.versionKey(c)).Err()
}
