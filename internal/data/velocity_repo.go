package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisVelocityRepo implements the VelocityCounter interface using Redis.
// Counters are keyed per user per UTC day and expire on their own, so the
// velocity signal never needs a cleanup job.
type RedisVelocityRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedisVelocityRepo creates a new RedisVelocityRepo with the given Redis client.
func NewRedisVelocityRepo(client redis.UniversalClient, tp TimeProvider) *RedisVelocityRepo {
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &RedisVelocityRepo{client: client, timeProvider: tp}
}

func (r *RedisVelocityRepo) key(userID string, now time.Time) string {
	return fmt.Sprintf("velocity:%s:%s", userID, now.UTC().Format("2006-01-02"))
}

// Incr increments today's counter for the user and returns the new count.
// The increment and the TTL travel in one MULTI/EXEC pipeline so the key can
// never be left behind without an expiry. The TTL covers the rest of the UTC
// day plus an hour of slack for in-flight pipeline jobs; re-setting it on
// later increments lands on the same deadline.
func (r *RedisVelocityRepo) Incr(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, errors.New("user id cannot be empty")
	}

	now := r.timeProvider.Now().UTC()
	key := r.key(userID, now)
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	ttl := midnight.Sub(now) + time.Hour

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return int(incr.Val()), nil
}

// Count returns today's counter for the user. A missing key counts as zero.
func (r *RedisVelocityRepo) Count(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, errors.New("user id cannot be empty")
	}

	result, err := r.client.Get(ctx, r.key(userID, r.timeProvider.Now())).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return result, nil
}

// Health checks the health of the Redis connection.
func (r *RedisVelocityRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// RedisConfig holds configuration for the Redis connection.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// NewRedisClient creates a new Redis client with the given configuration.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
