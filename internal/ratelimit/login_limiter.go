package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

type redisLoginLimiter struct {
	client      redis.Cmdable
	maxFailures int64
	window      time.Duration
	prefix      string
}

// NewRedisLoginLimiter counts failures in a fixed window starting at the first failure.
func NewRedisLoginLimiter(client redis.Cmdable, maxFailures int, window time.Duration) LoginLimiter {
	return &redisLoginLimiter{
		client:      client,
		maxFailures: int64(maxFailures),
		window:      window,
		prefix:      "quizhub:login-failures:",
	}
}

func (r *redisLoginLimiter) key(username string) string {
	return r.prefix + strings.ToLower(username)
}

func (r *redisLoginLimiter) Allowed(ctx context.Context, username string) (bool, error) {
	count, err := r.client.Get(ctx, r.key(username)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login failures: %w", err)
	}
	return count < r.maxFailures, nil
}

func (r *redisLoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := r.key(username)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return fmt.Errorf("failed to set login failure window: %w", err)
		}
	}
	return nil
}

func (r *redisLoginLimiter) Reset(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, r.key(username)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

type noopLoginLimiter struct{}

// NewNoopLoginLimiter never throttles. Used when no Redis is configured.
func NewNoopLoginLimiter() LoginLimiter {
	return noopLoginLimiter{}
}

func (noopLoginLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noopLoginLimiter) RecordFailure(context.Context, string) error   { return nil }
func (noopLoginLimiter) Reset(context.Context, string) error           { return nil }
