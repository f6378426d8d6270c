// Package ratelimit implements a Redis fixed-window rate limiter. The
// ingestion trigger endpoint uses it to keep concurrent batch runs from
// piling up.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

type Limiter struct {
	client *redis.Client
	log    logger.Interface
}

func NewLimiter(cfg *sharedconfig.RedisConfig, log logger.Interface) *Limiter {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Limiter{client: client, log: log.Named("ratelimit")}
}

// Allow reports whether key may proceed under a fixed window of limit
// requests per window. Redis failures fail open: availability over strict
// limiting.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.log.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			l.log.Warnw("failed to set rate limit window", "key", key, "error", err)
		}
	}
	return count <= int64(limit)
}

// Close releases the Redis connection.
func (l *Limiter) Close() error {
	return l.client.Close()
}
