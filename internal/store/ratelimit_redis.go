package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

// RedisRateLimiter is a fixed window counter shared by every server
// instance: INCR on a per-window key, EXPIRE on the first hit.
type RedisRateLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	prefix   string
	now      func() time.Time
}

// NewRedisClient parses uri and applies pool settings suited for short
// rate limiting commands. The connection is verified with PING.
func NewRedisClient(ctx context.Context, uri string, log *logger.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis uri: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis (ping): %w", err)
	}

	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")
	return client, nil
}

func NewRedisRateLimiter(client *redis.Client, requests int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		prefix:   "ratelimit:",
		now:      time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("error counting request: %w", err)
	}

	return incr.Val() <= l.requests, nil
}
