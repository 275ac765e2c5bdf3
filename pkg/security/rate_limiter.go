package security

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig 滑动窗口限流配置
type RateLimitConfig struct {
	WindowSize  time.Duration
	MaxRequests int64
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetTime  time.Time
	RetryAfter time.Duration
}

// RateLimiter 基于 redis 有序集合的滑动窗口限流器
type RateLimiter struct {
	redis  redis.Cmdable
	config RateLimitConfig
	prefix string
	now    func() time.Time
}

func NewRateLimiter(client redis.Cmdable, prefix string, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		config: config,
		prefix: prefix,
		now:    time.Now,
	}
}

// Allow 记录一次请求并判断是否超限
func (rl *RateLimiter) Allow(ctx context.Context, subject string) (*RateLimitResult, error) {
	if rl.config.MaxRequests <= 0 || rl.config.WindowSize <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: -1}, nil
	}

	key := rl.prefix + subject
	now := rl.now()
	windowStart := now.Add(-rl.config.WindowSize)

	pipe := rl.redis.TxPipeline()
	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.config.WindowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "rate limit check failed, key=%s", key)
	}

	return rl.evaluate(countCmd.Val(), now), nil
}

func (rl *RateLimiter) evaluate(count int64, now time.Time) *RateLimitResult {
	remaining := rl.config.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	result := &RateLimitResult{
		Allowed:   count <= rl.config.MaxRequests,
		Remaining: remaining,
		ResetTime: now.Add(rl.config.WindowSize),
	}
	if !result.Allowed {
		result.RetryAfter = rl.config.WindowSize
	}
	return result
}
