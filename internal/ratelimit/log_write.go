package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nextlab/researchdesk/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyLogWriteMember = "researchlog:write:%s:%s"

// LogWriteLimiter throttles research log writes per (company, member). It is
// nil when no Redis address is configured, in which case every write is
// allowed.
type LogWriteLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewLogWriteLimiter(cfg config.Config) *LogWriteLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	if cfg.LogWriteRate <= 0 || cfg.LogWriteBurst <= 0 {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &LogWriteLimiter{
		bucket: NewTokenBucket(client),
		rate:   cfg.LogWriteRate,
		burst:  cfg.LogWriteBurst,
	}
}

func (l *LogWriteLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *LogWriteLimiter) Allow(ctx context.Context, companyID, memberID string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyLogWriteMember, strings.TrimSpace(companyID), strings.TrimSpace(memberID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}

// RetryAfterSeconds rounds a retry hint up to whole seconds for the
// Retry-After response header.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	seconds := int(d / time.Second)
	if d%time.Second != 0 {
		seconds++
	}
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
