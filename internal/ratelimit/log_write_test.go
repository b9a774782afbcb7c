package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryAfterSeconds(t *testing.T) {
	require.Equal(t, 1, RetryAfterSeconds(0))
	require.Equal(t, 1, RetryAfterSeconds(-time.Second))
	require.Equal(t, 1, RetryAfterSeconds(300*time.Millisecond))
	require.Equal(t, 2, RetryAfterSeconds(1500*time.Millisecond))
	require.Equal(t, 3, RetryAfterSeconds(3*time.Second))
}

func TestDisabledLimiterAllows(t *testing.T) {
	var limiter *LogWriteLimiter
	require.False(t, limiter.Enabled())

	res, err := limiter.Allow(context.Background(), "1", "2")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}
