package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(1, 2, 0, 0, nil)
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "burst exhausted")
	assert.True(t, rl.Allow("b"), "clients are limited independently")
}

func TestRateLimiterDefaultBurst(t *testing.T) {
	rl := newRateLimiter(3, 0, 0, 0, nil)
	defer rl.Stop()

	for i := range 3 {
		assert.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterLRUEviction(t *testing.T) {
	rl := newRateLimiter(1, 1, 3, 0, nil)
	defer rl.Stop()

	for i := range 5 {
		rl.Allow(fmt.Sprintf("client-%d", i))
	}
	assert.Equal(t, 3, rl.Len())
	assert.Equal(t, int64(2), rl.totalEvictions)

	// client-0 was evicted, so it gets a fresh bucket.
	assert.True(t, rl.Allow("client-0"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(1, 1, 0, 0, nil)
	defer rl.Stop()

	rl.Allow("old")
	rl.Allow("new")
	rl.mu.Lock()
	rl.limiters["old"].Value.(*limiterEntry).lastAccess = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.Cleanup(30 * time.Minute)
	assert.Equal(t, 1, rl.Len())
	_, ok := rl.limiters["new"]
	assert.True(t, ok)
}

func TestRateLimiterStopIdempotent(t *testing.T) {
	rl := NewRateLimiter(10, 10, nil)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
