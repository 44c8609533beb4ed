package handler

import (
	"container/list"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/erraggy/idpdocs/openapi"
)

const (
	defaultMaxLimiters     = 10000
	defaultCleanupInterval = 5 * time.Minute
	defaultMaxIdle         = 30 * time.Minute
)

// limiterEntry tracks a client's limiter and its last access time
type limiterEntry struct {
	identifier string
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter provides per-client token bucket rate limiting with LRU
// eviction so the number of tracked clients stays bounded.
type RateLimiter struct {
	limiters   map[string]*list.Element
	lruList    *list.List // of *limiterEntry, most recent first
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	maxEntries int
	logger     openapi.Logger

	stopOnce    sync.Once
	stopCleanup chan struct{}

	totalEvictions int64
}

// NewRateLimiter creates a rate limiter tracking at most 10,000 clients and
// starts its idle-entry cleanup loop. Call Stop to end the loop.
func NewRateLimiter(requestsPerSecond, burst int, logger openapi.Logger) *RateLimiter {
	return newRateLimiter(requestsPerSecond, burst, defaultMaxLimiters, defaultCleanupInterval, logger)
}

func newRateLimiter(requestsPerSecond, burst, maxEntries int, cleanupInterval time.Duration, logger openapi.Logger) *RateLimiter {
	if logger == nil {
		logger = openapi.NopLogger{}
	}
	if burst < 1 {
		burst = max(requestsPerSecond, 1)
	}
	rl := &RateLimiter{
		limiters:    make(map[string]*list.Element),
		lruList:     list.New(),
		rate:        rate.Limit(requestsPerSecond),
		burst:       burst,
		maxEntries:  maxEntries,
		logger:      logger,
		stopCleanup: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go rl.cleanupLoop(cleanupInterval)
	}
	return rl
}

// Allow reports whether a request from identifier may proceed.
func (rl *RateLimiter) Allow(identifier string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if elem, ok := rl.limiters[identifier]; ok {
		rl.lruList.MoveToFront(elem)
		entry := elem.Value.(*limiterEntry)
		entry.lastAccess = now
		return entry.limiter.AllowN(now, 1)
	}

	if rl.maxEntries > 0 && len(rl.limiters) >= rl.maxEntries {
		rl.evictLRU()
	}
	entry := &limiterEntry{
		identifier: identifier,
		limiter:    rate.NewLimiter(rl.rate, rl.burst),
		lastAccess: now,
	}
	rl.limiters[identifier] = rl.lruList.PushFront(entry)
	return entry.limiter.AllowN(now, 1)
}

// evictLRU removes the least recently used entry. Must be called with mu held.
func (rl *RateLimiter) evictLRU() {
	elem := rl.lruList.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*limiterEntry)
	delete(rl.limiters, entry.identifier)
	rl.lruList.Remove(elem)
	rl.totalEvictions++
	rl.logger.Debug("rate limiter eviction",
		"identifier", entry.identifier,
		"total_evictions", rl.totalEvictions)
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Cleanup(defaultMaxIdle)
		case <-rl.stopCleanup:
			return
		}
	}
}

// Cleanup drops limiters idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	removed := 0
	// Entries behind the first idle one are older still.
	for elem := rl.lruList.Back(); elem != nil; {
		entry := elem.Value.(*limiterEntry)
		if now.Sub(entry.lastAccess) <= maxIdle {
			break
		}
		prev := elem.Prev()
		delete(rl.limiters, entry.identifier)
		rl.lruList.Remove(elem)
		removed++
		elem = prev
	}
	if removed > 0 {
		rl.logger.Debug("rate limiter cleanup", "removed", removed, "remaining", len(rl.limiters))
	}
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}
