package mcpserver

import (
	"sync"
	"time"
)

// RateLimiter caps calls per key within a fixed window
type RateLimiter struct {
	counters     map[string]*rateLimitEntry
	mu           sync.Mutex
	maxRequests  int
	windowPeriod time.Duration
	now          func() time.Time
}

type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter allows maxRequests calls per key in each windowPeriod
func NewRateLimiter(maxRequests int, windowPeriod time.Duration) *RateLimiter {
	return &RateLimiter{
		counters:     make(map[string]*rateLimitEntry),
		maxRequests:  maxRequests,
		windowPeriod: windowPeriod,
		now:          time.Now,
	}
}

// Allow counts a call for key and reports whether it is within the limit,
// together with the call count and the time the window resets
func (r *RateLimiter) Allow(key string) (bool, int, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.counters[key]
	if !ok || now.Sub(entry.windowStart) >= r.windowPeriod {
		entry = &rateLimitEntry{windowStart: now}
		r.counters[key] = entry
	}

	entry.count++
	return entry.count <= r.maxRequests, entry.count, entry.windowStart.Add(r.windowPeriod)
}
