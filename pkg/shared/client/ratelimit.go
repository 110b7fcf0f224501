package client

import (
	"sync"
	"time"
)

// RateLimiter is a windowed in-memory request limiter. The console shares the
// super-admin API with the web dashboard, so bulk commands throttle themselves
// instead of exhausting the backend's per-client quota.
type RateLimiter struct {
	mutex    sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow records a request under key if the window still has room.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	valid := rl.requests[key][:0]
	for _, at := range rl.requests[key] {
		if now.Sub(at) < rl.window {
			valid = append(valid, at)
		}
	}
	rl.requests[key] = valid

	if len(valid) >= rl.limit {
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

// Remaining reports how many requests the window still allows for key.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	count := 0
	for _, at := range rl.requests[key] {
		if now.Sub(at) < rl.window {
			count++
		}
	}
	if remaining := rl.limit - count; remaining > 0 {
		return remaining
	}
	return 0
}
