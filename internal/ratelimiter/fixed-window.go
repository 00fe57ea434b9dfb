package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Limiter decides whether a client key may make another request.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int // key -> count in the current window
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
	}
}

// Run resets every window until ctx is done.
func (rl *FixedWindowRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Reset()
		}
	}
}

func (rl *FixedWindowRateLimiter) Reset() {
	rl.Lock()
	rl.clients = make(map[string]int)
	rl.Unlock()
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	if rl.clients[key] >= rl.limit {
		return false, rl.window
	}
	rl.clients[key]++
	return true, 0
}
