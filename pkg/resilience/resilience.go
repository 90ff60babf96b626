// Package resilience provides a token-bucket rate limiter for the upload
// endpoint. The pipeline itself performs no retries: the first collaborator
// failure is terminal for a request.
package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiter allows up to limit requests per window, refilling tokens
// continuously rather than in window-sized bursts.
type RateLimiter struct {
	limit    int
	interval time.Duration // time to earn one token
	tokens   int
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// A non-positive limit is clamped to 1.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limit:    limit,
		interval: window / time.Duration(limit),
		tokens:   limit,
		lastTime: time.Now(),
	}
}

// Allow reports whether one more request fits the budget.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastTime)

	tokensToAdd := int(elapsed / rl.interval)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.limit {
			rl.tokens = rl.limit
		}
		rl.lastTime = now
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	return false
}

// Wait blocks until a token is available or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.interval):
		}
	}
}
