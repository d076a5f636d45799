package server

import (
	"sync"
	"time"
)

// rateLimiter is a token bucket throttling framed requests on one
// connection so a single client cannot monopolize the worker pool. The
// bucket starts full at the configured burst and refills at a rate of one
// full burst per interval; Config clamping in New guarantees both values
// are positive before a limiter is built.
type rateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	burst    float64
	interval time.Duration
	last     time.Time
}

func newRateLimiter(burst int, interval time.Duration) *rateLimiter {
	return &rateLimiter{
		tokens:   float64(burst),
		burst:    float64(burst),
		interval: interval,
		last:     time.Now(),
	}
}

// allow spends one token if available. A frame arriving on an empty bucket
// is reported as over the limit; the read loop discards it.
func (rl *rateLimiter) allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(rl.last); elapsed > 0 {
		rl.tokens += rl.burst * float64(elapsed) / float64(rl.interval)
		if rl.tokens > rl.burst {
			rl.tokens = rl.burst
		}
	}
	rl.last = now

	if rl.tokens < 1 {
		return false
	}
	rl.tokens--
	return true
}
