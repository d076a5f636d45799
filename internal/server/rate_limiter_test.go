package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tyrowin/goboard/internal/mcast"
	"github.com/Tyrowin/goboard/internal/store"
)

// TestRateLimiterBurst verifies the bucket admits exactly its burst before
// rejecting.
func TestRateLimiterBurst(t *testing.T) {
	rl := newRateLimiter(3, time.Hour)

	assert.True(t, rl.allow())
	assert.True(t, rl.allow())
	assert.True(t, rl.allow())
	assert.False(t, rl.allow())
}

// TestRateLimiterRefills verifies that one interval restores a full burst.
func TestRateLimiterRefills(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)
	assert.True(t, rl.allow())
	assert.False(t, rl.allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.allow())
}

// TestConfigClamping verifies that New replaces non-positive settings with
// working defaults before any limiter or worker is built from them.
func TestConfigClamping(t *testing.T) {
	s := New(Config{}, store.New(mcast.NewAllocator(), nil))

	assert.Equal(t, 8, s.cfg.Workers)
	assert.Equal(t, 32, s.cfg.RateBurst)
	assert.Equal(t, time.Second, s.cfg.RateInterval)
}
