package ratelimiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BurstThenExhaustion(t *testing.T) {
	t.Parallel()

	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 3, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-a"), "request %d should pass within burst", i)
	}
	assert.False(t, rl.Allow("client-a"))
}

func TestAllow_SourcesAreIndependent(t *testing.T) {
	t.Parallel()

	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 1, CacheTTL: time.Minute})

	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-b"))
}

func TestRemaining_DecreasesWithUse(t *testing.T) {
	t.Parallel()

	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 5, CacheTTL: time.Minute})

	assert.Equal(t, 5, rl.Remaining("client-a"))
	rl.Allow("client-a")
	rl.Allow("client-a")
	assert.Equal(t, 3, rl.Remaining("client-a"))
}

func TestGetSourceKey(t *testing.T) {
	t.Parallel()

	rl := New(Options{SourceHeaderKey: "X-Forwarded-For"})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", rl.GetSourceKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", rl.GetSourceKey(r))
}
