package ratelimiter

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultSourceKey = "X-RateLimit-Key"

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

// RateLimiter is a token bucket per source key. Buckets idle for longer
// than the TTL are dropped lazily on the next sweep.
type RateLimiter struct {
	ratePerSecond   float64
	maxBurst        int
	ttl             time.Duration
	sourceHeaderKey string

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

func New(opts Options) *RateLimiter {
	if opts.MaxRatePerSecond <= 0 {
		opts.MaxRatePerSecond = 10
	}
	if opts.MaxBurst <= 0 {
		opts.MaxBurst = opts.MaxRatePerSecond
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	return &RateLimiter{
		ratePerSecond:   float64(opts.MaxRatePerSecond),
		maxBurst:        opts.MaxBurst,
		ttl:             opts.CacheTTL,
		sourceHeaderKey: opts.SourceHeaderKey,
		buckets:         make(map[string]*bucket),
		lastSweep:       time.Now(),
	}
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	headerKey := rl.sourceHeaderKey
	if headerKey == "" {
		headerKey = defaultSourceKey
	}

	if v := r.Header.Get(headerKey); v != "" {
		// X-Forwarded-For may hold a chain; the first hop is the client.
		return strings.TrimSpace(strings.Split(v, ",")[0])
	}

	return r.RemoteAddr
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.refill(sourceKey, time.Now())
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return int(rl.refill(sourceKey, time.Now()).tokens)
}

// refill must be called with the lock held.
func (rl *RateLimiter) refill(sourceKey string, now time.Time) *bucket {
	rl.sweep(now)

	b, ok := rl.buckets[sourceKey]
	if !ok {
		b = &bucket{tokens: float64(rl.maxBurst), lastFill: now}
		rl.buckets[sourceKey] = b
		return b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * rl.ratePerSecond
		if b.tokens > float64(rl.maxBurst) {
			b.tokens = float64(rl.maxBurst)
		}
		b.lastFill = now
	}

	return b
}

func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.ttl {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastFill) > rl.ttl {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}
