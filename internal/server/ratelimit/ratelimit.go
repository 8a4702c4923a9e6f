// Package ratelimit provides token bucket rate limiting keyed by client and endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. Tokens refill at a steady rate up to capacity,
// and each allowed request consumes one token.
type bucket struct {
	capacity int
	refill   float64 // tokens per second
	tokens   float64
	last     time.Time
	mu       sync.Mutex
}

func newBucket(capacity int, refill float64) *bucket {
	return &bucket{
		capacity: capacity,
		refill:   refill,
		tokens:   float64(capacity),
		last:     time.Now(),
	}
}

// take consumes a token if one is available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.last).Seconds()*b.refill)
	b.last = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// status reports remaining tokens and when the bucket will be full again.
func (b *bucket) status() (remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.last).Seconds()*b.refill)
	b.last = now

	remaining = int(b.tokens)
	if b.tokens < float64(b.capacity) {
		wait := (float64(b.capacity) - b.tokens) / b.refill
		reset = now.Add(time.Duration(wait * float64(time.Second)))
	} else {
		reset = now
	}
	return remaining, reset
}

// Info describes the outcome of a rate limit check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// Limiter tracks one token bucket per client and endpoint combination.
type Limiter struct {
	config     *Config
	buckets    map[string]*bucket
	mu         sync.RWMutex
	lastSeen   map[string]time.Time
	seenMu     sync.RWMutex
	cleanupTk  *time.Ticker
	cleanupEnd chan struct{}
}

// NewLimiter creates a limiter and starts its idle bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:   config,
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTk = time.NewTicker(config.CleanupInterval)
		l.cleanupEnd = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether a request from clientID for the given path and method
// is within budget, along with header-ready rate limit information.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Exempt[clientID] {
		return true, Info{Allowed: true}
	}

	rule := matchRule(path, method, l.config.Rules)
	if rule == nil {
		rule = &Rule{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if rule.Limit <= 0 {
		// Unlimited endpoint, such as the health check.
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + path + ":" + method
	b := l.bucketFor(key, rule)

	l.seenMu.Lock()
	l.lastSeen[key] = time.Now()
	l.seenMu.Unlock()

	allowed := b.take()
	remaining, reset := b.status()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(reset), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		Reset:      reset,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, rule *Rule) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b = newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTk.C:
			l.dropIdleBuckets()
		case <-l.cleanupEnd:
			return
		}
	}
}

// dropIdleBuckets removes buckets not seen for over an hour.
func (l *Limiter) dropIdleBuckets() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.seenMu.Lock()
	defer l.seenMu.Unlock()

	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastSeen, key)
		}
	}
}

// Stop halts the cleanup loop.
func (l *Limiter) Stop() {
	if l.cleanupTk != nil {
		l.cleanupTk.Stop()
	}
	if l.cleanupEnd != nil {
		close(l.cleanupEnd)
	}
}
