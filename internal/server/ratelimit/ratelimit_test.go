package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketBurstThenDeny(t *testing.T) {
	b := newBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		assert.True(t, b.take(), "request %d should be within burst", i+1)
	}
	assert.False(t, b.take())
}

func TestBucketRefills(t *testing.T) {
	b := newBucket(2, 20.0) // refills fast enough to observe in a short sleep

	require.True(t, b.take())
	require.True(t, b.take())
	require.False(t, b.take())

	time.Sleep(100 * time.Millisecond)
	assert.True(t, b.take())
}

func TestLimiterDefaultBudget(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/jobs", "GET")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/jobs", "GET")
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/jobs", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/jobs", "GET")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/jobs", "GET")
	assert.True(t, allowed, "other clients keep their own budget")
}

func TestLimiterExemptClient(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Exempt:        map[string]bool{"127.0.0.1": true},
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/auth/login", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/auth/login", "POST")
		assert.True(t, allowed)
	}
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
	}{
		{"auth login", "/auth/login", "POST", 20},
		{"auth register", "/auth/register", "POST", 20},
		{"chatbot query", "/chatbot/query", "POST", 30},
		{"chatbot details", "/chatbot/jobs/abc", "GET", 60},
		{"apply", "/jobs/abc/applications", "POST", 60},
		{"profile update", "/my/profile", "PUT", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := matchRule(tt.path, tt.method, rules)
			require.NotNil(t, r)
			assert.Equal(t, tt.limit, r.Limit)
		})
	}

	assert.Nil(t, matchRule("/jobs", "GET", rules), "reads use the default budget")

	health := matchRule("/health", "GET", rules)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit, "health check is unlimited")
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_EXEMPT", "127.0.0.1, 10.0.0.5")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Exempt["127.0.0.1"])
	assert.True(t, cfg.Exempt["10.0.0.5"])
	assert.NotEmpty(t, cfg.Rules)
}
