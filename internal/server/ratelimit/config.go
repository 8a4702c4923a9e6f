package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the rate limit budget for a group of endpoints. A Prefix ending in
// "/" matches every path under it; any other Prefix must match exactly.
type Rule struct {
	Prefix string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // burst capacity, defaults to Limit if 0
}

// Config holds limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool // client IPs never limited
	Rules           []Rule
}

// LoadConfig reads limiter configuration from environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Exempt:          splitIPs(os.Getenv("RATE_LIMIT_EXEMPT")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-endpoint budgets.
func DefaultRules() []Rule {
	return []Rule{
		// Unauthenticated credential endpoints (strictest).
		{Prefix: "/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Public chatbot endpoints.
		{Prefix: "/chatbot/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Prefix: "/chatbot/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},

		// Write endpoints: postings, applications, resume uploads.
		{Prefix: "/jobs", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Prefix: "/jobs/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Prefix: "/my/profile", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 10},

		// Reads fall through to the default budget.
	}
}

// matchRule finds the rule for a path and method, or nil for the default.
// The health check is never limited.
func matchRule(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && r.Prefix == path {
			return r
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Prefix, "/") && strings.HasPrefix(path, r.Prefix) {
			return r
		}
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitIPs(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
