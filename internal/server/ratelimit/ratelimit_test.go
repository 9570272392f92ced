package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules ...Rule) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
		Rules:         rules,
	}
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBucket(2, 1, start)

	ok, remaining, _ := b.take(start)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, _, _ = b.take(start)
	assert.True(t, ok)

	ok, _, reset := b.take(start)
	assert.False(t, ok)
	assert.Equal(t, start.Add(2*time.Second), reset)

	ok, _, _ = b.take(start.Add(1500 * time.Millisecond))
	assert.True(t, ok)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		info := l.Allow("1.2.3.4", "GET", "/cv")
		require.True(t, info.Allowed, "request %d", i)
		assert.Equal(t, 3, info.Limit)
	}

	info := l.Allow("1.2.3.4", "GET", "/cv")
	assert.False(t, info.Allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	assert.True(t, l.Allow("5.6.7.8", "GET", "/cv").Allowed, "other clients have their own bucket")
}

func TestLimiter_RouteRule(t *testing.T) {
	l := NewLimiter(testConfig(Rule{Method: "POST", Path: "/auth/login", Limit: 1, Window: time.Minute, Burst: 1}))
	defer l.Stop()

	assert.True(t, l.Allow("c", "POST", "/auth/login").Allowed)
	assert.False(t, l.Allow("c", "POST", "/auth/login").Allowed)
	assert.True(t, l.Allow("c", "GET", "/cv").Allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 20; i++ {
		assert.True(t, l.Allow("c", "GET", "/health").Allowed)
	}
}

func TestLimiter_AllowAndDenyLists(t *testing.T) {
	cfg := testConfig()
	cfg.Allow = map[string]bool{"trusted": true}
	cfg.Deny = map[string]bool{"banned": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("trusted", "GET", "/cv").Allowed)
	}
	assert.False(t, l.Allow("banned", "GET", "/cv").Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("c", "POST", "/auth/login").Allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(testConfig(Rule{Method: "GET", Path: "/resume.json", Limit: 50, Window: time.Hour, Burst: 50}))
	defer l.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("c", "GET", "/resume.json").Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
}

func TestLimiter_Sweep(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("c", "GET", "/cv")
	require.Len(t, l.buckets, 1)

	l.sweep(time.Now().Add(-time.Minute))
	assert.Len(t, l.buckets, 1)

	l.sweep(time.Now().Add(time.Minute))
	assert.Empty(t, l.buckets)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatch(t *testing.T) {
	rules := []Rule{
		{Method: "PUT", Path: "/cv", Limit: 1},
		{Method: "GET", Path: "/exports/", Limit: 2},
	}

	assert.Equal(t, 1, Match("PUT", "/cv", rules).Limit)
	assert.Equal(t, 2, Match("GET", "/exports/abc", rules).Limit)
	assert.Nil(t, Match("GET", "/cv", rules))
	assert.Equal(t, 0, Match("GET", "/health", rules).Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Allow["10.0.0.2"])
	assert.NotEmpty(t, cfg.Rules)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
