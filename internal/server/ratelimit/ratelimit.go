// Package ratelimit throttles API clients with per-route token buckets.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

// take refills the bucket, consumes a token if one is available and reports the
// remaining tokens and the time the bucket is full again.
func (b *bucket) take(now time.Time) (bool, int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.updated).Seconds()*b.rate)
	b.updated = now
	b.lastSeen = now

	ok := b.tokens >= 1
	if ok {
		b.tokens--
	}

	reset := now
	if b.tokens < b.capacity && b.rate > 0 {
		reset = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return ok, int(b.tokens), reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the limit applied to a request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allow           map[string]bool
	Deny            map[string]bool
	Rules           []Rule
}

// Limiter keeps one bucket per client and route.
type Limiter struct {
	cfg     *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewLimiter starts a limiter. A nil config enables the default limits.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Rules:           DefaultRules(),
		}
	}
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.sweepLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow consumes a token for clientID on the given route.
func (l *Limiter) Allow(clientID, method, path string) Info {
	unlimited := Info{Allowed: true}
	if !l.cfg.Enabled || l.cfg.Allow[clientID] {
		return unlimited
	}
	if l.cfg.Deny[clientID] {
		return Info{}
	}

	rule := Match(method, path, l.cfg.Rules)
	if rule == nil {
		rule = &Rule{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow, Burst: l.cfg.DefaultLimit}
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return unlimited
	}

	now := l.now()
	b := l.bucketFor(clientID+" "+method+" "+path, rule, now)
	ok, remaining, reset := b.take(now)

	info := Info{Allowed: ok, Limit: rule.Limit, Remaining: remaining, ResetTime: reset}
	if !ok {
		info.RetryAfter = max(reset.Sub(now), 0)
	}
	return info
}

func (l *Limiter) bucketFor(key string, rule *Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := newBucket(burst, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep(l.now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets not used since cutoff.
func (l *Limiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
