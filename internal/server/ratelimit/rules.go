package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. A Path ending in "/" matches every path below it.
type Rule struct {
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int
}

// DefaultRules guards the editor login and content writes more tightly than reads.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Path: "/auth/login", Limit: 5, Window: time.Minute, Burst: 5},
		{Method: "PUT", Path: "/cv", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "POST", Path: "/resume/validate", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Path: "/resume.json", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// Match returns the rule for a request, or nil when the default limit applies.
// GET /health is never limited.
func Match(method, path string, rules []Rule) *Rule {
	if method == "GET" && path == "/health" {
		return &Rule{}
	}
	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

// LoadConfig reads RATE_LIMIT_* variables from the environment.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allow:           ipSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Deny:            ipSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
