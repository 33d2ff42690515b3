package tenant

import (
	"log/slog"
	"time"
)

// config holds adapter configuration shared by the HTTP middleware and the
// gRPC interceptor.
type config struct {
	logger    *slog.Logger
	validator Validator
	cache     Cache
	cacheTTL  time.Duration
	skipPaths []string
}

// Option configures a resolution adapter.
type Option func(*config)

// WithLogger sets the logger used for resolution warnings. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidator enables registry lookups during resolution so the tenant
// context carries the registered schema name instead of the derived one.
func WithValidator(v Validator) Option {
	return func(c *config) {
		c.validator = v
	}
}

// WithCache sets a cache for registry lookups.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long cached registry lookups stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithSkipPaths sets URL path prefixes that bypass tenant resolution
// entirely. Only the HTTP middleware consults this.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		cache:    NewInMemoryCache(),
		cacheTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}
