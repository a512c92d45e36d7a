package pipevar

import (
	"log/slog"

	"github.com/randalmurphal/pipevar/pkg/pipevar/cache"
	"github.com/randalmurphal/pipevar/pkg/pipevar/config"
	"github.com/randalmurphal/pipevar/pkg/pipevar/observability"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithCache installs a caller-owned cache, allowing several engines to
// share one. Overrides WithCacheSize.
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithCacheSize bounds the engine's own cache.
// Default: cache.DefaultMaxEntries.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

// WithMemoization toggles caching of full substitution output for
// SubstituteString. Parse results are always cached. Default: on.
func WithMemoization(enabled bool) Option {
	return func(e *Engine) {
		e.memoize = enabled
	}
}

// WithMaxPasses bounds the ResolveSelf convergence loop.
// Default: DefaultMaxPasses.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPasses = n
		}
	}
}

// WithLogger enables structured logging. A nil logger keeps the engine
// silent.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics via the global meter provider.
func WithMetrics(enabled bool) Option {
	return func(e *Engine) {
		if enabled {
			e.metrics = observability.NewMetricsRecorder()
		} else {
			e.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing via the global tracer provider.
func WithTracing(enabled bool) Option {
	return func(e *Engine) {
		if enabled {
			e.spans = observability.NewSpanManager()
		} else {
			e.spans = observability.NoopSpanManager{}
		}
	}
}

// WithEnviron replaces the process-environment snapshot source with a
// fixed slice in os.Environ form. Intended for tests and for callers that
// freeze the environment themselves.
func WithEnviron(environ []string) Option {
	return func(e *Engine) {
		snapshot := make([]string, len(environ))
		copy(snapshot, environ)
		e.environ = func() []string { return snapshot }
	}
}

// WithSettings applies engine settings loaded from a tool configuration
// file (cache size, convergence bound, memoization).
func WithSettings(s config.Settings) Option {
	return func(e *Engine) {
		if s.CacheEntries > 0 {
			e.cacheSize = s.CacheEntries
		}
		if s.MaxPasses > 0 {
			e.maxPasses = s.MaxPasses
		}
		e.memoize = s.Memoize
	}
}
