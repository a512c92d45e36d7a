package config

import (
	"fmt"

	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
)

// Settings holds the engine tunables a pipeline tool configuration file
// may set.
type Settings struct {
	// CacheEntries bounds the parse/substitution cache.
	CacheEntries int

	// MaxPasses bounds the self-resolution convergence loop.
	MaxPasses int

	// DefaultContext is the formatter context used when a caller does
	// not name one.
	DefaultContext formatter.Context

	// Memoize enables caching of full substitution output in addition
	// to parse results.
	Memoize bool
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		CacheEntries:   1024,
		MaxPasses:      10,
		DefaultContext: formatter.ContextText,
		Memoize:        true,
	}
}

// Settings extracts engine settings from the config. Missing keys keep
// their defaults. Keys: cache_entries, max_passes, default_context,
// memoize.
func (c Config) Settings() (Settings, error) {
	s := DefaultSettings()
	s.CacheEntries = c.Int("cache_entries", s.CacheEntries)
	s.MaxPasses = c.Int("max_passes", s.MaxPasses)
	s.Memoize = c.Bool("memoize", s.Memoize)

	if c.Has("default_context") {
		fc, err := formatter.ParseContext(c.String("default_context", "text"))
		if err != nil {
			return Settings{}, fmt.Errorf("default_context: %w", err)
		}
		s.DefaultContext = fc
	}
	return s, nil
}
