package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/pipevar/pkg/pipevar/config"
	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_TypedAccessors(t *testing.T) {
	cfg := config.New(map[string]any{
		"name":    "pipeline",
		"count":   3,
		"count64": int64(4),
		"countf":  5.0,
		"frac":    5.5,
		"enabled": true,
	})

	assert.Equal(t, "pipeline", cfg.String("name", "d"))
	assert.Equal(t, "d", cfg.String("missing", "d"))
	assert.Equal(t, "d", cfg.String("count", "d"), "type mismatch falls back")

	assert.Equal(t, 3, cfg.Int("count", 0))
	assert.Equal(t, 4, cfg.Int("count64", 0))
	assert.Equal(t, 5, cfg.Int("countf", 0))
	assert.Equal(t, 9, cfg.Int("frac", 9), "fractional float falls back")
	assert.Equal(t, 9, cfg.Int("missing", 9))

	assert.True(t, cfg.Bool("enabled", false))
	assert.False(t, cfg.Bool("missing", false))

	assert.True(t, cfg.Has("name"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, "pipeline", cfg.Any("name", nil))
}

func TestConfig_NilMap(t *testing.T) {
	cfg := config.New(nil)
	assert.Equal(t, "d", cfg.String("x", "d"))
	assert.NotNil(t, cfg.Raw())
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte("cache_entries: 256\nmemoize: false\n"))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Int("cache_entries", 0))
	assert.False(t, cfg.Bool("memoize", true))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("{unclosed"))
	require.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"max_passes": 5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Int("max_passes", 0))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_context: sql\n"), 0o644))

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.String("default_context", ""))

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "engine.toml")
	require.NoError(t, os.WriteFile(bad, []byte(""), 0o644))
	_, err = config.FromFile(bad)
	require.Error(t, err)
}

func TestSettings_Defaults(t *testing.T) {
	s, err := config.New(nil).Settings()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
	assert.Equal(t, formatter.ContextText, s.DefaultContext)
	assert.Equal(t, 10, s.MaxPasses)
}

func TestSettings_Overrides(t *testing.T) {
	cfg, err := config.FromYAML([]byte(
		"cache_entries: 64\nmax_passes: 3\ndefault_context: ast\nmemoize: false\n"))
	require.NoError(t, err)

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, 64, s.CacheEntries)
	assert.Equal(t, 3, s.MaxPasses)
	assert.Equal(t, formatter.ContextAST, s.DefaultContext)
	assert.False(t, s.Memoize)
}

func TestSettings_BadContext(t *testing.T) {
	cfg := config.New(map[string]any{"default_context": "xml"})
	_, err := cfg.Settings()
	require.ErrorIs(t, err, formatter.ErrUnknownContext)
}
