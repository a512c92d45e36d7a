package pipevar

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/randalmurphal/pipevar/pkg/pipevar/cache"
	"github.com/randalmurphal/pipevar/pkg/pipevar/observability"
	"github.com/randalmurphal/pipevar/pkg/pipevar/parser"
	"github.com/randalmurphal/pipevar/pkg/pipevar/resolve"
	"github.com/randalmurphal/pipevar/pkg/pipevar/validate"
)

// DefaultMaxPasses bounds the self-resolution convergence loop.
const DefaultMaxPasses = 10

// Engine substitutes variables into templates. Construct one per logical
// unit of work with New; there is no package-level default instance.
// An Engine is safe for concurrent use once constructed.
type Engine struct {
	id        string
	cfg       resolve.VariableConfig
	environ   func() []string
	cache     *cache.Cache
	cacheSize int
	memoize   bool
	maxPasses int
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager

	resolveOnce sync.Once
	resolved    *resolve.ResolvedSet
}

// New creates an Engine over the given variable sources.
func New(cfg resolve.VariableConfig, opts ...Option) *Engine {
	e := &Engine{
		id:        uuid.NewString(),
		cfg:       cfg,
		environ:   os.Environ,
		cacheSize: cache.DefaultMaxEntries,
		memoize:   true,
		maxPasses: DefaultMaxPasses,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.New(e.cacheSize)
	}
	e.logger = observability.EnrichLogger(e.logger, e.id)
	return e
}

// ID returns the engine's unique instance identifier, used in logs and
// trace attributes.
func (e *Engine) ID() string {
	return e.id
}

// Cache returns the engine's cache for counter inspection and Clear.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Resolved returns the engine's resolved variable set. The process
// environment snapshot and the priority merge are computed on first call
// and reused for the engine's lifetime: later environment changes are
// invisible to this engine.
func (e *Engine) Resolved() *resolve.ResolvedSet {
	e.resolveOnce.Do(func() {
		e.resolved = resolve.NewResolvedSet(e.cfg, e.environ())
	})
	return e.resolved
}

// Parse tokenizes text, consulting the cache first. The returned result
// is shared and must be treated as read-only.
func (e *Engine) Parse(text string) *parser.Result {
	ctx := context.Background()

	if r, ok := e.cache.Parse(text); ok {
		e.metrics.RecordCacheAccess(ctx, "parse", true)
		return r
	}
	e.metrics.RecordCacheAccess(ctx, "parse", false)

	r := parser.Parse(text)
	e.metrics.RecordParse(ctx, r.ParseTime, r.TotalCount)

	before := e.cache.Stats().Evictions
	e.cache.StoreParse(text, r)
	if st := e.cache.Stats(); st.Evictions > before {
		observability.LogCacheEviction(e.logger, st.Evictions, st.Entries)
	}
	return r
}

// Validate reports missing variables, malformed defaults, and suggestions
// for text against the engine's resolved set. Validation never fails.
func (e *Engine) Validate(text string) *validate.Result {
	_, span := e.spans.StartValidateSpan(context.Background(), e.id)
	res := validate.Template(text, e.Resolved())
	observability.LogValidation(e.logger, res.Valid,
		len(res.MissingVariables), len(res.InvalidDefaults))
	e.spans.EndSpanWithError(span, nil)
	return res
}
