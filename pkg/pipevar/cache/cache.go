// Package cache memoizes parse results and substitution output.
//
// The cache is keyed by exact template text (substitution entries add the
// formatter context id) and is size-bounded with FIFO eviction. Absence
// from the cache never changes observable output, only latency.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/randalmurphal/pipevar/pkg/pipevar/parser"
)

// DefaultMaxEntries bounds the cache under long-running workloads with
// many distinct templates.
const DefaultMaxEntries = 1024

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	// Hits counts lookups that found an entry.
	Hits int64
	// Misses counts lookups that found nothing.
	Misses int64
	// Evictions counts entries dropped by the size bound.
	Evictions int64
	// Entries is the current entry count across both tables.
	Entries int
}

// Cache stores parse results and substitution strings. Safe for
// concurrent use. Stored parse results are shared, not copied; callers
// must treat them as read-only.
type Cache struct {
	mu         sync.RWMutex
	parses     map[string]*parser.Result
	parseOrder []string
	subs       map[string]string
	subOrder   []string
	max        int

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a Cache bounded at maxEntries per table.
// Non-positive maxEntries falls back to DefaultMaxEntries.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		parses: make(map[string]*parser.Result),
		subs:   make(map[string]string),
		max:    maxEntries,
	}
}

// Parse returns the cached parse result for text.
func (c *Cache) Parse(text string) (*parser.Result, bool) {
	c.mu.RLock()
	r, ok := c.parses[text]
	c.mu.RUnlock()

	c.count(ok)
	return r, ok
}

// StoreParse caches the parse result for text, evicting the oldest
// entries once the bound is exceeded.
func (c *Cache) StoreParse(text string, result *parser.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.parses[text]; !exists {
		c.parseOrder = append(c.parseOrder, text)
	}
	c.parses[text] = result

	for len(c.parses) > c.max {
		oldest := c.parseOrder[0]
		c.parseOrder = c.parseOrder[1:]
		delete(c.parses, oldest)
		c.evictions.Add(1)
	}
}

// Substitution returns the cached substitution output for (text, contextID).
func (c *Cache) Substitution(text, contextID string) (string, bool) {
	key := subKey(text, contextID)

	c.mu.RLock()
	out, ok := c.subs[key]
	c.mu.RUnlock()

	c.count(ok)
	return out, ok
}

// StoreSubstitution caches the substitution output for (text, contextID).
func (c *Cache) StoreSubstitution(text, contextID, output string) {
	key := subKey(text, contextID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.subs[key]; !exists {
		c.subOrder = append(c.subOrder, key)
	}
	c.subs[key] = output

	for len(c.subs) > c.max {
		oldest := c.subOrder[0]
		c.subOrder = c.subOrder[1:]
		delete(c.subs, oldest)
		c.evictions.Add(1)
	}
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	entries := len(c.parses) + len(c.subs)
	c.mu.RUnlock()

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   entries,
	}
}

// Len returns the current entry count across both tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.parses) + len(c.subs)
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.parses = make(map[string]*parser.Result)
	c.parseOrder = nil
	c.subs = make(map[string]string)
	c.subOrder = nil
}

func (c *Cache) count(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}

// subKey joins template text and context id. The NUL separator cannot
// occur in a context id.
func subKey(text, contextID string) string {
	return text + "\x00" + contextID
}
