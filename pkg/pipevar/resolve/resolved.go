package resolve

import (
	"sort"
	"strings"
)

// ResolvedSet is the single flat mapping produced by overlaying a process
// environment snapshot (lowest priority) with VariableConfig.ResolvePriority.
// It is immutable after construction and safe for concurrent reads.
type ResolvedSet struct {
	values map[string]any
	names  []string
}

// NewResolvedSet builds a ResolvedSet from cfg and an environment snapshot
// in os.Environ form ("KEY=value"). The snapshot is copied; later changes
// to the process environment are invisible to the set.
func NewResolvedSet(cfg VariableConfig, environ []string) *ResolvedSet {
	values := make(map[string]any, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			values[kv[:i]] = kv[i+1:]
		}
	}
	for name, value := range cfg.ResolvePriority() {
		values[name] = value
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ResolvedSet{values: values, names: names}
}

// Lookup returns the value for name and whether it is present.
// Matching is exact and case-sensitive.
func (r *ResolvedSet) Lookup(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether name is present in the set.
func (r *ResolvedSet) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns every resolved variable name, sorted.
// The returned slice must not be modified.
func (r *ResolvedSet) Names() []string {
	if r == nil {
		return nil
	}
	return r.names
}

// Len returns the number of resolved variables.
func (r *ResolvedSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}
