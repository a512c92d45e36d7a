package pipevar

import (
	"context"
	"reflect"

	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
	"github.com/randalmurphal/pipevar/pkg/pipevar/observability"
)

// ResolveSelf resolves a mapping whose values may reference each other,
// e.g. {"url": "${host}:${port}", "host": "localhost", "port": 5432}.
//
// Each pass substitutes the whole mapping in the text context, using the
// current mapping overlaid on the engine's resolved set as the variable
// source. The loop stops at a fixed point, or after the configured pass
// bound (default DefaultMaxPasses) for cyclic mappings. Non-convergence
// is not an error: the best-effort last result is returned with
// converged=false and a warning is logged. The exact value a cyclic
// mapping settles on depends on iteration order and is unspecified;
// only termination is guaranteed.
//
// The input mapping is never mutated.
func (e *Engine) ResolveSelf(ctx context.Context, vars map[string]any) (map[string]any, bool) {
	sctx, span := e.spans.StartResolveSelfSpan(ctx, e.id)
	defer e.spans.EndSpanWithError(span, nil)

	current := vars
	for pass := 1; pass <= e.maxPasses; pass++ {
		lookup := func(name string) (any, bool) {
			if v, ok := current[name]; ok {
				return v, true
			}
			return e.Resolved().Lookup(name)
		}

		// Memoization is off: the variable source changes between
		// passes, so cached output would be stale.
		exprs := 0
		next := e.substituteValue(sctx, current, formatter.ContextText, lookup, false, &exprs).(map[string]any)

		if reflect.DeepEqual(next, current) {
			e.metrics.RecordConvergence(sctx, pass, true)
			observability.LogConvergence(e.logger, pass, true)
			return next, true
		}
		current = next
	}

	e.metrics.RecordConvergence(sctx, e.maxPasses, false)
	observability.LogConvergence(e.logger, e.maxPasses, false)
	return current, false
}
