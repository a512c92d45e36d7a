package pipevar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
	"github.com/randalmurphal/pipevar/pkg/pipevar/observability"
)

// lookupFunc resolves a variable name to its value.
type lookupFunc func(name string) (any, bool)

// Substitute resolves every variable placeholder in data for the given
// output context. Strings are substituted in place; mappings have both
// keys and values substituted; sequences are substituted element-wise;
// other values pass through unchanged. The input is never mutated: fresh
// containers are returned.
//
// Expected conditions never fail: a missing variable renders per the
// context's policy (text keeps the placeholder, SQL renders NULL, AST
// renders None). The only error is a Context outside the closed set.
func (e *Engine) Substitute(ctx context.Context, data any, fc formatter.Context) (any, error) {
	if !fc.Valid() {
		return nil, fmt.Errorf("substitute: %w", formatter.ErrUnknownContext)
	}

	sctx, span := e.spans.StartSubstituteSpan(ctx, e.id, fc.String())
	done := observability.TimedOperation()

	exprs := 0
	out := e.substituteValue(sctx, data, fc, e.Resolved().Lookup, e.memoize, &exprs)

	e.spans.EndSpanWithError(span, nil)
	ms := done()
	e.metrics.RecordSubstitution(sctx, fc.String(), time.Duration(ms*float64(time.Millisecond)), exprs)
	observability.LogSubstituteComplete(e.logger, fc.String(), exprs, ms)
	return out, nil
}

// SubstituteString resolves every variable placeholder in one template
// string. Output is memoized per (engine, text, context) unless
// memoization is disabled.
func (e *Engine) SubstituteString(ctx context.Context, text string, fc formatter.Context) (string, error) {
	if !fc.Valid() {
		return "", fmt.Errorf("substitute: %w", formatter.ErrUnknownContext)
	}

	sctx, span := e.spans.StartSubstituteSpan(ctx, e.id, fc.String())
	done := observability.TimedOperation()

	exprs := 0
	out := e.substituteString(sctx, text, fc, e.Resolved().Lookup, e.memoize, &exprs)

	e.spans.EndSpanWithError(span, nil)
	ms := done()
	e.metrics.RecordSubstitution(sctx, fc.String(), time.Duration(ms*float64(time.Millisecond)), exprs)
	observability.LogSubstituteComplete(e.logger, fc.String(), exprs, ms)
	return out, nil
}

// substituteValue walks data structurally, substituting every string.
func (e *Engine) substituteValue(ctx context.Context, data any, fc formatter.Context, lookup lookupFunc, memo bool, exprs *int) any {
	switch v := data.(type) {
	case string:
		return e.substituteString(ctx, v, fc, lookup, memo, exprs)

	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			// Keys are templates too. If two keys substitute to the
			// same string, the last writer wins.
			newKey := e.substituteString(ctx, key, fc, lookup, memo, exprs)
			out[newKey] = e.substituteValue(ctx, value, fc, lookup, memo, exprs)
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = e.substituteValue(ctx, item, fc, lookup, memo, exprs)
		}
		return out

	default:
		// Numbers, booleans, nil: nothing to substitute.
		return data
	}
}

// substituteString splices formatted values over the matched spans of
// text, left to right, in a single pass. Untouched spans are preserved
// byte for byte.
func (e *Engine) substituteString(ctx context.Context, text string, fc formatter.Context, lookup lookupFunc, memo bool, exprs *int) string {
	parsed := e.Parse(text)
	if !parsed.HasVariables {
		return text
	}
	*exprs += parsed.TotalCount

	if memo {
		if out, ok := e.cache.Substitution(text, e.memoID(fc)); ok {
			e.metrics.RecordCacheAccess(ctx, "substitution", true)
			return out
		}
		e.metrics.RecordCacheAccess(ctx, "substitution", false)
	}

	f := fc.Formatter()
	var b strings.Builder
	b.Grow(len(text))
	last := 0

	for _, expr := range parsed.Expressions {
		b.WriteString(text[last:expr.Start])
		insideQuotes := formatter.InQuotedSpan(text, expr.Start)

		value, ok := lookup(expr.Name)
		switch {
		case ok:
			b.WriteString(f.Format(value, insideQuotes))
		case expr.HasDefault:
			b.WriteString(f.Format(expr.Default, insideQuotes))
		default:
			b.WriteString(fc.Missing(expr.OriginalText))
		}
		last = expr.End
	}
	b.WriteString(text[last:])
	out := b.String()

	if memo {
		e.cache.StoreSubstitution(text, e.memoID(fc), out)
	}
	return out
}

// memoID scopes substitution memo entries to this engine, so engines
// with different variable sources can share one cache safely. Parse
// entries are engine-independent and shared as-is.
func (e *Engine) memoID(fc formatter.Context) string {
	return e.id + "/" + fc.String()
}
