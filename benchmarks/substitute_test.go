package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/randalmurphal/pipevar/pkg/pipevar"
	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
	"github.com/randalmurphal/pipevar/pkg/pipevar/resolve"
)

// BenchmarkSubstituteString_Memoized measures the repeated-template path,
// which is served from the substitution memo after the first call.
func BenchmarkSubstituteString_Memoized(b *testing.B) {
	engine := newBenchEngine(10)
	text := buildTemplate(10)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.SubstituteString(ctx, text, formatter.ContextSQL)
	}
}

// BenchmarkSubstituteString_Cold measures full splicing on every call.
func BenchmarkSubstituteString_Cold(b *testing.B) {
	engine := newBenchEngine(10, pipevar.WithMemoization(false))
	text := buildTemplate(10)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.SubstituteString(ctx, text, formatter.ContextSQL)
	}
}

// BenchmarkSubstituteString_50 substitutes 50 expressions per call.
func BenchmarkSubstituteString_50(b *testing.B) {
	engine := newBenchEngine(50, pipevar.WithMemoization(false))
	text := buildTemplate(50)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.SubstituteString(ctx, text, formatter.ContextText)
	}
}

// BenchmarkSubstitute_Mapping walks a nested mapping.
func BenchmarkSubstitute_Mapping(b *testing.B) {
	engine := newBenchEngine(10, pipevar.WithMemoization(false))
	data := map[string]any{
		"query": "SELECT ${col_0}, ${col_1} FROM ${col_2}",
		"params": []any{
			"${col_3}", "${col_4}",
			map[string]any{"key": "${col_5}"},
		},
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Substitute(ctx, data, formatter.ContextText)
	}
}

// BenchmarkResolveSelf measures convergence over a chained mapping.
func BenchmarkResolveSelf(b *testing.B) {
	engine := newBenchEngine(0)
	vars := map[string]any{
		"host": "localhost",
		"port": "5432",
		"url":  "${host}:${port}",
		"dsn":  "postgres://${url}/app",
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.ResolveSelf(ctx, vars)
	}
}

// BenchmarkValidate measures validation with one missing variable.
func BenchmarkValidate(b *testing.B) {
	engine := newBenchEngine(10)
	text := buildTemplate(10) + " WHERE ${absent}"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Validate(text)
	}
}

func newBenchEngine(vars int, opts ...pipevar.Option) *pipevar.Engine {
	profile := make(map[string]any, vars)
	for i := 0; i < vars; i++ {
		profile[fmt.Sprintf("col_%d", i)] = fmt.Sprintf("value_%d", i)
	}
	opts = append([]pipevar.Option{pipevar.WithEnviron(nil)}, opts...)
	return pipevar.New(resolve.VariableConfig{Profile: profile}, opts...)
}
