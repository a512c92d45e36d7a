package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
)

// TestCacheEffectiveness checks that a repeated-template workload is
// served almost entirely from the cache.
func TestCacheEffectiveness(t *testing.T) {
	engine := newBenchEngine(10)
	text := buildTemplate(10)
	ctx := context.Background()

	const rounds = 1000
	for i := 0; i < rounds; i++ {
		if _, err := engine.SubstituteString(ctx, text, formatter.ContextSQL); err != nil {
			t.Fatal(err)
		}
	}

	stats := engine.Cache().Stats()

	// Round 1 misses both the parse and substitution tables; every later
	// round hits both.
	if stats.Misses != 2 {
		t.Errorf("misses = %d, want 2", stats.Misses)
	}
	if want := int64(2 * (rounds - 1)); stats.Hits != want {
		t.Errorf("hits = %d, want %d", stats.Hits, want)
	}
	if stats.Evictions != 0 {
		t.Errorf("evictions = %d, want 0", stats.Evictions)
	}
}

// BenchmarkCacheHit measures the memo-served path in isolation.
func BenchmarkCacheHit(b *testing.B) {
	engine := newBenchEngine(5)
	text := buildTemplate(5)
	ctx := context.Background()

	// Prime both tables.
	if _, err := engine.SubstituteString(ctx, text, formatter.ContextText); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.SubstituteString(ctx, text, formatter.ContextText)
	}
}
