package parser

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// exprPattern matches ${name} and ${name|default} occurrences.
// The name group excludes '}' and '|'; the default group excludes '}'.
// Unterminated or otherwise malformed sequences simply do not match.
var exprPattern = regexp.MustCompile(`\$\{([^}|]*)(?:\|([^}]*))?\}`)

// Expression is a single parsed ${name} or ${name|default} occurrence.
// Expressions are created fresh on every parse and never mutated afterwards.
type Expression struct {
	// Name is the trimmed variable name. Never empty.
	Name string

	// Default is the quote-adjusted default value. Meaningful only when
	// HasDefault is true. May be empty (e.g. "${x|}").
	Default string

	// DefaultText is the trimmed default exactly as written, before quote
	// adjustment. The validator inspects this form.
	DefaultText string

	// HasDefault reports whether the expression carried a '|' default.
	HasDefault bool

	// OriginalText is the exact matched substring, including "${" and "}".
	OriginalText string

	// Start and End are the byte offsets of the match within the template.
	Start int
	End   int

	// Line and Column are 1-based positions of the match start.
	Line   int
	Column int
}

// Result holds every expression found in one template string, in document
// order with duplicates preserved. Results are cached by exact template
// text; callers must treat them as read-only.
type Result struct {
	// Expressions in order of appearance.
	Expressions []Expression

	// HasVariables is true when at least one expression matched.
	HasVariables bool

	// UniqueNames holds the distinct variable names, sorted.
	UniqueNames []string

	// TotalCount is len(Expressions).
	TotalCount int

	// ParseTime is how long the parse took.
	ParseTime time.Duration
}

// Parse tokenizes text into variable expressions. It never fails: malformed
// sequences are skipped and remain literal text during substitution.
func Parse(text string) *Result {
	start := time.Now()

	matches := exprPattern.FindAllStringSubmatchIndex(text, -1)
	res := &Result{}
	if len(matches) == 0 {
		res.ParseTime = time.Since(start)
		return res
	}

	lineStarts := newlineOffsets(text)
	seen := make(map[string]struct{})

	for _, m := range matches {
		name := strings.TrimSpace(text[m[2]:m[3]])
		if name == "" {
			// Zero-length name after trimming: not an expression.
			continue
		}

		expr := Expression{
			Name:         name,
			OriginalText: text[m[0]:m[1]],
			Start:        m[0],
			End:          m[1],
		}
		expr.Line, expr.Column = position(lineStarts, m[0])

		if m[4] >= 0 {
			expr.HasDefault = true
			expr.DefaultText = strings.TrimSpace(text[m[4]:m[5]])
			expr.Default = adjustQuotes(expr.DefaultText)
		}

		res.Expressions = append(res.Expressions, expr)
		seen[name] = struct{}{}
	}

	res.HasVariables = len(res.Expressions) > 0
	res.TotalCount = len(res.Expressions)
	res.UniqueNames = make([]string, 0, len(seen))
	for name := range seen {
		res.UniqueNames = append(res.UniqueNames, name)
	}
	sort.Strings(res.UniqueNames)
	res.ParseTime = time.Since(start)
	return res
}

// adjustQuotes strips at most one outer matching pair of quotes from a
// default value. Quotes are kept verbatim when the inner content is a
// complex SQL fragment, so the default can pass through as raw SQL.
func adjustQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '\'' && first != '"') {
		return s
	}
	inner := s[1 : len(s)-1]
	if IsComplexSQL(inner) {
		return s
	}
	return inner
}

// newlineOffsets returns the byte offset of the first character of each
// line, computed once per parse.
func newlineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// position converts a byte offset into a 1-based line and column.
func position(lineStarts []int, offset int) (line, column int) {
	idx := sort.SearchInts(lineStarts, offset+1) - 1
	return idx + 1, offset - lineStarts[idx] + 1
}
