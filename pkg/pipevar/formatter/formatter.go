// Package formatter renders resolved variable values for a specific output
// target: plain text, SQL source, or a Python-style expression evaluator.
//
// Formatters are pure functions of (value, insideQuotes). The insideQuotes
// flag is computed per occurrence with the quote-balance heuristic in
// InQuotedSpan so a value spliced into an already-open quoted span is not
// quoted a second time.
package formatter

import (
	"errors"
	"fmt"
)

// ErrUnknownContext indicates a Context value outside the closed set.
var ErrUnknownContext = errors.New("unknown formatter context")

// Context identifies the output target a template is rendered for.
// The set is closed: exactly Text, SQL and AST exist.
type Context int

const (
	// ContextText renders values verbatim for plain-text output.
	ContextText Context = iota

	// ContextSQL renders values as SQL literals with quoting and escaping.
	ContextSQL

	// ContextAST renders values as literals for the expression evaluator.
	ContextAST
)

// String returns the context identifier ("text", "sql", "ast").
func (c Context) String() string {
	switch c {
	case ContextText:
		return "text"
	case ContextSQL:
		return "sql"
	case ContextAST:
		return "ast"
	default:
		return fmt.Sprintf("context(%d)", int(c))
	}
}

// Valid reports whether c is one of the three defined contexts.
func (c Context) Valid() bool {
	return c == ContextText || c == ContextSQL || c == ContextAST
}

// ParseContext maps an identifier to its Context.
// Returns ErrUnknownContext for anything outside {"text", "sql", "ast"}.
func ParseContext(s string) (Context, error) {
	switch s {
	case "text":
		return ContextText, nil
	case "sql":
		return ContextSQL, nil
	case "ast":
		return ContextAST, nil
	default:
		return ContextText, fmt.Errorf("%w: %q", ErrUnknownContext, s)
	}
}

// Formatter renders a resolved value as a string for one output context.
// Implementations are stateless and safe for concurrent use.
type Formatter interface {
	// Format renders value. insideQuotes is true when the occurrence
	// already sits inside an open quoted span of the surrounding text,
	// in which case the formatter must not add its own quoting.
	Format(value any, insideQuotes bool) string
}

// Formatter returns the Formatter bound to this context.
func (c Context) Formatter() Formatter {
	switch c {
	case ContextSQL:
		return SQLFormatter{}
	case ContextAST:
		return ASTFormatter{}
	default:
		return TextFormatter{}
	}
}

// Missing returns the rendering of a variable that resolved to nothing and
// carried no default: text keeps the original placeholder so the problem
// stays visible, SQL and AST render their null literal.
func (c Context) Missing(originalText string) string {
	switch c {
	case ContextSQL:
		return "NULL"
	case ContextAST:
		return "None"
	default:
		return originalText
	}
}
