package formatter

import (
	"strings"

	"github.com/randalmurphal/pipevar/pkg/pipevar/parser"
)

// ASTFormatter renders values as literals for the downstream expression
// evaluator, which uses Python-style literal forms.
type ASTFormatter struct{}

// Compile-time interface check.
var _ Formatter = ASTFormatter{}

// astEscaper escapes string content for a single-quoted evaluator literal.
var astEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Format mirrors the SQL rules with evaluator literal forms: booleans
// render as True/False, nil as None, and strings that parse fully as an
// integer or float are emitted as unquoted numeric literals.
func (ASTFormatter) Format(value any, insideQuotes bool) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		if insideQuotes {
			return v
		}
		if parser.IsComplexSQL(v) {
			return v
		}
		if b, ok := booleanLiteral(v); ok {
			if b {
				return "True"
			}
			return "False"
		}
		if numericLiteral(v) {
			return v
		}
		return "'" + astEscaper.Replace(v) + "'"
	default:
		if s, ok := numberString(v); ok {
			return s
		}
		return fallbackString(v)
	}
}
