package formatter

import (
	"strings"

	"github.com/randalmurphal/pipevar/pkg/pipevar/parser"
)

// SQLFormatter renders values as SQL literals.
type SQLFormatter struct{}

// Compile-time interface check.
var _ Formatter = SQLFormatter{}

// Format renders value for splicing into SQL source.
//
// Strings are single-quote-escaped ('' doubling) and wrapped in quotes,
// except when the occurrence is already inside an open quoted span, when
// the string classifies as a complex SQL fragment (parser.IsComplexSQL),
// or when it is a boolean literal in any casing (emitted bare lowercase).
// Numbers render as-is, booleans as lowercase literals, nil as NULL.
func (SQLFormatter) Format(value any, insideQuotes bool) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		if insideQuotes {
			return v
		}
		if parser.IsComplexSQL(v) {
			return v
		}
		if b, ok := booleanLiteral(v); ok {
			if b {
				return "true"
			}
			return "false"
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		if s, ok := numberString(v); ok {
			return s
		}
		return fallbackString(v)
	}
}
