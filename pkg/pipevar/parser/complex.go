package parser

import (
	"regexp"
	"strings"
)

// sqlKeywordPattern matches bare SQL keywords that mark a value as a raw
// SQL fragment rather than a plain string literal.
var sqlKeywordPattern = regexp.MustCompile(
	`(?i)\b(select|from|where|join|union|group\s+by|order\s+by|null|case|when|then|else|end)\b`)

// IsComplexSQL classifies a string as a complex SQL expression. Complex
// values are exempt from quote stripping at parse time and from automatic
// quoting by the SQL and AST formatters.
//
// A value is complex when it contains a nested "${", the concatenation
// operator "||", a quoted-list pattern ("','"), or a bare SQL keyword
// (case-insensitive): SELECT, FROM, WHERE, JOIN, UNION, GROUP BY,
// ORDER BY, NULL, CASE, WHEN, THEN, ELSE, END.
func IsComplexSQL(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "${") {
		return true
	}
	if strings.Contains(s, "||") {
		return true
	}
	if strings.Contains(s, "','") {
		return true
	}
	return sqlKeywordPattern.MatchString(s)
}
