package formatter

// TextFormatter renders values verbatim for plain-text output.
type TextFormatter struct{}

// Compile-time interface check.
var _ Formatter = TextFormatter{}

// Format renders value as its plain string form. Nil renders as the empty
// string. insideQuotes has no effect in the text context.
func (TextFormatter) Format(value any, _ bool) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		if s, ok := numberString(v); ok {
			return s
		}
		return fallbackString(v)
	}
}
