package formatter

// quoteWindow bounds how far back InQuotedSpan scans. The count is a
// heuristic over a fixed trailing window, not a full lexer: escaped quotes
// inside the window and quoted strings opened before the window can be
// misclassified. Downstream output depends on this exact behavior, so the
// window and counting rules must not change.
const quoteWindow = 100

// InQuotedSpan reports whether the character at offset already sits inside
// an open quoted span of text. It scans at most quoteWindow bytes before
// offset and counts unescaped single and double quotes; an odd count for
// either quote character means a span is open.
func InQuotedSpan(text string, offset int) bool {
	if offset <= 0 {
		return false
	}
	if offset > len(text) {
		offset = len(text)
	}
	start := offset - quoteWindow
	if start < 0 {
		start = 0
	}

	singles, doubles := 0, 0
	for i := start; i < offset; i++ {
		c := text[i]
		if c != '\'' && c != '"' {
			continue
		}
		if i > 0 && text[i-1] == '\\' {
			continue
		}
		if c == '\'' {
			singles++
		} else {
			doubles++
		}
	}
	return singles%2 == 1 || doubles%2 == 1
}
