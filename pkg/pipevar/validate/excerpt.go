package validate

import (
	"fmt"
	"strings"
)

// contextLines is how many lines to show before and after an occurrence.
const contextLines = 2

// excerpt renders the template lines around the 1-based line number, the
// matching line marked with '>'.
func excerpt(lines []string, line int) string {
	from := line - contextLines
	if from < 1 {
		from = 1
	}
	to := line + contextLines
	if to > len(lines) {
		to = len(lines)
	}

	var b strings.Builder
	for n := from; n <= to; n++ {
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%d | %s", marker, n, lines[n-1])
		if n < to {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
