package formatter

import (
	"strings"
	"testing"
)

func TestInQuotedSpan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no quotes", "WHERE id = ", false},
		{"open single quote", "WHERE id = '", true},
		{"closed single pair", "WHERE name = 'x' AND id = ", false},
		{"open double quote", `WHERE col = "`, true},
		{"closed double pair", `WHERE col = "x" AND `, false},
		{"escaped quote not counted", `WHERE s = \'`, false},
		{"open after escaped", `WHERE s = '\'' AND t = '`, true},
		{"mixed open single", `"a" AND b = '`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The occurrence under test sits at the end of the text.
			if got := InQuotedSpan(tt.text, len(tt.text)); got != tt.want {
				t.Errorf("InQuotedSpan(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestInQuotedSpan_OffsetZero(t *testing.T) {
	if InQuotedSpan("'abc'", 0) {
		t.Error("offset 0 can never be inside a quoted span")
	}
}

func TestInQuotedSpan_WindowBounded(t *testing.T) {
	// A quote opened more than quoteWindow bytes back falls outside the
	// window and is not seen. The heuristic misclassifies on purpose.
	text := "'" + strings.Repeat("x", quoteWindow+10)
	if InQuotedSpan(text, len(text)) {
		t.Error("quote outside the window should not be counted")
	}

	// The same quote within the window is seen.
	short := "'" + strings.Repeat("x", 10)
	if !InQuotedSpan(short, len(short)) {
		t.Error("quote inside the window should be counted")
	}
}
