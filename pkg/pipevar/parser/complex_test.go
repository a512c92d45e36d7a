package parser

import "testing"

func TestIsComplexSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"plain word", "active", false},
		{"plain sentence", "hello world", false},
		{"nested variable", "prefix_${inner}", true},
		{"concatenation", "a || b", true},
		{"quoted list", "'a','b'", true},
		{"select keyword", "select 1", true},
		{"upper keyword", "SELECT 1", true},
		{"mixed case keyword", "Select 1", true},
		{"null keyword", "x IS NULL", true},
		{"group by", "GROUP BY x", true},
		{"group by extra spaces", "group  by x", true},
		{"order by", "order by id", true},
		{"case expression", "CASE WHEN x THEN y ELSE z END", true},
		{"keyword inside word", "preselected", false},
		{"end inside word", "backend", false},
		{"from inside word", "therefrom", false},
		{"keyword at boundary", "copy from stdin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplexSQL(tt.in); got != tt.want {
				t.Errorf("IsComplexSQL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
