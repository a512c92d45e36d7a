package validate

import (
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestions bounds the "did you mean" list per missing name.
const maxSuggestions = 3

// suggestions returns up to maxSuggestions known names similar to name,
// in the (sorted) order of known.
func suggestions(name string, known []string) []string {
	var out []string
	for _, candidate := range known {
		if candidate == name {
			continue
		}
		if similar(name, candidate) {
			out = append(out, candidate)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

// similar applies the light similarity rules: same length within edit
// distance 2, substring containment either direction, or a shared
// 3-character prefix or suffix.
func similar(a, b string) bool {
	if len(a) == len(b) && levenshtein.Distance(a, b, nil) <= 2 {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if len(a) >= 3 && len(b) >= 3 {
		if a[:3] == b[:3] || a[len(a)-3:] == b[len(b)-3:] {
			return true
		}
	}
	return false
}
