// Package validate reports variable problems in a template before it runs:
// missing variables, malformed defaults, and location-annotated context
// excerpts, plus "did you mean" suggestions against the known names.
package validate

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/pipevar/pkg/pipevar/parser"
	"github.com/randalmurphal/pipevar/pkg/pipevar/resolve"
)

// Result is the outcome of validating one template.
type Result struct {
	// Valid is true when no variables are missing and no defaults are
	// malformed.
	Valid bool

	// MissingVariables lists names that are absent from the resolved set
	// and carry no default, unique, in order of first appearance.
	MissingVariables []string

	// InvalidDefaults lists the original expression text of every
	// malformed default.
	InvalidDefaults []string

	// Warnings holds human-readable suggestions for missing names.
	Warnings []string

	// ContextLocations maps each missing name to excerpts of the
	// template around its occurrences, with the matching line marked.
	ContextLocations map[string][]string
}

// Template validates text against the resolved variable set. A nil set
// behaves as an empty one. Validation never fails; problems are reported
// in the Result.
func Template(text string, set *resolve.ResolvedSet) *Result {
	res := &Result{
		Valid:            true,
		ContextLocations: make(map[string][]string),
	}

	parsed := parser.Parse(text)
	if !parsed.HasVariables {
		return res
	}

	lines := strings.Split(text, "\n")
	seenMissing := make(map[string]struct{})
	seenInvalid := make(map[string]struct{})

	for _, expr := range parsed.Expressions {
		if expr.HasDefault && invalidDefault(expr.DefaultText) {
			res.Valid = false
			if _, dup := seenInvalid[expr.OriginalText]; !dup {
				seenInvalid[expr.OriginalText] = struct{}{}
				res.InvalidDefaults = append(res.InvalidDefaults, expr.OriginalText)
			}
		}

		if set.Has(expr.Name) || expr.HasDefault {
			continue
		}

		res.Valid = false
		res.ContextLocations[expr.Name] = append(
			res.ContextLocations[expr.Name], excerpt(lines, expr.Line))

		if _, dup := seenMissing[expr.Name]; dup {
			continue
		}
		seenMissing[expr.Name] = struct{}{}
		res.MissingVariables = append(res.MissingVariables, expr.Name)

		if sugg := suggestions(expr.Name, set.Names()); len(sugg) > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"variable %q is not defined; did you mean %s?",
				expr.Name, quoteJoin(sugg)))
		}
	}

	return res
}

// invalidDefault reports whether a default, as originally written, is
// malformed: empty, whitespace-only, a pair of empty quotes, or a naive
// self reference starting with "${". Substitution still proceeds with the
// raw default text; this is a diagnostic only.
func invalidDefault(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	if raw == "''" || raw == `""` {
		return true
	}
	return strings.HasPrefix(raw, "${")
}

// quoteJoin renders up to three suggestions as `"a", "b", "c"`.
func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
