// Package resolve merges the layered variable sources of a pipeline run
// into one flat name-to-value mapping.
//
// Four named sources come from the profile loader and CLI layer, overlaid
// lowest to highest: declared env < set < profile < cli. Beneath all four
// sits a snapshot of the process environment. Lookup against the merged
// result is O(1), exact-match, case-sensitive; there is no partial
// resolution.
package resolve

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// VariableConfig holds the four named variable sources. Values are
// scalars: string, number, boolean or nil. The struct is immutable by
// convention once handed to an engine.
type VariableConfig struct {
	// CLI holds --var style overrides. Highest priority.
	CLI map[string]any `mapstructure:"cli"`

	// Profile holds variables from the active profile file.
	Profile map[string]any `mapstructure:"profile"`

	// Set holds variables assigned by SET statements in the pipeline.
	Set map[string]any `mapstructure:"set"`

	// DeclaredEnv holds environment declarations from the profile.
	// Lowest of the four named sources.
	DeclaredEnv map[string]any `mapstructure:"declared_env"`
}

// ResolvePriority overlays the four sources into a single mapping,
// lowest to highest: DeclaredEnv < Set < Profile < CLI. The result is a
// fresh map; the sources are not touched.
func (c VariableConfig) ResolvePriority() map[string]any {
	merged := make(map[string]any)
	for _, source := range []map[string]any{c.DeclaredEnv, c.Set, c.Profile, c.CLI} {
		for name, value := range source {
			merged[name] = value
		}
	}
	return merged
}

// Decode builds a VariableConfig from a loosely-typed map, as handed over
// by the profile loader or CLI layer. Recognized keys: "cli", "profile",
// "set", "declared_env".
func Decode(data map[string]any) (VariableConfig, error) {
	var cfg VariableConfig
	if err := mapstructure.Decode(data, &cfg); err != nil {
		return VariableConfig{}, fmt.Errorf("decode variable config: %w", err)
	}
	return cfg, nil
}
