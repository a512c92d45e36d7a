// Package profile loads pipeline profile files into variable sources.
//
// A profile file is YAML with top-level vars and env mappings, plus
// optional named profiles that overlay them:
//
//	vars:
//	  table: users
//	env:
//	  REGION: eu-west-1
//	profiles:
//	  prod:
//	    vars:
//	      table: users_prod
//
// The engine itself never reads files; this package is the only place
// profile I/O happens.
package profile

import (
	"fmt"
	"maps"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/randalmurphal/pipevar/pkg/pipevar/resolve"
)

// Section is one vars/env pair, either top-level or under a named profile.
type Section struct {
	Vars map[string]any `koanf:"vars"`
	Env  map[string]any `koanf:"env"`
}

// File is the parsed shape of a profile file.
type File struct {
	Section  `koanf:",squash"`
	Profiles map[string]Section `koanf:"profiles"`
}

// Load reads a profile file and returns the profile and declared-env
// variable sources for a VariableConfig. When name is non-empty, the
// named profile's sections overlay the top-level ones key by key; an
// unknown name is an error.
func Load(path, name string) (resolve.VariableConfig, error) {
	k := koanf.New(".")

	// Defaults first, so a file that omits a section still unmarshals
	// to empty maps rather than nils.
	if err := k.Load(confmap.Provider(map[string]any{
		"vars": map[string]any{},
		"env":  map[string]any{},
	}, "."), nil); err != nil {
		return resolve.VariableConfig{}, fmt.Errorf("profile defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return resolve.VariableConfig{}, fmt.Errorf("load profile %s: %w", path, err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return resolve.VariableConfig{}, fmt.Errorf("parse profile %s: %w", path, err)
	}

	section := f.Section
	if name != "" {
		overlay, ok := f.Profiles[name]
		if !ok {
			return resolve.VariableConfig{}, fmt.Errorf("profile %s: no profile named %q", path, name)
		}
		section = merge(section, overlay)
	}

	return resolve.VariableConfig{
		Profile:     section.Vars,
		DeclaredEnv: section.Env,
	}, nil
}

// merge overlays b's keys onto a, returning fresh maps.
func merge(a, b Section) Section {
	out := Section{
		Vars: make(map[string]any, len(a.Vars)+len(b.Vars)),
		Env:  make(map[string]any, len(a.Env)+len(b.Env)),
	}
	maps.Copy(out.Vars, a.Vars)
	maps.Copy(out.Vars, b.Vars)
	maps.Copy(out.Env, a.Env)
	maps.Copy(out.Env, b.Env)
	return out
}
