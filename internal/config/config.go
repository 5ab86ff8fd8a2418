// Package config merges plugin parameter defaults with file and
// caller overrides into one resolved configuration per plugin.
//
// Precedence, lowest to highest: plugin-declared defaults, shared
// overrides, plugin-specific overrides, then the same two levels again
// for each later layer (a YAML file layer is merged before the caller
// layer). Keys are normalized so hyphenated and underscored spellings
// resolve to the same parameter.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathtest/internal/plugin"
)

// Layer is one precedence level of overrides: values shared by every
// plugin plus per-plugin values. YAML configuration files decode
// directly into this shape.
type Layer struct {
	Common  map[string]any            `yaml:"common"`
	Plugins map[string]map[string]any `yaml:"plugins"`
}

// Set is the fully merged per-plugin configuration. It is built once
// per run and read-only afterwards.
type Set struct {
	perPlugin map[string]plugin.Config
}

// Plugin returns a copy of the merged configuration for name, so
// callers cannot mutate the resolved state.
func (s *Set) Plugin(name string) plugin.Config {
	cfg := make(plugin.Config, len(s.perPlugin[name]))
	for k, v := range s.perPlugin[name] {
		cfg[k] = v
	}
	return cfg
}

// Merge resolves the configuration for every enabled plugin and runs
// each plugin's cross-field validation, so a violated constraint fails
// here before any problem is generated.
//
// Shared (common) values apply only to plugins that declare the key;
// a shared key no enabled plugin declares is an error. Plugin-scoped
// values must always name a declared key.
func Merge(reg *plugin.Registry, enabled []string, layers ...Layer) (*Set, error) {
	set := &Set{perPlugin: make(map[string]plugin.Config, len(enabled))}

	defs := make(map[string]map[string]plugin.ParameterDefinition, len(enabled))
	for _, name := range enabled {
		p, err := reg.Get(name)
		if err != nil {
			return nil, err
		}

		byKey := make(map[string]plugin.ParameterDefinition)
		cfg := make(plugin.Config)
		for _, def := range p.Parameters() {
			key := NormalizeKey(def.Name)
			byKey[key] = def
			cfg[key] = def.Default
		}
		defs[name] = byKey
		set.perPlugin[name] = cfg
	}

	for _, layer := range layers {
		if err := applyShared(set, defs, enabled, layer.Common); err != nil {
			return nil, err
		}
		for pluginName, values := range layer.Plugins {
			byKey, ok := defs[pluginName]
			if !ok {
				// Overrides for plugins that are not enabled are ignored;
				// a config file may describe more plugins than one run uses.
				continue
			}
			for key, value := range values {
				if err := applyValue(set.perPlugin[pluginName], byKey, pluginName, key, value); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, name := range enabled {
		p, _ := reg.Get(name)
		if err := p.Validate(set.Plugin(name)); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// applyShared distributes a common override to every enabled plugin
// that declares the key.
func applyShared(set *Set, defs map[string]map[string]plugin.ParameterDefinition, enabled []string, common map[string]any) error {
	for key, value := range common {
		normalized := NormalizeKey(key)
		applied := false
		for _, name := range enabled {
			byKey := defs[name]
			if _, declared := byKey[normalized]; !declared {
				continue
			}
			if err := applyValue(set.perPlugin[name], byKey, name, key, value); err != nil {
				return err
			}
			applied = true
		}
		if !applied {
			return &ConfigError{
				Msg: fmt.Sprintf("shared parameter %q is not declared by any enabled plugin", key),
			}
		}
	}
	return nil
}

func applyValue(cfg plugin.Config, byKey map[string]plugin.ParameterDefinition, pluginName, key string, value any) error {
	normalized := NormalizeKey(key)
	def, declared := byKey[normalized]
	if !declared {
		return &ConfigError{Plugin: pluginName, Key: key}
	}
	coerced, err := coerceValue(def, value)
	if err != nil {
		return &ConfigError{
			Plugin: pluginName,
			Msg:    fmt.Sprintf("plugin %q: parameter %q", pluginName, key),
			Err:    err,
		}
	}
	cfg[normalized] = coerced
	return nil
}

// NormalizeKey maps surface spellings (max_operand, max-operand) to
// the canonical hyphenated parameter name.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "_", "-")
}

// coerceValue converts an override value to the parameter's declared
// kind. String forms are accepted for every kind because CLI overrides
// arrive as strings.
func coerceValue(def plugin.ParameterDefinition, value any) (any, error) {
	switch def.Kind {
	case plugin.KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v == float64(int(v)) {
				return int(v), nil
			}
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q", v)
			}
			return n, nil
		}
	case plugin.KindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid boolean %q", v)
			}
			return b, nil
		}
	case plugin.KindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", def.Kind, value)
}
