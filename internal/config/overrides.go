package config

import (
	"fmt"
	"strings"
)

// ParseOverrides builds the caller override layer from key=value
// assignments. "plugin.key=value" scopes the override to one plugin;
// a bare "key=value" applies to every enabled plugin declaring it.
func ParseOverrides(assignments []string) (Layer, error) {
	layer := Layer{
		Common:  make(map[string]any),
		Plugins: make(map[string]map[string]any),
	}
	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return Layer{}, &ConfigError{
				Msg: fmt.Sprintf("invalid override %q: expected key=value or plugin.key=value", assignment),
			}
		}
		key = strings.TrimSpace(key)

		if pluginName, paramKey, scoped := strings.Cut(key, "."); scoped {
			if pluginName == "" || paramKey == "" {
				return Layer{}, &ConfigError{
					Msg: fmt.Sprintf("invalid override %q: empty plugin or parameter name", assignment),
				}
			}
			if layer.Plugins[pluginName] == nil {
				layer.Plugins[pluginName] = make(map[string]any)
			}
			layer.Plugins[pluginName][paramKey] = value
			continue
		}
		layer.Common[key] = value
	}
	return layer, nil
}
