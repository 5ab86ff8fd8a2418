package config

import "fmt"

// ConfigError indicates a malformed configuration source or an
// override naming a parameter the target plugin does not declare.
type ConfigError struct {
	Plugin string // empty for source-level errors
	Key    string // empty for source-level errors
	Msg    string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Plugin != "" && e.Key != "" {
		return fmt.Sprintf("plugin %q: unknown parameter %q", e.Plugin, e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
