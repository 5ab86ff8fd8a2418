package plugin

import "fmt"

// UnknownPluginError indicates a plugin name that is not registered.
type UnknownPluginError struct {
	Name string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("unknown plugin %q", e.Name)
}

// ValidationError indicates a merged configuration or generation
// request violated a cross-field constraint (e.g. min > max).
type ValidationError struct {
	Subject string // plugin name, or "request" for request-level checks
	Msg     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Msg)
}

// DataValidationError indicates replayed problem data failed a
// plugin's schema or consistency checks.
type DataValidationError struct {
	Plugin string
	Err    error
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("plugin %q: invalid problem data: %v", e.Plugin, e.Err)
}

func (e *DataValidationError) Unwrap() error { return e.Err }
