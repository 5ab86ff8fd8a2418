// Package plugin defines the contract every problem-type generator
// implements, plus the registry the rest of the pipeline resolves
// plugins through.
package plugin

// Kind is the declared type of a plugin parameter.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	}
	return "unknown"
}

// ParameterDefinition describes one configurable plugin parameter.
// Names use the canonical hyphenated spelling (e.g. "max-operand").
type ParameterDefinition struct {
	Name        string
	Kind        Kind
	Default     any
	Description string
}

// Config is a fully merged parameter mapping for one plugin, keyed by
// canonical parameter names. The merger guarantees every declared
// parameter is present with a value of its declared kind, so the
// accessors below return zero values only for undeclared keys.
type Config map[string]any

// Int returns the integer value stored under key.
func (c Config) Int(key string) int {
	v, _ := c[key].(int)
	return v
}

// Bool returns the boolean value stored under key.
func (c Config) Bool(key string) bool {
	v, _ := c[key].(bool)
	return v
}

// String returns the string value stored under key.
func (c Config) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// Problem is one generated math problem: a rendered SVG block plus the
// structured data needed to rebuild it. Data always contains "answer".
// Type is the producing plugin's name; the pipeline stamps it after
// generation, so plugins leave it empty.
type Problem struct {
	Type string
	SVG  string
	Data map[string]any
}

// Plugin is the fixed capability set a problem-type generator provides.
//
// Generate is the random entry point: it draws values from a generator
// seeded with the given sub-seed and must not keep RNG state between
// calls. FromData is the replay entry point: it rebuilds an identical
// problem from previously recorded data without any randomness, and
// returns *DataValidationError when the data violates its schema.
type Plugin interface {
	Name() string

	// Parameters returns the ordered parameter definitions used for
	// config merging and CLI/YAML surfaces.
	Parameters() []ParameterDefinition

	// Validate runs cross-field checks on a merged config. It is called
	// once after merging, before any problem is generated.
	Validate(cfg Config) error

	Generate(cfg Config, seed int64) (*Problem, error)
	FromData(data map[string]any) (*Problem, error)
}
