package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/mathtest/internal/plugin"
)

// rangedPlugin declares a min/max pair so precedence and cross-field
// validation can be exercised without any real generator.
type rangedPlugin struct {
	name string
}

func (p rangedPlugin) Name() string { return p.name }

func (p rangedPlugin) Parameters() []plugin.ParameterDefinition {
	return []plugin.ParameterDefinition{
		{Name: "min-operand", Kind: plugin.KindInt, Default: 0},
		{Name: "max-operand", Kind: plugin.KindInt, Default: 10},
		{Name: "allow-negative", Kind: plugin.KindBool, Default: false},
		{Name: "label", Kind: plugin.KindString, Default: "plain"},
	}
}

func (p rangedPlugin) Validate(cfg plugin.Config) error {
	if cfg.Int("min-operand") > cfg.Int("max-operand") {
		return &plugin.ValidationError{Subject: p.name, Msg: "min-operand must be less than or equal to max-operand"}
	}
	return nil
}

func (p rangedPlugin) Generate(plugin.Config, int64) (*plugin.Problem, error) {
	return nil, errors.New("not used")
}

func (p rangedPlugin) FromData(map[string]any) (*plugin.Problem, error) {
	return nil, errors.New("not used")
}

// bareplugin declares nothing, to exercise shared-key rejection.
type barePlugin struct{}

func (barePlugin) Name() string                                  { return "bare" }
func (barePlugin) Parameters() []plugin.ParameterDefinition      { return nil }
func (barePlugin) Validate(plugin.Config) error                  { return nil }
func (barePlugin) Generate(plugin.Config, int64) (*plugin.Problem, error) {
	return nil, errors.New("not used")
}
func (barePlugin) FromData(map[string]any) (*plugin.Problem, error) {
	return nil, errors.New("not used")
}

func newTestRegistry(t *testing.T) *plugin.Registry {
	t.Helper()
	reg := plugin.NewRegistry()
	reg.Register(rangedPlugin{name: "addition"})
	reg.Register(rangedPlugin{name: "subtraction"})
	reg.Register(barePlugin{})
	return reg
}

func TestMergeDefaults(t *testing.T) {
	reg := newTestRegistry(t)
	set, err := Merge(reg, []string{"addition"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	cfg := set.Plugin("addition")
	if got := cfg.Int("min-operand"); got != 0 {
		t.Errorf("min-operand = %d, want 0", got)
	}
	if got := cfg.Int("max-operand"); got != 10 {
		t.Errorf("max-operand = %d, want 10", got)
	}
	if got := cfg.String("label"); got != "plain" {
		t.Errorf("label = %q, want %q", got, "plain")
	}
}

func TestMergePrecedence(t *testing.T) {
	reg := newTestRegistry(t)

	fileLayer := Layer{
		Common:  map[string]any{"max-operand": 50},
		Plugins: map[string]map[string]any{"addition": {"max-operand": 100}},
	}
	cliLayer := Layer{
		Plugins: map[string]map[string]any{"addition": {"max-operand": "25"}},
	}

	set, err := Merge(reg, []string{"addition", "subtraction"}, fileLayer, cliLayer)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	// CLI layer beats the file layer; the file's plugin scope beat its
	// own common scope; subtraction only saw the common value.
	if got := set.Plugin("addition").Int("max-operand"); got != 25 {
		t.Errorf("addition max-operand = %d, want 25", got)
	}
	if got := set.Plugin("subtraction").Int("max-operand"); got != 50 {
		t.Errorf("subtraction max-operand = %d, want 50", got)
	}
}

func TestMergeNormalizesKeys(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Common: map[string]any{"max_operand": 7}}

	set, err := Merge(reg, []string{"addition"}, layer)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := set.Plugin("addition").Int("max-operand"); got != 7 {
		t.Errorf("max-operand = %d, want 7", got)
	}
}

func TestMergeUnknownPluginKey(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Plugins: map[string]map[string]any{"addition": {"no-such-key": 1}}}

	_, err := Merge(reg, []string{"addition"}, layer)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Merge error = %v, want *ConfigError", err)
	}
	if cfgErr.Plugin != "addition" || cfgErr.Key != "no-such-key" {
		t.Errorf("ConfigError = %+v, want plugin addition / key no-such-key", cfgErr)
	}
}

func TestMergeSharedKeyNobodyDeclares(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Common: map[string]any{"minute-interval": 5}}

	if _, err := Merge(reg, []string{"addition"}, layer); err == nil {
		t.Error("expected error for shared key no enabled plugin declares")
	}
}

func TestMergeSharedKeySkipsNonDeclaringPlugins(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Common: map[string]any{"max-operand": 42}}

	set, err := Merge(reg, []string{"addition", "bare"}, layer)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := set.Plugin("addition").Int("max-operand"); got != 42 {
		t.Errorf("addition max-operand = %d, want 42", got)
	}
}

func TestMergeIgnoresDisabledPluginSections(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Plugins: map[string]map[string]any{"subtraction": {"max-operand": 99}}}

	if _, err := Merge(reg, []string{"addition"}, layer); err != nil {
		t.Errorf("Merge: %v", err)
	}
}

func TestMergeCoercesStrings(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Plugins: map[string]map[string]any{"addition": {
		"max-operand":    "15",
		"allow-negative": "true",
	}}}

	set, err := Merge(reg, []string{"addition"}, layer)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	cfg := set.Plugin("addition")
	if got := cfg.Int("max-operand"); got != 15 {
		t.Errorf("max-operand = %d, want 15", got)
	}
	if !cfg.Bool("allow-negative") {
		t.Error("allow-negative = false, want true")
	}
}

func TestMergeRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"non-numeric string", "ten"},
		{"fractional float", 1.5},
		{"bool for int", true},
	}

	reg := newTestRegistry(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := Layer{Plugins: map[string]map[string]any{"addition": {"max-operand": tt.value}}}
			if _, err := Merge(reg, []string{"addition"}, layer); err == nil {
				t.Errorf("expected coercion error for %v", tt.value)
			}
		})
	}
}

func TestMergeRunsPluginValidation(t *testing.T) {
	reg := newTestRegistry(t)
	layer := Layer{Plugins: map[string]map[string]any{"addition": {"min-operand": 20}}}

	_, err := Merge(reg, []string{"addition"}, layer)
	var vErr *plugin.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Merge error = %v, want *plugin.ValidationError", err)
	}
}

func TestSetPluginReturnsCopy(t *testing.T) {
	reg := newTestRegistry(t)
	set, err := Merge(reg, []string{"addition"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	set.Plugin("addition")["max-operand"] = 9999
	if got := set.Plugin("addition").Int("max-operand"); got != 10 {
		t.Errorf("mutation leaked into the merged set: max-operand = %d", got)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"max_operand", "max-operand"},
		{"max-operand", "max-operand"},
		{" minute_interval ", "minute-interval"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOverrides(t *testing.T) {
	layer, err := ParseOverrides([]string{"max-operand=20", "clock.minute-interval=5"})
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	if layer.Common["max-operand"] != "20" {
		t.Errorf("common override = %v, want %q", layer.Common["max-operand"], "20")
	}
	if layer.Plugins["clock"]["minute-interval"] != "5" {
		t.Errorf("scoped override = %v, want %q", layer.Plugins["clock"]["minute-interval"], "5")
	}
}

func TestParseOverridesRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"no-equals", "=value", ".key=1", "plugin.=1"} {
		if _, err := ParseOverrides([]string{bad}); err == nil {
			t.Errorf("ParseOverrides(%q) succeeded, want error", bad)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "common:\n  max-operand: 30\nplugins:\n  addition:\n    min-operand: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	layer, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if layer.Common["max-operand"] != 30 {
		t.Errorf("common max-operand = %v, want 30", layer.Common["max-operand"])
	}
	if layer.Plugins["addition"]["min-operand"] != 5 {
		t.Errorf("addition min-operand = %v, want 5", layer.Plugins["addition"]["min-operand"])
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile(empty) = %v, want nil", err)
	}
}

func TestLoadFileRejectsUnknownSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(path, []byte("comon:\n  max-operand: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unknown top-level section")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("LoadFile error = %v, want *ConfigError", err)
	}
}
