package problems

import (
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/render"
)

// Multiplication generates vertically stacked multiplication problems.
// The rendered width is padded to the widest operand the configured
// range can produce so every problem on a worksheet scales identically.
type Multiplication struct{}

var multiplicationSchema = &plugin.Schema{
	Name: "multiplication-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operands": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "integer"},
				"minItems": 2,
				"maxItems": 2,
			},
			"operator":        map[string]any{"const": "X"},
			"answer":          map[string]any{"type": "integer"},
			"min_digit_chars": map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []any{"operands"},
		"additionalProperties": false,
	},
}

func (Multiplication) Name() string { return "multiplication" }

func (Multiplication) Parameters() []plugin.ParameterDefinition {
	return operandRangeParameters("multiplication")
}

func (Multiplication) Validate(cfg plugin.Config) error {
	return validateOperandRange("multiplication", cfg)
}

func (Multiplication) Generate(cfg plugin.Config, seed int64) (*plugin.Problem, error) {
	rng := rand.New(rand.NewSource(seed))
	min, max := cfg.Int("min-operand"), cfg.Int("max-operand")

	multiplicand := randRange(rng, min, max)
	multiplier := randRange(rng, min, max)
	answer := multiplicand * multiplier
	minChars := render.MinDigitChars(min, max)

	return &plugin.Problem{
		SVG: render.VerticalProblem(multiplicand, multiplier, "X", minChars),
		Data: map[string]any{
			"operands":        []int{multiplicand, multiplier},
			"operator":        "X",
			"answer":          answer,
			"min_digit_chars": minChars,
		},
	}, nil
}

func (Multiplication) FromData(data map[string]any) (*plugin.Problem, error) {
	if err := plugin.ValidateData(multiplicationSchema, data); err != nil {
		return nil, &plugin.DataValidationError{Plugin: "multiplication", Err: err}
	}

	top, bottom, ok := asIntPair(data["operands"])
	if !ok {
		return nil, dataError("multiplication", "operands must be a pair of integers")
	}
	computed := top * bottom
	if raw, present := data["answer"]; present {
		answer, ok := asInt(raw)
		if !ok || answer != computed {
			return nil, dataError("multiplication", "answer does not match the product of operands")
		}
	}

	minChars := render.MinDigitChars(top, bottom)
	if raw, present := data["min_digit_chars"]; present {
		if v, ok := asInt(raw); ok {
			minChars = v
		}
	}

	return &plugin.Problem{
		SVG: render.VerticalProblem(top, bottom, "X", minChars),
		Data: map[string]any{
			"operands":        []int{top, bottom},
			"operator":        "X",
			"answer":          computed,
			"min_digit_chars": minChars,
		},
	}, nil
}
