package problems

import (
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/render"
)

// Addition generates vertically stacked addition problems.
type Addition struct{}

var additionSchema = &plugin.Schema{
	Name: "addition-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operands": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "integer"},
				"minItems": 2,
				"maxItems": 2,
			},
			"operator": map[string]any{"const": "+"},
			"answer":   map[string]any{"type": "integer"},
		},
		"required":             []any{"operands"},
		"additionalProperties": false,
	},
}

func (Addition) Name() string { return "addition" }

func (Addition) Parameters() []plugin.ParameterDefinition {
	return operandRangeParameters("addition")
}

func (Addition) Validate(cfg plugin.Config) error {
	return validateOperandRange("addition", cfg)
}

func (Addition) Generate(cfg plugin.Config, seed int64) (*plugin.Problem, error) {
	rng := rand.New(rand.NewSource(seed))
	min, max := cfg.Int("min-operand"), cfg.Int("max-operand")

	augend := randRange(rng, min, max)
	addend := randRange(rng, min, max)
	answer := augend + addend

	return &plugin.Problem{
		SVG: render.VerticalProblem(augend, addend, "+", 0),
		Data: map[string]any{
			"operands": []int{augend, addend},
			"operator": "+",
			"answer":   answer,
		},
	}, nil
}

func (Addition) FromData(data map[string]any) (*plugin.Problem, error) {
	if err := plugin.ValidateData(additionSchema, data); err != nil {
		return nil, &plugin.DataValidationError{Plugin: "addition", Err: err}
	}

	top, bottom, ok := asIntPair(data["operands"])
	if !ok {
		return nil, dataError("addition", "operands must be a pair of integers")
	}
	computed := top + bottom
	if raw, present := data["answer"]; present {
		answer, ok := asInt(raw)
		if !ok || answer != computed {
			return nil, dataError("addition", "answer does not match the sum of operands")
		}
	}

	return &plugin.Problem{
		SVG: render.VerticalProblem(top, bottom, "+", 0),
		Data: map[string]any{
			"operands": []int{top, bottom},
			"operator": "+",
			"answer":   computed,
		},
	}, nil
}

// operandRangeParameters declares the min/max operand pair shared by
// the addition, subtraction and multiplication plugins.
func operandRangeParameters(pluginName string) []plugin.ParameterDefinition {
	return []plugin.ParameterDefinition{
		{
			Name:        "min-operand",
			Kind:        plugin.KindInt,
			Default:     0,
			Description: "Minimum operand value (inclusive) for random " + pluginName + " problems.",
		},
		{
			Name:        "max-operand",
			Kind:        plugin.KindInt,
			Default:     10,
			Description: "Maximum operand value (inclusive) for random " + pluginName + " problems.",
		},
	}
}

func validateOperandRange(pluginName string, cfg plugin.Config) error {
	if cfg.Int("min-operand") > cfg.Int("max-operand") {
		return &plugin.ValidationError{
			Subject: pluginName,
			Msg:     "min-operand must be less than or equal to max-operand",
		}
	}
	return nil
}
