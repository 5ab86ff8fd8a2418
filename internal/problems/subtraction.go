package problems

import (
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/render"
)

// Subtraction generates vertically stacked subtraction problems. By
// default operands are ordered so the difference is never negative;
// the allow-negative parameter lifts that constraint.
type Subtraction struct{}

var subtractionSchema = &plugin.Schema{
	Name: "subtraction-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operands": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "integer"},
				"minItems": 2,
				"maxItems": 2,
			},
			"operator": map[string]any{"const": "-"},
			"answer":   map[string]any{"type": "integer"},
		},
		"required":             []any{"operands"},
		"additionalProperties": false,
	},
}

func (Subtraction) Name() string { return "subtraction" }

func (Subtraction) Parameters() []plugin.ParameterDefinition {
	defs := operandRangeParameters("subtraction")
	return append(defs, plugin.ParameterDefinition{
		Name:        "allow-negative",
		Kind:        plugin.KindBool,
		Default:     false,
		Description: "Allow problems whose difference is negative.",
	})
}

func (Subtraction) Validate(cfg plugin.Config) error {
	return validateOperandRange("subtraction", cfg)
}

func (Subtraction) Generate(cfg plugin.Config, seed int64) (*plugin.Problem, error) {
	rng := rand.New(rand.NewSource(seed))
	min, max := cfg.Int("min-operand"), cfg.Int("max-operand")

	minuend := randRange(rng, min, max)
	subtrahend := randRange(rng, min, max)
	if !cfg.Bool("allow-negative") && subtrahend > minuend {
		minuend, subtrahend = subtrahend, minuend
	}
	answer := minuend - subtrahend

	return &plugin.Problem{
		SVG: render.VerticalProblem(minuend, subtrahend, "-", 0),
		Data: map[string]any{
			"operands": []int{minuend, subtrahend},
			"operator": "-",
			"answer":   answer,
		},
	}, nil
}

func (Subtraction) FromData(data map[string]any) (*plugin.Problem, error) {
	if err := plugin.ValidateData(subtractionSchema, data); err != nil {
		return nil, &plugin.DataValidationError{Plugin: "subtraction", Err: err}
	}

	top, bottom, ok := asIntPair(data["operands"])
	if !ok {
		return nil, dataError("subtraction", "operands must be a pair of integers")
	}
	computed := top - bottom
	if raw, present := data["answer"]; present {
		answer, ok := asInt(raw)
		if !ok || answer != computed {
			return nil, dataError("subtraction", "answer does not match the difference of operands")
		}
	}

	return &plugin.Problem{
		SVG: render.VerticalProblem(top, bottom, "-", 0),
		Data: map[string]any{
			"operands": []int{top, bottom},
			"operator": "-",
			"answer":   computed,
		},
	}, nil
}
