package problems

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/render"
)

// maxDivisionAttempts bounds resampling when exact quotients are
// required; ranges that cannot produce one fail instead of spinning.
const maxDivisionAttempts = 10000

// Division generates vertically stacked division problems. Unless
// allow-remainders is set, dividend/divisor pairs are resampled until
// the quotient is exact.
type Division struct{}

var divisionSchema = &plugin.Schema{
	Name: "division-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dividend":        map[string]any{"type": "integer"},
			"divisor":         map[string]any{"type": "integer"},
			"operator":        map[string]any{"const": "÷"},
			"quotient":        map[string]any{"type": "integer"},
			"remainder":       map[string]any{"type": "integer"},
			"answer":          map[string]any{"type": "string"},
			"min_digit_chars": map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []any{"dividend", "divisor"},
		"additionalProperties": false,
	},
}

func (Division) Name() string { return "division" }

func (Division) Parameters() []plugin.ParameterDefinition {
	return []plugin.ParameterDefinition{
		{
			Name:        "min-dividend",
			Kind:        plugin.KindInt,
			Default:     1,
			Description: "Minimum dividend value (inclusive) for random division problems.",
		},
		{
			Name:        "max-dividend",
			Kind:        plugin.KindInt,
			Default:     100,
			Description: "Maximum dividend value (inclusive) for random division problems.",
		},
		{
			Name:        "min-divisor",
			Kind:        plugin.KindInt,
			Default:     1,
			Description: "Minimum divisor value (inclusive) for random division problems.",
		},
		{
			Name:        "max-divisor",
			Kind:        plugin.KindInt,
			Default:     10,
			Description: "Maximum divisor value (inclusive) for random division problems.",
		},
		{
			Name:        "allow-remainders",
			Kind:        plugin.KindBool,
			Default:     false,
			Description: "Allow division problems whose quotient has a remainder.",
		},
	}
}

func (Division) Validate(cfg plugin.Config) error {
	if cfg.Int("min-dividend") > cfg.Int("max-dividend") {
		return &plugin.ValidationError{
			Subject: "division",
			Msg:     "min-dividend must be less than or equal to max-dividend",
		}
	}
	if cfg.Int("min-divisor") > cfg.Int("max-divisor") {
		return &plugin.ValidationError{
			Subject: "division",
			Msg:     "min-divisor must be less than or equal to max-divisor",
		}
	}
	if cfg.Int("min-divisor") <= 0 {
		return &plugin.ValidationError{
			Subject: "division",
			Msg:     "min-divisor must be greater than 0",
		}
	}
	return nil
}

func (Division) Generate(cfg plugin.Config, seed int64) (*plugin.Problem, error) {
	rng := rand.New(rand.NewSource(seed))
	minDividend, maxDividend := cfg.Int("min-dividend"), cfg.Int("max-dividend")
	minDivisor, maxDivisor := cfg.Int("min-divisor"), cfg.Int("max-divisor")
	allowRemainders := cfg.Bool("allow-remainders")

	var dividend, divisor int
	found := false
	for attempt := 0; attempt < maxDivisionAttempts; attempt++ {
		dividend = randRange(rng, minDividend, maxDividend)
		divisor = randRange(rng, minDivisor, maxDivisor)
		if allowRemainders || dividend%divisor == 0 {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("division: no exact quotient in dividend range [%d, %d] and divisor range [%d, %d]",
			minDividend, maxDividend, minDivisor, maxDivisor)
	}

	quotient := dividend / divisor
	remainder := dividend % divisor
	minChars := render.MinDigitChars(minDividend, maxDividend, minDivisor, maxDivisor)

	return &plugin.Problem{
		SVG: render.VerticalProblem(dividend, divisor, "÷", minChars),
		Data: map[string]any{
			"dividend":        dividend,
			"divisor":         divisor,
			"operator":        "÷",
			"quotient":        quotient,
			"remainder":       remainder,
			"answer":          formatDivisionAnswer(quotient, remainder),
			"min_digit_chars": minChars,
		},
	}, nil
}

func (Division) FromData(data map[string]any) (*plugin.Problem, error) {
	if err := plugin.ValidateData(divisionSchema, data); err != nil {
		return nil, &plugin.DataValidationError{Plugin: "division", Err: err}
	}

	dividend, _ := asInt(data["dividend"])
	divisor, _ := asInt(data["divisor"])
	if divisor == 0 {
		return nil, dataError("division", "divisor cannot be zero")
	}

	quotient := dividend / divisor
	remainder := dividend % divisor
	if raw, present := data["quotient"]; present {
		if v, ok := asInt(raw); !ok || v != quotient {
			return nil, dataError("division", "quotient does not match dividend/divisor")
		}
	}
	if raw, present := data["remainder"]; present {
		if v, ok := asInt(raw); !ok || v != remainder {
			return nil, dataError("division", "remainder does not match dividend/divisor")
		}
	}
	expectedAnswer := formatDivisionAnswer(quotient, remainder)
	if raw, present := data["answer"]; present {
		if v, ok := asString(raw); !ok || v != expectedAnswer {
			return nil, dataError("division", "answer does not match dividend/divisor")
		}
	}

	minChars := render.MinDigitChars(dividend, divisor)
	if raw, present := data["min_digit_chars"]; present {
		if v, ok := asInt(raw); ok {
			minChars = v
		}
	}

	return &plugin.Problem{
		SVG: render.VerticalProblem(dividend, divisor, "÷", minChars),
		Data: map[string]any{
			"dividend":        dividend,
			"divisor":         divisor,
			"operator":        "÷",
			"quotient":        quotient,
			"remainder":       remainder,
			"answer":          expectedAnswer,
			"min_digit_chars": minChars,
		},
	}, nil
}

func formatDivisionAnswer(quotient, remainder int) string {
	if remainder == 0 {
		return fmt.Sprintf("%d", quotient)
	}
	return fmt.Sprintf("%d r%d", quotient, remainder)
}
