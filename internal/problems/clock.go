package problems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/render"
)

const angleTolerance = 1e-6

var allowedMinuteIntervals = []int{5, 15, 30, 60}

// Clock generates analog clock-reading problems: the worksheet shows a
// dial and the student writes the time.
type Clock struct{}

var clockSchema = &plugin.Schema{
	Name: "clock-data",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hour":              map[string]any{"type": "integer", "minimum": 0, "maximum": 23},
			"minute":            map[string]any{"type": "integer", "minimum": 0, "maximum": 59},
			"minute_interval":   map[string]any{"enum": []any{5, 15, 30, 60}},
			"accurate_hour":     map[string]any{"type": "boolean"},
			"is_24_hour":        map[string]any{"type": "boolean"},
			"answer":            map[string]any{"type": "string"},
			"hour_hand_angle":   map[string]any{"type": "number"},
			"minute_hand_angle": map[string]any{"type": "number"},
		},
		"required":             []any{"hour", "minute", "minute_interval"},
		"additionalProperties": false,
	},
}

func (Clock) Name() string { return "clock" }

func (Clock) Parameters() []plugin.ParameterDefinition {
	return []plugin.ParameterDefinition{
		{
			Name:        "minute-interval",
			Kind:        plugin.KindInt,
			Default:     15,
			Description: "Minute increments for random selection (5, 15, 30, or 60).",
		},
		{
			Name:        "accurate-hour",
			Kind:        plugin.KindBool,
			Default:     false,
			Description: "Move the hour hand toward the next hour based on the minutes.",
		},
		{
			Name:        "clock-12-hour",
			Kind:        plugin.KindBool,
			Default:     true,
			Description: "Render a 12-hour dial (1-12).",
		},
		{
			Name:        "clock-24-hour",
			Kind:        plugin.KindBool,
			Default:     false,
			Description: "Render a 24-hour dial (0-23).",
		},
	}
}

func (Clock) Validate(cfg plugin.Config) error {
	if !validMinuteInterval(cfg.Int("minute-interval")) {
		return &plugin.ValidationError{
			Subject: "clock",
			Msg:     "minute-interval must be one of 5, 15, 30, or 60",
		}
	}
	if cfg.Bool("clock-12-hour") && cfg.Bool("clock-24-hour") {
		return &plugin.ValidationError{
			Subject: "clock",
			Msg:     "clock-12-hour and clock-24-hour cannot both be true",
		}
	}
	return nil
}

func (Clock) Generate(cfg plugin.Config, seed int64) (*plugin.Problem, error) {
	rng := rand.New(rand.NewSource(seed))
	interval := cfg.Int("minute-interval")
	accurate := cfg.Bool("accurate-hour")
	is24 := cfg.Bool("clock-24-hour") || !cfg.Bool("clock-12-hour")

	var hour int
	if is24 {
		hour = rng.Intn(24)
	} else {
		hour = 1 + rng.Intn(12)
	}
	minute := 0
	if interval != 60 {
		minute = rng.Intn(60/interval) * interval
	}

	hourAngle := hourHandAngle(hour, minute, is24, accurate)
	minuteAngle := minuteHandAngle(minute)

	return &plugin.Problem{
		SVG: render.ClockFace(hourAngle, minuteAngle, is24),
		Data: map[string]any{
			"hour":              hour,
			"minute":            minute,
			"minute_interval":   interval,
			"accurate_hour":     accurate,
			"is_24_hour":        is24,
			"answer":            formatClockAnswer(hour, minute, is24),
			"hour_hand_angle":   hourAngle,
			"minute_hand_angle": minuteAngle,
		},
	}, nil
}

func (Clock) FromData(data map[string]any) (*plugin.Problem, error) {
	if err := plugin.ValidateData(clockSchema, data); err != nil {
		return nil, &plugin.DataValidationError{Plugin: "clock", Err: err}
	}

	hour, _ := asInt(data["hour"])
	minute, _ := asInt(data["minute"])
	interval, _ := asInt(data["minute_interval"])
	accurate, _ := asBool(data["accurate_hour"])
	is24, _ := asBool(data["is_24_hour"])

	if minute%interval != 0 {
		return nil, dataError("clock", "minute must align with the configured minute interval")
	}
	if is24 {
		if hour < 0 || hour > 23 {
			return nil, dataError("clock", "hour must be between 0 and 23 for 24-hour clocks")
		}
	} else if hour < 1 || hour > 12 {
		return nil, dataError("clock", "hour must be between 1 and 12 for 12-hour clocks")
	}

	answer := formatClockAnswer(hour, minute, is24)
	if raw, present := data["answer"]; present {
		if v, ok := asString(raw); !ok || v != answer {
			return nil, dataError("clock", "answer does not match hour/minute values")
		}
	}

	hourAngle := hourHandAngle(hour, minute, is24, accurate)
	if raw, present := data["hour_hand_angle"]; present {
		if v, ok := asFloat(raw); !ok || math.Abs(v-hourAngle) > angleTolerance {
			return nil, dataError("clock", "hour_hand_angle does not match computed value")
		}
	}
	minuteAngle := minuteHandAngle(minute)
	if raw, present := data["minute_hand_angle"]; present {
		if v, ok := asFloat(raw); !ok || math.Abs(v-minuteAngle) > angleTolerance {
			return nil, dataError("clock", "minute_hand_angle does not match computed value")
		}
	}

	return &plugin.Problem{
		SVG: render.ClockFace(hourAngle, minuteAngle, is24),
		Data: map[string]any{
			"hour":              hour,
			"minute":            minute,
			"minute_interval":   interval,
			"accurate_hour":     accurate,
			"is_24_hour":        is24,
			"answer":            answer,
			"hour_hand_angle":   hourAngle,
			"minute_hand_angle": minuteAngle,
		},
	}, nil
}

func validMinuteInterval(v int) bool {
	for _, allowed := range allowedMinuteIntervals {
		if v == allowed {
			return true
		}
	}
	return false
}

// formatClockAnswer renders the expected time in standard notation:
// zero-padded 24-hour ("07:05") or unpadded 12-hour ("7:05").
func formatClockAnswer(hour, minute int, is24Hour bool) string {
	if is24Hour {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// hourHandAngle is the hour hand's angle clockwise from 12 o'clock.
// With accurate set, the hand advances between numbers with the minutes.
func hourHandAngle(hour, minute int, is24Hour, accurate bool) float64 {
	step := 360.0 / 12.0
	base := hour % 12
	if is24Hour {
		step = 360.0 / 24.0
		base = hour % 24
	}
	angle := float64(base) * step
	if accurate {
		angle += float64(minute) / 60.0 * step
	}
	return angle
}

func minuteHandAngle(minute int) float64 {
	return float64(minute%60) * 6.0
}
