package problems

import (
	"errors"
	"math"
	"testing"

	"github.com/abhisek/mathtest/internal/plugin"
)

func clockConfig() plugin.Config {
	return plugin.Config{
		"minute-interval": 15,
		"accurate-hour":   false,
		"clock-12-hour":   true,
		"clock-24-hour":   false,
	}
}

func TestClockGenerate(t *testing.T) {
	p := Clock{}
	cfg := clockConfig()

	for seed := int64(0); seed < 100; seed++ {
		problem, err := p.Generate(cfg, seed)
		if err != nil {
			t.Fatalf("Generate(seed %d): %v", seed, err)
		}
		hour, _ := asInt(problem.Data["hour"])
		minute, _ := asInt(problem.Data["minute"])
		if hour < 1 || hour > 12 {
			t.Errorf("seed %d: hour = %d, want 1-12", seed, hour)
		}
		if minute%15 != 0 {
			t.Errorf("seed %d: minute = %d, want a multiple of 15", seed, minute)
		}
	}
}

func TestClock24HourRange(t *testing.T) {
	p := Clock{}
	cfg := clockConfig()
	cfg["clock-12-hour"] = false
	cfg["clock-24-hour"] = true

	sawAfternoon := false
	for seed := int64(0); seed < 200; seed++ {
		problem, err := p.Generate(cfg, seed)
		if err != nil {
			t.Fatal(err)
		}
		hour, _ := asInt(problem.Data["hour"])
		if hour < 0 || hour > 23 {
			t.Fatalf("hour = %d, want 0-23", hour)
		}
		if hour > 12 {
			sawAfternoon = true
		}
	}
	if !sawAfternoon {
		t.Error("24-hour dial never produced an hour above 12 in 200 seeds")
	}
}

func TestClockValidate(t *testing.T) {
	p := Clock{}
	tests := []struct {
		name    string
		mutate  func(plugin.Config)
		wantErr bool
	}{
		{"defaults", func(plugin.Config) {}, false},
		{"interval 5", func(c plugin.Config) { c["minute-interval"] = 5 }, false},
		{"interval 60", func(c plugin.Config) { c["minute-interval"] = 60 }, false},
		{"interval 7", func(c plugin.Config) { c["minute-interval"] = 7 }, true},
		{"both dials", func(c plugin.Config) { c["clock-24-hour"] = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clockConfig()
			tt.mutate(cfg)
			err := p.Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClockAnswerFormat(t *testing.T) {
	tests := []struct {
		hour   int
		minute int
		is24   bool
		want   string
	}{
		{7, 5, false, "7:05"},
		{12, 0, false, "12:00"},
		{7, 5, true, "07:05"},
		{0, 30, true, "00:30"},
		{23, 45, true, "23:45"},
	}
	for _, tt := range tests {
		got := formatClockAnswer(tt.hour, tt.minute, tt.is24)
		if got != tt.want {
			t.Errorf("formatClockAnswer(%d, %d, %v) = %q, want %q", tt.hour, tt.minute, tt.is24, got, tt.want)
		}
	}
}

func TestClockHandAngles(t *testing.T) {
	tests := []struct {
		hour     int
		minute   int
		is24     bool
		accurate bool
		want     float64
	}{
		{3, 0, false, false, 90},
		{6, 0, false, false, 180},
		{12, 0, false, false, 0},
		{3, 30, false, true, 105},
		{6, 0, true, false, 90},
		{18, 0, true, false, 270},
	}
	for _, tt := range tests {
		got := hourHandAngle(tt.hour, tt.minute, tt.is24, tt.accurate)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("hourHandAngle(%d, %d, %v, %v) = %g, want %g", tt.hour, tt.minute, tt.is24, tt.accurate, got, tt.want)
		}
	}

	if got := minuteHandAngle(15); got != 90 {
		t.Errorf("minuteHandAngle(15) = %g, want 90", got)
	}
	if got := minuteHandAngle(0); got != 0 {
		t.Errorf("minuteHandAngle(0) = %g, want 0", got)
	}
}

func TestClockFromData(t *testing.T) {
	p := Clock{}

	problem, err := p.FromData(map[string]any{
		"hour":            7,
		"minute":          30,
		"minute_interval": 30,
		"accurate_hour":   false,
		"is_24_hour":      false,
		"answer":          "7:30",
	})
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if problem.Data["answer"] != "7:30" {
		t.Errorf("answer = %v, want %q", problem.Data["answer"], "7:30")
	}
	if problem.SVG == "" {
		t.Error("empty SVG")
	}
}

func TestClockFromDataRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"misaligned minute", map[string]any{"hour": 7, "minute": 10, "minute_interval": 15}},
		{"hour 0 on 12-hour dial", map[string]any{"hour": 0, "minute": 0, "minute_interval": 15}},
		{"wrong answer", map[string]any{"hour": 7, "minute": 0, "minute_interval": 15, "answer": "8:00"}},
		{"wrong hour angle", map[string]any{"hour": 3, "minute": 0, "minute_interval": 15, "hour_hand_angle": 45.0}},
		{"bad interval", map[string]any{"hour": 7, "minute": 0, "minute_interval": 13}},
	}

	p := Clock{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.FromData(tt.data)
			var dataErr *plugin.DataValidationError
			if !errors.As(err, &dataErr) {
				t.Errorf("FromData error = %v, want *plugin.DataValidationError", err)
			}
		})
	}
}

func TestClockReplayMatchesGenerate(t *testing.T) {
	p := Clock{}
	cfg := clockConfig()

	generated, err := p.Generate(cfg, 321)
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := p.FromData(generated.Data)
	if err != nil {
		t.Fatalf("FromData(generated data): %v", err)
	}
	if replayed.SVG != generated.SVG {
		t.Error("replayed SVG differs from generated SVG")
	}
}
