package cmd

import (
	"errors"
	"testing"

	"github.com/abhisek/mathtest/internal/layout"
)

func TestLayoutParamsPassesValuesThrough(t *testing.T) {
	flags := generateCmd.Flags()
	for key, value := range map[string]string{
		"columns": "0",
		"margin":  "-2",
		"title":   "Quiz",
	} {
		if err := flags.Set(key, value); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	defer func() {
		flags.Set("columns", "4")
		flags.Set("margin", "0.75")
		flags.Set("title", "Math Test")
	}()

	params := layoutParams(flags)
	if params.Columns != 0 {
		t.Errorf("Columns = %d, want 0 passed through", params.Columns)
	}
	if params.Margin != -2*layout.PointsPerInch {
		t.Errorf("Margin = %g, want %g passed through", params.Margin, -2*layout.PointsPerInch)
	}
	if params.Title != "Quiz" {
		t.Errorf("Title = %q, want %q", params.Title, "Quiz")
	}

	// The bad values surface as a LayoutError instead of being
	// silently replaced with defaults.
	_, err := layout.Paginate(nil, params)
	var layoutErr *layout.LayoutError
	if !errors.As(err, &layoutErr) {
		t.Errorf("Paginate error = %v, want *layout.LayoutError", err)
	}
}

func TestLayoutParamsDefaults(t *testing.T) {
	params := layoutParams(generateCmd.Flags())
	want := layout.DefaultParams()
	if params.Columns != want.Columns {
		t.Errorf("Columns = %d, want %d", params.Columns, want.Columns)
	}
	if params.Margin != want.Margin {
		t.Errorf("Margin = %g, want %g", params.Margin, want.Margin)
	}
	if !params.IncludeHeader {
		t.Error("IncludeHeader = false, want true by default")
	}
	if params.IncludeAnswers {
		t.Error("IncludeAnswers = true, want false by default")
	}
}
