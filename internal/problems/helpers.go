package problems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/abhisek/mathtest/internal/plugin"
)

// randRange returns a value in [min, max] drawn from rng.
func randRange(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// dataError wraps a replay-data consistency failure.
func dataError(pluginName, format string, args ...any) *plugin.DataValidationError {
	return &plugin.DataValidationError{
		Plugin: pluginName,
		Err:    fmt.Errorf(format, args...),
	}
}

// asInt reads an integer from replay data, accepting the float64 form
// JSON decoding produces.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asIntPair reads a two-element integer slice from replay data, in
// either the decoded-JSON form or the native form a generator emits.
func asIntPair(v any) (int, int, bool) {
	var items []any
	switch s := v.(type) {
	case []any:
		items = s
	case []int:
		items = []any{}
		for _, n := range s {
			items = append(items, n)
		}
	}
	if len(items) != 2 {
		return 0, 0, false
	}
	a, ok := asInt(items[0])
	if !ok {
		return 0, 0, false
	}
	b, ok := asInt(items[1])
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}
