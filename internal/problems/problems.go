// Package problems implements the built-in problem-type plugins:
// addition, subtraction, multiplication, division and clock reading.
package problems

import "github.com/abhisek/mathtest/internal/plugin"

// RegisterBuiltins adds every built-in plugin to the registry. The
// registration order is the order plugins are listed to users.
func RegisterBuiltins(reg *plugin.Registry) {
	reg.Register(Addition{})
	reg.Register(Subtraction{})
	reg.Register(Multiplication{})
	reg.Register(Division{})
	reg.Register(Clock{})
}
