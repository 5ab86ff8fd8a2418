// Package output defines the contract between the pipeline and
// document generators such as the PDF writer.
package output

import (
	"github.com/abhisek/mathtest/internal/layout"
	"github.com/abhisek/mathtest/internal/plugin"
)

// Test pairs one test's ordered problems with its paginated layout.
type Test struct {
	Problems []plugin.Problem
	Doc      *layout.Document
}

// Generator renders laid-out tests into a document at path. Generators
// must be idempotent for identical inputs and target path: generating
// twice overwrites with identical bytes.
type Generator interface {
	Generate(tests []Test, params layout.Params, path string) error
}
