// Package planner decides how many problems each enabled plugin
// contributes per test, in what interleaved order, and drives the
// plugins to produce them.
package planner

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathtest/internal/config"
	"github.com/abhisek/mathtest/internal/plugin"
)

// Request describes one worksheet-generation run.
type Request struct {
	ProblemsPerTest int
	TestCount       int
	Plugins         []string // enable order; fixed policy for remainder assignment
	Seed            int64
}

// Validate checks request-level constraints before any generation.
func (r Request) Validate() error {
	if r.ProblemsPerTest < 0 {
		return &plugin.ValidationError{Subject: "request", Msg: "problems-per-test cannot be negative"}
	}
	if r.TestCount < 1 {
		return &plugin.ValidationError{Subject: "request", Msg: "test count must be at least 1"}
	}
	if len(r.Plugins) == 0 && r.ProblemsPerTest > 0 {
		return &plugin.ValidationError{Subject: "request", Msg: "at least one plugin must be enabled"}
	}
	seen := make(map[string]bool, len(r.Plugins))
	for _, name := range r.Plugins {
		if seen[name] {
			return &plugin.ValidationError{Subject: "request", Msg: fmt.Sprintf("plugin %q enabled twice", name)}
		}
		seen[name] = true
	}
	return nil
}

// Counts splits total problems over k plugins as evenly as possible:
// floor(total/k) each, with the remainder going to the first
// (total mod k) plugins in enable order.
func Counts(total, k int) []int {
	counts := make([]int, k)
	if k == 0 {
		return counts
	}
	base, remainder := total/k, total%k
	for i := range counts {
		counts[i] = base
		if i < remainder {
			counts[i]++
		}
	}
	return counts
}

// Plan returns the plugin filling each slot of the given test. The
// slot order is a shuffle driven by the test sub-seed so one plugin
// does not monopolize consecutive slots.
func Plan(req Request, test int) []string {
	counts := Counts(req.ProblemsPerTest, len(req.Plugins))
	slots := make([]string, 0, req.ProblemsPerTest)
	for i, name := range req.Plugins {
		for n := 0; n < counts[i]; n++ {
			slots = append(slots, name)
		}
	}

	rng := rand.New(rand.NewSource(TestSeed(req.Seed, test)))
	rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	return slots
}

// GenerateTest produces the ordered problems for one test in random
// mode. Each slot's plugin receives the merged configuration and a
// sub-seed derived purely from (global seed, test, slot).
func GenerateTest(reg *plugin.Registry, cfgs *config.Set, req Request, test int) ([]plugin.Problem, error) {
	slots := Plan(req, test)
	problems := make([]plugin.Problem, 0, len(slots))
	for slot, name := range slots {
		p, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		problem, err := p.Generate(cfgs.Plugin(name), SlotSeed(req.Seed, test, slot))
		if err != nil {
			return nil, fmt.Errorf("plugin %q, slot %d: %w", name, slot, err)
		}
		if _, ok := problem.Data["answer"]; !ok {
			return nil, fmt.Errorf("plugin %q, slot %d: problem data missing answer", name, slot)
		}
		problem.Type = name
		problems = append(problems, *problem)
	}
	return problems, nil
}
