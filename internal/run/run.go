// Package run sequences a worksheet job through its phases: plan the
// problem mix, generate or replay problems, then paginate. Phases run
// strictly in order on one goroutine; the first error aborts the job.
package run

import (
	"fmt"

	"github.com/abhisek/mathtest/internal/config"
	"github.com/abhisek/mathtest/internal/layout"
	"github.com/abhisek/mathtest/internal/output"
	"github.com/abhisek/mathtest/internal/planner"
	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/repro"
	"github.com/abhisek/mathtest/internal/svgdoc"
)

// Phase identifies where in the pipeline a job is, chiefly for error
// reporting.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseGenerating
	PhaseLayingOut
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseGenerating:
		return "generating"
	case PhaseLayingOut:
		return "laying out"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures one job. When Replay is set the request's seed and
// plan are ignored and every problem comes from the artifact.
type Options struct {
	Registry *plugin.Registry
	Configs  *config.Set
	Request  planner.Request
	Layout   layout.Params
	Replay   *repro.Artifact
}

// Result is a completed job: the seed the problems carry and every
// test, paginated and ready for a generator.
type Result struct {
	Seed  int64
	Tests []output.Test
}

// Run executes one job to completion.
func Run(opts Options) (*Result, error) {
	var tests [][]plugin.Problem
	seed := opts.Request.Seed

	if opts.Replay != nil {
		seed = opts.Replay.Seed
		replayed, err := repro.Replay(opts.Registry, opts.Replay)
		if err != nil {
			return nil, phaseError(PhaseGenerating, err)
		}
		tests = replayed
	} else {
		if err := opts.Request.Validate(); err != nil {
			return nil, phaseError(PhasePlanning, err)
		}
		tests = make([][]plugin.Problem, opts.Request.TestCount)
		for t := range tests {
			problems, err := planner.GenerateTest(opts.Registry, opts.Configs, opts.Request, t)
			if err != nil {
				return nil, phaseError(PhaseGenerating, fmt.Errorf("test %d: %w", t+1, err))
			}
			tests[t] = problems
		}
	}

	result := &Result{Seed: seed, Tests: make([]output.Test, len(tests))}
	for t, problems := range tests {
		doc, err := paginate(problems, opts.Layout)
		if err != nil {
			return nil, phaseError(PhaseLayingOut, fmt.Errorf("test %d: %w", t+1, err))
		}
		result.Tests[t] = output.Test{Problems: problems, Doc: doc}
	}
	return result, nil
}

// paginate measures each problem's visual and lays the test out.
func paginate(problems []plugin.Problem, params layout.Params) (*layout.Document, error) {
	visuals := make([]layout.Visual, len(problems))
	for i, problem := range problems {
		parsed, err := svgdoc.Parse(problem.SVG)
		if err != nil {
			return nil, fmt.Errorf("problem %d: %w", i+1, err)
		}
		visuals[i] = layout.Visual{Width: parsed.Width, Height: parsed.Height}
	}
	return layout.Paginate(visuals, params)
}

func phaseError(phase Phase, err error) error {
	return fmt.Errorf("%s: %w", phase, err)
}
