// Package repro encodes and decodes the structured reproduction
// artifact: every problem's {type, data} pair plus the global seed,
// never the rendered visual. Replaying the artifact reconstructs the
// same worksheet through each plugin's deterministic replay entry
// point, keeping artifacts independent of rendering changes.
package repro

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/mathtest/internal/fileutil"
	"github.com/abhisek/mathtest/internal/plugin"
)

// SerializedProblem is one artifact entry: the plugin that produced
// the problem and its structured data (always including "answer").
type SerializedProblem struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Artifact is the persisted reproduction document: the global seed the
// run used and, per test, the ordered problem entries.
type Artifact struct {
	Seed  int64                 `json:"seed"`
	Tests [][]SerializedProblem `json:"tests"`
}

// Encode builds an artifact from generated tests.
func Encode(seed int64, tests [][]plugin.Problem) (*Artifact, error) {
	artifact := &Artifact{Seed: seed, Tests: make([][]SerializedProblem, len(tests))}
	for t, problems := range tests {
		entries := make([]SerializedProblem, len(problems))
		for i, problem := range problems {
			if problem.Type == "" {
				return nil, fmt.Errorf("test %d, problem %d: missing plugin type", t+1, i+1)
			}
			if _, ok := problem.Data["answer"]; !ok {
				return nil, fmt.Errorf("test %d, problem %d: data missing answer", t+1, i+1)
			}
			entries[i] = SerializedProblem{Type: problem.Type, Data: problem.Data}
		}
		artifact.Tests[t] = entries
	}
	return artifact, nil
}

// Replay reconstructs every test's problems from the artifact through
// each plugin's replay entry point. No plugin's random path is invoked.
func Replay(reg *plugin.Registry, artifact *Artifact) ([][]plugin.Problem, error) {
	tests := make([][]plugin.Problem, len(artifact.Tests))
	for t, entries := range artifact.Tests {
		problems := make([]plugin.Problem, len(entries))
		for i, entry := range entries {
			p, err := reg.Get(entry.Type)
			if err != nil {
				return nil, fmt.Errorf("test %d, problem %d: %w", t+1, i+1, err)
			}
			problem, err := p.FromData(entry.Data)
			if err != nil {
				return nil, fmt.Errorf("test %d, problem %d: %w", t+1, i+1, err)
			}
			problem.Type = entry.Type
			problems[i] = *problem
		}
		tests[t] = problems
	}
	return tests, nil
}

// Marshal renders the artifact as stable, human-readable JSON. Map
// keys serialize sorted, so identical runs produce identical bytes.
func Marshal(artifact *Artifact) ([]byte, error) {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return append(data, '\n'), nil
}

// Write persists the artifact atomically.
func Write(path string, artifact *Artifact) error {
	data, err := Marshal(artifact)
	if err != nil {
		return err
	}
	return fileutil.WriteFile(path, data, 0o644)
}

// Read loads an artifact from disk.
func Read(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return &artifact, nil
}
