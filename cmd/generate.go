package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/mathtest/internal/config"
	"github.com/abhisek/mathtest/internal/layout"
	"github.com/abhisek/mathtest/internal/output/pdf"
	"github.com/abhisek/mathtest/internal/planner"
	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/problems"
	"github.com/abhisek/mathtest/internal/repro"
	"github.com/abhisek/mathtest/internal/run"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate worksheets as PDF and/or a JSON reproduction file",
	Long: `Generate builds one or more tests from the enabled problem plugins.

Each run is reproducible: the seed (given or generated) fully determines
the problems, and --json-out records them so --json-in can rebuild the
same worksheet later without any random generation.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringArrayP("plugin", "p", nil, "Problem plugin to enable (repeatable)")
	f.IntP("problems-per-test", "n", 20, "Number of problems per test")
	f.IntP("tests", "t", 1, "Number of tests to generate")
	f.Int64("seed", 0, "Seed for deterministic generation (random when omitted)")
	f.String("config", "", "Path to a YAML config file with common/plugins overrides")
	f.StringArray("set", nil, "Parameter override, key=value or plugin.key=value (repeatable)")
	f.String("json-in", "", "Reproduce a worksheet from a JSON file instead of generating")
	f.String("json-out", "", "Write the JSON reproduction file to this path")
	f.StringArrayP("output", "o", nil, "Write the worksheet PDF to this path (repeatable)")
	f.Bool("answer-key", false, "Append an answer key to the PDF")
	f.Int("columns", 4, "Problem columns per page")
	f.String("title", "Math Test", "Worksheet title")
	f.Float64("margin", 0.75, "Page margin in inches")
	f.Bool("no-header", false, "Omit the Name/Date header fields")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	pdfPaths, _ := flags.GetStringArray("output")
	jsonOut, _ := flags.GetString("json-out")
	if len(pdfPaths) == 0 && jsonOut == "" {
		return fmt.Errorf("nothing to produce: set --output and/or --json-out")
	}

	jsonIn, _ := flags.GetString("json-in")
	reg := plugin.NewRegistry()
	problems.RegisterBuiltins(reg)

	opts := run.Options{Registry: reg}

	if jsonIn != "" {
		artifact, err := repro.Read(jsonIn)
		if err != nil {
			return err
		}
		opts.Replay = artifact
		fmt.Fprintf(os.Stderr, "Reproducing %d test(s) from %s\n", len(artifact.Tests), jsonIn)
	} else {
		enabled, _ := flags.GetStringArray("plugin")
		if len(enabled) == 0 {
			return fmt.Errorf("no plugins enabled: pass --plugin (available: %s)", strings.Join(reg.Names(), ", "))
		}

		var layers []config.Layer
		if path, _ := flags.GetString("config"); path != "" {
			layer, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			layers = append(layers, layer)
		}
		assignments, _ := flags.GetStringArray("set")
		overrides, err := config.ParseOverrides(assignments)
		if err != nil {
			return err
		}
		if err := checkOverrideScopes(overrides, enabled); err != nil {
			return err
		}
		layers = append(layers, overrides)

		cfgs, err := config.Merge(reg, enabled, layers...)
		if err != nil {
			return err
		}

		seed, _ := flags.GetInt64("seed")
		if !flags.Changed("seed") {
			seed, err = planner.NewGlobalSeed()
			if err != nil {
				return err
			}
		}

		perTest, _ := flags.GetInt("problems-per-test")
		testCount, _ := flags.GetInt("tests")
		opts.Configs = cfgs
		opts.Request = planner.Request{
			ProblemsPerTest: perTest,
			TestCount:       testCount,
			Plugins:         enabled,
			Seed:            seed,
		}
		fmt.Fprintf(os.Stderr, "Generating %d test(s), %d problem(s) each, seed %d\n", testCount, perTest, seed)
	}

	opts.Layout = layoutParams(flags)

	result, err := run.Run(opts)
	if err != nil {
		return err
	}

	if jsonOut != "" {
		tests := make([][]plugin.Problem, len(result.Tests))
		for i, test := range result.Tests {
			tests[i] = test.Problems
		}
		artifact, err := repro.Encode(result.Seed, tests)
		if err != nil {
			return err
		}
		if err := repro.Write(jsonOut, artifact); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote", jsonOut)
	}

	generator := pdf.New()
	for _, path := range pdfPaths {
		if err := generator.Generate(result.Tests, opts.Layout, path); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote", path)
	}
	return nil
}

// checkOverrideScopes rejects --set overrides scoped to a plugin that
// is not enabled; unlike config files, CLI overrides are per-run intent
// and a mismatch is a typo.
func checkOverrideScopes(overrides config.Layer, enabled []string) error {
	enabledSet := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		enabledSet[name] = true
	}
	for pluginName := range overrides.Plugins {
		if !enabledSet[pluginName] {
			return &config.ConfigError{
				Msg: fmt.Sprintf("override targets plugin %q, which is not enabled", pluginName),
			}
		}
	}
	return nil
}

// layoutParams maps the layout flags onto layout.Params verbatim.
// Invalid geometry (zero columns, negative margin) is passed through
// so layout.Paginate rejects it with a LayoutError instead of the CLI
// silently substituting a default.
func layoutParams(flags *pflag.FlagSet) layout.Params {
	params := layout.DefaultParams()
	params.Columns, _ = flags.GetInt("columns")
	params.Title, _ = flags.GetString("title")
	margin, _ := flags.GetFloat64("margin")
	params.Margin = margin * layout.PointsPerInch
	noHeader, _ := flags.GetBool("no-header")
	params.IncludeHeader = !noHeader
	params.IncludeAnswers, _ = flags.GetBool("answer-key")
	return params
}
