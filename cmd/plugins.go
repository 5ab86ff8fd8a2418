package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtest/internal/plugin"
	"github.com/abhisek/mathtest/internal/problems"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List available problem plugins and their parameters",
	Run: func(cmd *cobra.Command, args []string) {
		reg := plugin.NewRegistry()
		problems.RegisterBuiltins(reg)

		for _, name := range reg.Names() {
			p, _ := reg.Get(name)
			fmt.Println(name)
			for _, def := range p.Parameters() {
				fmt.Printf("  %-18s %-6s default=%-6v %s\n", def.Name, def.Kind, def.Default, def.Description)
			}
		}
	},
}
