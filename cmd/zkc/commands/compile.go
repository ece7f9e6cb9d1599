package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zkc/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [entries...]",
		Short: "Compile circuits whose sources or dependencies changed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			strict, _ := cmd.Flags().GetBool("strict")
			asJSON, _ := cmd.Flags().GetBool("json")

			if asJSON {
				c.app.SetOutputMode("json")
			}

			return c.app.Compile(cmd.Context(), args, app.CompileOptions{
				Force:  force,
				Strict: strict,
				JSON:   asJSON,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Recompile every entry regardless of the change cache")
	cmd.Flags().Bool("strict", false, "Require the configured compiler version exactly")
	cmd.Flags().Bool("json", false, "Print a JSON report and log as JSON lines")
	return cmd
}
