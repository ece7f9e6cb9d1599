package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zkc/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove caches and compiled artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			compilers, _ := cmd.Flags().GetBool("compilers")
			all, _ := cmd.Flags().GetBool("all")

			var opts app.CleanOptions
			switch {
			case all:
				opts = app.CleanOptions{Workspace: true, Compilers: true, Artifacts: true}
			case compilers:
				opts.Compilers = true
			default:
				// Default behavior: clean the project workspace caches
				opts.Workspace = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("compilers", "c", false, "Clean the downloaded compiler cache")
	cmd.Flags().BoolP("all", "a", false, "Clean workspace caches, compiled artifacts and compilers")

	return cmd
}
