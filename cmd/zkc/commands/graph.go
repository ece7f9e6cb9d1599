package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zkc/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [entries...]",
		Short: "Print the resolved dependencies of each entry",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Graph(cmd.Context(), args, app.GraphOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the graph as JSON")
	return cmd
}
