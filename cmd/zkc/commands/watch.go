package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zkc/internal/adapters/watcher"
	"go.trai.ch/zkc/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [entries...]",
		Short: "Recompile circuits whenever their sources change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), args, app.WatchOptions{
				Strict:   strict,
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().Bool("strict", false, "Require the configured compiler version exactly")
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period before a batch of changes triggers a rebuild")
	return cmd
}
