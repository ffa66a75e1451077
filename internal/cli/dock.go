package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessera-shell/tessera/internal/tui"
)

var dockCmd = &cobra.Command{
	Use:   "dock",
	Short: "Open the interactive dock viewer",
	Long: `Open a terminal view of the dock: the live entry list, the bar gauges
and keys to focus a window or reveal the dock. Starts the daemon if needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := EnsureDaemon(); err != nil {
			return err
		}
		return tui.Run()
	},
}
