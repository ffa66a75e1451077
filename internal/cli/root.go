// Package cli implements the tessera CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessera-shell/tessera/internal/logging"
)

var (
	flagFormat string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Control the tessera desktop shell daemon",
	Long: `Tessera keeps a dock taskbar in sync with Hyprland's window list,
resolves application icons and samples the bar's system gauges.

The tessera command talks to the tesserad daemon over gRPC.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logging.Setup(logging.Options{Level: "warn", Debug: flagDebug})
		return err
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "auto", "output format: auto, yaml or json")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(dockCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(taskbarCmd)
	rootCmd.AddCommand(versionCmd)
}
