// Package cmd implements the tesserad command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/daemon"
	"github.com/tessera-shell/tessera/internal/daemon/server"
	"github.com/tessera-shell/tessera/internal/daemon/tray"
	"github.com/tessera-shell/tessera/internal/hypr"
	"github.com/tessera-shell/tessera/internal/logging"
)

var (
	flagNoTray bool
	flagPort   int
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "tesserad",
	Short: "Tessera shell daemon",
	Long: `tesserad keeps the dock taskbar in sync with Hyprland, resolves icons,
samples the bar gauges and serves all of it over gRPC on localhost.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDaemon,
}

// Execute runs the daemon command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&flagNoTray, "no-tray", false, "run without the system tray icon")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "port to listen on (0 for dynamic allocation)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalLogsDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	logFile, err := config.DaemonLogFile()
	if err != nil {
		return err
	}
	closer, err := logging.Setup(logging.Options{Level: settings.LogLevel, Debug: flagDebug, File: logFile})
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logging.Component("daemon")

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	paths, err := hypr.DefaultPaths()
	if errors.Is(err, hypr.ErrNotRunning) {
		log.Warn().Err(err).Msg("taskbar will stay empty until restarted inside Hyprland")
	} else if err != nil {
		return err
	}

	d, err := daemon.New(daemon.Options{
		Settings:     settings,
		Hypr:         paths,
		Port:         flagPort,
		KeepLogLevel: flagDebug,
	})
	if err != nil {
		return err
	}

	if flagNoTray {
		log.Info().Msg("running without system tray")
		return d.Run(context.Background())
	}
	return runWithTray(d)
}

// runWithTray runs the daemon beside the system tray. systray.Run must
// occupy the main goroutine, so the daemon runs on its own and quits the
// tray when it ends.
func runWithTray(d *daemon.Daemon) error {
	log := logging.Component("daemon")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	onStart := func() {
		go func() {
			done <- d.Run(ctx)
			tray.Quit()
		}()
		go mirrorTaskbar(ctx, d)
	}
	onExit := func() {
		cancel()
	}

	tray.Run(server.NewTrayState(d.Server()), onStart, onExit)

	err := <-done
	if err != nil {
		log.Error().Err(err).Msg("daemon failed")
	}
	fmt.Fprintln(os.Stderr, "Daemon stopped")
	return err
}

// mirrorTaskbar keeps the tray's window slots in step with the dock.
func mirrorTaskbar(ctx context.Context, d *daemon.Daemon) {
	updates, cancel := d.Dock().Watch()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			tray.UpdateWindows(server.WindowsFrom(snap))
		}
	}
}
