package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/tessera-shell/tessera/internal/config"
	pb "github.com/tessera-shell/tessera/proto"
)

var flagNoTray bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the tessera daemon",
	Long:  `Manage the tesserad daemon process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonStartCmd.Flags().BoolVar(&flagNoTray, "no-tray", false, "run without the system tray icon")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Fprintf(out, "Daemon is already running (PID %d, port %d).\n", info.PID, info.Port)
		return nil
	}

	// Clean up stale daemon info if it exists
	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	fmt.Fprint(out, "Starting daemon...")
	if startErr := startDaemon(flagNoTray); startErr != nil {
		fmt.Fprintln(out)
		return startErr
	}

	_, freshInfo, err := GetDaemonStatus()
	if err != nil || freshInfo == nil {
		fmt.Fprintln(out, " started.")
		return nil
	}

	fmt.Fprintf(out, " %s (PID %d, port %d).\n", styleSuccess.Render("started"), freshInfo.PID, freshInfo.Port)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Fprintln(out, "Daemon is running.")
	fmt.Fprintf(out, "  %s       %s\n", styleLabel.Render("Host:"), info.Host)
	fmt.Fprintf(out, "  %s       %d\n", styleLabel.Render("Port:"), info.Port)
	fmt.Fprintf(out, "  %s        %d\n", styleLabel.Render("PID:"), info.PID)
	fmt.Fprintf(out, "  %s     %s\n", styleLabel.Render("Uptime:"), uptime)
	fmt.Fprintf(out, "  %s   %s\n", styleLabel.Render("Instance:"), info.InstanceID)

	conn, err := connectDaemon()
	if err != nil {
		return nil // Non-fatal: just skip live counters
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	st, err := pb.NewDaemonServiceClient(conn).GetStatus(ctx, &emptypb.Empty{})
	if err != nil {
		fmt.Fprintf(out, "\n%s %v\n", styleWarning.Render("Daemon unreachable:"), err)
		return nil
	}

	fmt.Fprintf(out, "\n  %s    %d\n", styleLabel.Render("Windows:"), st.Clients)
	fmt.Fprintf(out, "  %s    %d\n", styleLabel.Render("Taskbar:"), st.Entries)
	fmt.Fprintf(out, "  %s   %d\n", styleLabel.Render("Watchers:"), st.Watchers)
	fmt.Fprintf(out, "  %s     %.1f MiB\n", styleLabel.Render("Memory:"), float64(st.RSSBytes)/(1<<20))
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	// Ask politely over gRPC, fall back to SIGTERM.
	if err := requestShutdown(); err != nil {
		process, err := os.FindProcess(info.PID)
		if err != nil {
			return fmt.Errorf("failed to find daemon process: %w", err)
		}
		if err := process.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("failed to send stop signal: %w", err)
		}
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			fmt.Fprintln(out, "Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}

func requestShutdown() error {
	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	_, err = pb.NewDaemonServiceClient(conn).Shutdown(ctx, &emptypb.Empty{})
	return err
}
