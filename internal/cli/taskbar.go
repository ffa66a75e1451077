package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/tessera-shell/tessera/proto"
)

var flagWatch bool

var taskbarCmd = &cobra.Command{
	Use:     "taskbar",
	Aliases: []string{"tb"},
	Short:   "Show the dock's taskbar entries",
	Long: `Show the dock's ordered taskbar entries as the daemon currently sees them.

Entries that are playing their exit transition are listed with visible: false.`,
	RunE: runTaskbar,
}

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Force-show the dock, finishing pending removals",
	RunE:  runReveal,
}

var focusCmd = &cobra.Command{
	Use:   "focus <address>",
	Short: "Focus a window by address",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocus,
}

func init() {
	taskbarCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "stream updates until interrupted")
}

func runTaskbar(cmd *cobra.Command, args []string) error {
	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()
	client := pb.NewDockServiceClient(conn)

	if !flagWatch {
		ctx, cancel := rpcContext()
		defer cancel()
		tb, err := client.GetTaskbar(ctx, &emptypb.Empty{})
		if err != nil {
			return fmt.Errorf("failed to get taskbar: %w", err)
		}
		return printValue(cmd.OutOrStdout(), tb)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := client.WatchTaskbar(ctx, &emptypb.Empty{})
	if err != nil {
		return fmt.Errorf("failed to watch taskbar: %w", err)
	}
	for {
		tb, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("taskbar stream: %w", err)
		}
		if err := printValue(cmd.OutOrStdout(), tb); err != nil {
			return err
		}
	}
}

func runReveal(cmd *cobra.Command, args []string) error {
	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	tb, err := pb.NewDockServiceClient(conn).Reveal(ctx, &emptypb.Empty{})
	if err != nil {
		return fmt.Errorf("failed to reveal dock: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dock revealed, %d entries.\n", len(tb.Entries))
	return nil
}

func runFocus(cmd *cobra.Command, args []string) error {
	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	if _, err := pb.NewDockServiceClient(conn).FocusClient(ctx, &pb.FocusRequest{Address: args[0]}); err != nil {
		return fmt.Errorf("failed to focus %s: %w", args[0], err)
	}
	return nil
}
