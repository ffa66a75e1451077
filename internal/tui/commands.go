package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/tessera-shell/tessera/internal/config"
	pb "github.com/tessera-shell/tessera/proto"
)

const rpcTimeout = 5 * time.Second

func connectDaemonCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := config.LoadDaemonInfo()
		if err != nil || info == nil {
			return ErrorMsg{Err: errors.New("daemon not running")}
		}

		addr := fmt.Sprintf("%s:%d", info.Host, info.Port)
		conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to connect to daemon: %w", err)}
		}

		return DaemonConnectedMsg{Conn: conn}
	}
}

// watchTaskbarCmd opens the snapshot stream and forwards every snapshot to
// the program until ctx ends or the stream breaks.
func watchTaskbarCmd(ctx context.Context, conn *grpc.ClientConn, program *programRef) tea.Cmd {
	return func() tea.Msg {
		stream, err := pb.NewDockServiceClient(conn).WatchTaskbar(ctx, &emptypb.Empty{})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to watch taskbar: %w", err)}
		}

		go func() {
			for {
				tb, err := stream.Recv()
				if err != nil {
					if ctx.Err() == nil {
						program.Send(DaemonDisconnectedMsg{})
					}
					return
				}
				program.Send(TaskbarMsg{Taskbar: tb})
			}
		}()

		return nil
	}
}

func getMetricsCmd(conn *grpc.ClientConn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		reply, err := pb.NewBarServiceClient(conn).GetMetrics(ctx, &emptypb.Empty{})
		if err != nil {
			if isConnectionLost(err) {
				return DaemonDisconnectedMsg{}
			}
			return ErrorMsg{Err: fmt.Errorf("failed to get metrics: %w", err)}
		}
		return MetricsMsg{Reply: reply}
	}
}

func focusClientCmd(conn *grpc.ClientConn, address string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		if _, err := pb.NewDockServiceClient(conn).FocusClient(ctx, &pb.FocusRequest{Address: address}); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to focus %s: %w", address, err)}
		}
		return FocusedMsg{Address: address}
	}
}

func revealCmd(conn *grpc.ClientConn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		tb, err := pb.NewDockServiceClient(conn).Reveal(ctx, &emptypb.Empty{})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to reveal dock: %w", err)}
		}
		return TaskbarMsg{Taskbar: tb}
	}
}

func metricsTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return metricsTickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func reconnectTick() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return ReconnectMsg{}
	})
}

// isConnectionLost checks if a gRPC error indicates the server is gone.
func isConnectionLost(err error) bool {
	code := status.Code(err)
	return code == codes.Unavailable || code == codes.Canceled
}
