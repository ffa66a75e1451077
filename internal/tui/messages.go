package tui

import (
	"google.golang.org/grpc"

	pb "github.com/tessera-shell/tessera/proto"
)

// DaemonConnectedMsg signals a successful gRPC connection.
type DaemonConnectedMsg struct {
	Conn *grpc.ClientConn
}

// DaemonDisconnectedMsg signals the daemon connection was lost.
type DaemonDisconnectedMsg struct{}

// TaskbarMsg carries one snapshot from the WatchTaskbar stream.
type TaskbarMsg struct {
	Taskbar *pb.Taskbar
}

// MetricsMsg carries the latest bar reading.
type MetricsMsg struct {
	Reply *pb.MetricsReply
}

// FocusedMsg signals a window was focused.
type FocusedMsg struct {
	Address string
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the displayed error.
type ClearErrorMsg struct{}

// ReconnectMsg triggers a reconnection attempt.
type ReconnectMsg struct{}

type metricsTickMsg struct{}
