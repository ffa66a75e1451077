// Package server implements the gRPC server for the daemon.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/tessera-shell/tessera/internal/daemon/tray"
	"github.com/tessera-shell/tessera/internal/dock"
	"github.com/tessera-shell/tessera/internal/icons"
	"github.com/tessera-shell/tessera/internal/logging"
	"github.com/tessera-shell/tessera/internal/models"
	pb "github.com/tessera-shell/tessera/proto"
)

const stopTimeout = 3 * time.Second

// Taskbar is the dock as the server sees it.
type Taskbar interface {
	Snapshot(ctx context.Context) (dock.Snapshot, error)
	Latest() dock.Snapshot
	Watch() (<-chan dock.Snapshot, func())
	Watchers() int
	Reveal(ctx context.Context) error
}

// Windows is the window-manager service.
type Windows interface {
	Clients() []models.Client
	Client(address string) (models.Client, bool)
	Focus(ctx context.Context, address string) error
}

// MetricsSource provides the latest bar reading.
type MetricsSource interface {
	Latest() (models.Metrics, bool)
}

// Options wires the server to the daemon's components.
type Options struct {
	Host    string
	Port    int // 0 for dynamic allocation
	Taskbar Taskbar
	Windows Windows
	Icons   *icons.Lookup
	Index   *icons.Index
	Metrics MetricsSource
	Info    *models.DaemonInfo

	// OnShutdown is called by the Shutdown RPC. Defaults to interrupting
	// the current process.
	OnShutdown func()
}

// Server is the daemon's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	host       string
	port       int
	opts       Options
	log        zerolog.Logger
}

// New creates a new server listening on the configured host and port.
func New(opts Options) (*Server, error) {
	if opts.Taskbar == nil {
		return nil, errors.New("server needs a taskbar")
	}
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.OnShutdown == nil {
		opts.OnShutdown = interruptSelf
	}

	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("%s:%d", opts.Host, opts.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	// Get actual port if dynamically allocated
	actualPort := listener.Addr().(*net.TCPAddr).Port

	log := logging.Component("server")
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryLogger(log)),
		grpc.ChainStreamInterceptor(streamLogger(log)),
	)

	srv := &Server{
		grpcServer: grpcServer,
		listener:   listener,
		host:       opts.Host,
		port:       actualPort,
		opts:       opts,
		log:        log,
	}

	pb.RegisterDockServiceServer(grpcServer, &dockService{server: srv})
	pb.RegisterBarServiceServer(grpcServer, &barService{metrics: opts.Metrics})
	pb.RegisterDaemonServiceServer(grpcServer, &daemonService{server: srv})

	return srv, nil
}

// Host returns the host the server is bound to.
func (s *Server) Host() string {
	return s.host
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// SetInfo records the daemon registration reported by GetStatus.
func (s *Server) SetInfo(info *models.DaemonInfo) {
	s.opts.Info = info
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	s.log.Info().Str("addr", s.listener.Addr().String()).Msg("gRPC server listening")
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server, cutting open streams after stopTimeout.
func (s *Server) Stop() {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		s.log.Warn().Msg("graceful stop timed out")
		s.grpcServer.Stop()
	}
}

func unaryLogger(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err).Str("code", status.Code(err).String())
		}
		ev.Str("method", info.FullMethod).Dur("took", time.Since(start)).Msg("rpc")
		return resp, err
	}
}

func streamLogger(log zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		log.Debug().Str("method", info.FullMethod).Msg("stream opened")
		err := handler(srv, ss)
		log.Debug().Err(err).Str("method", info.FullMethod).Msg("stream closed")
		return err
	}
}

// interruptSelf sends SIGINT to the current process to trigger a graceful shutdown.
func interruptSelf() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}

// TrayState adapts a Server to the tray.DaemonState interface.
type TrayState struct {
	srv *Server
}

// NewTrayState creates a TrayState for the given server.
func NewTrayState(srv *Server) *TrayState {
	return &TrayState{srv: srv}
}

// Port returns the port the server is listening on.
func (t *TrayState) Port() int {
	return t.srv.Port()
}

// Windows returns the visible entries of the last published taskbar.
func (t *TrayState) Windows() []tray.WindowInfo {
	return WindowsFrom(t.srv.opts.Taskbar.Latest())
}

// WindowsFrom lists the visible entries of a snapshot as tray windows.
func WindowsFrom(snap dock.Snapshot) []tray.WindowInfo {
	windows := make([]tray.WindowInfo, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		if !e.Visible {
			continue
		}
		windows = append(windows, tray.WindowInfo{
			Address:     e.Address,
			Class:       e.Class,
			Title:       e.Title,
			WorkspaceID: e.WorkspaceID,
		})
	}
	return windows
}

// Focus focuses the window with the given address.
func (t *TrayState) Focus(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return t.srv.opts.Windows.Focus(ctx, address)
}

// Reveal finishes pending removals.
func (t *TrayState) Reveal() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return t.srv.opts.Taskbar.Reveal(ctx)
}

// RequestShutdown triggers a graceful shutdown.
func (t *TrayState) RequestShutdown() {
	t.srv.opts.OnShutdown()
}
