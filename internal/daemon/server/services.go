package server

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tessera-shell/tessera/internal/buildinfo"
	"github.com/tessera-shell/tessera/internal/dock"
	"github.com/tessera-shell/tessera/internal/hypr"
	pb "github.com/tessera-shell/tessera/proto"
)

type dockService struct {
	server *Server
}

func (s *dockService) GetTaskbar(ctx context.Context, _ *emptypb.Empty) (*pb.Taskbar, error) {
	snap, err := s.server.opts.Taskbar.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return snapshotToProto(snap), nil
}

func (s *dockService) WatchTaskbar(_ *emptypb.Empty, stream pb.DockService_WatchTaskbarServer) error {
	updates, cancel := s.server.opts.Taskbar.Watch()
	defer cancel()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return status.Error(codes.Unavailable, "dock stopped")
			}
			if err := stream.Send(snapshotToProto(snap)); err != nil {
				return err
			}
		}
	}
}

func (s *dockService) Reveal(ctx context.Context, _ *emptypb.Empty) (*pb.Taskbar, error) {
	if err := s.server.opts.Taskbar.Reveal(ctx); err != nil {
		return nil, toStatus(err)
	}
	return s.GetTaskbar(ctx, nil)
}

func (s *dockService) ResolveIcon(ctx context.Context, req *pb.ResolveIconRequest) (*pb.IconList, error) {
	lookup := s.server.opts.Icons
	if lookup == nil {
		return nil, status.Error(codes.Unavailable, "icon lookup not configured")
	}

	list := &pb.IconList{Icons: make([]*pb.ResolvedIcon, 0, len(req.Classes))}
	for _, class := range req.Classes {
		if strings.TrimSpace(class) == "" {
			return nil, status.Error(codes.InvalidArgument, "empty class")
		}
		icon := lookup.Icon(class)
		list.Icons = append(list.Icons, &pb.ResolvedIcon{Class: class, Path: icon.Path, Name: icon.Name})
	}

	resolver := lookup.Resolver()
	list.Searches = int32(resolver.Searches())
	list.CachedClasses = int32(resolver.Cache().Len())
	list.DesktopEntries = int32(lookup.Desktop().Len())
	if s.server.opts.Index != nil {
		list.Candidates = int32(s.server.opts.Index.Len())
	}
	return list, nil
}

func (s *dockService) FocusClient(ctx context.Context, req *pb.FocusRequest) (*emptypb.Empty, error) {
	windows := s.server.opts.Windows
	if windows == nil {
		return nil, status.Error(codes.Unavailable, "window manager not connected")
	}
	addr := hypr.NormalizeAddress(req.Address)
	if addr == "" {
		return nil, status.Error(codes.InvalidArgument, "address is required")
	}
	if _, ok := windows.Client(addr); !ok {
		return nil, status.Errorf(codes.NotFound, "no client with address %s", addr)
	}
	if err := windows.Focus(ctx, addr); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

type barService struct {
	metrics MetricsSource
}

func (s *barService) GetMetrics(ctx context.Context, _ *emptypb.Empty) (*pb.MetricsReply, error) {
	if s.metrics == nil {
		return nil, status.Error(codes.Unavailable, "metrics poller not running")
	}
	m, ready := s.metrics.Latest()
	return &pb.MetricsReply{Metrics: m, Ready: ready}, nil
}

type daemonService struct {
	server *Server
}

func (s *daemonService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*pb.DaemonStatus, error) {
	st := &pb.DaemonStatus{
		Version: buildinfo.Version,
		Host:    s.server.Host(),
		Port:    int32(s.server.Port()),
		Pid:     int32(os.Getpid()),
	}
	if info := s.server.opts.Info; info != nil {
		st.InstanceID = info.InstanceID
		st.StartedAt = timestamppb.New(info.StartedAt)
	}
	if w := s.server.opts.Windows; w != nil {
		st.Clients = int32(len(w.Clients()))
	}
	if tb := s.server.opts.Taskbar; tb != nil {
		snap, err := tb.Snapshot(ctx)
		if err != nil {
			return nil, toStatus(err)
		}
		st.Entries = int32(len(snap.Entries))
		st.Watchers = int32(tb.Watchers())
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil {
			st.RSSBytes = mem.RSS
		}
	}
	return st, nil
}

func (s *daemonService) Shutdown(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.server.log.Info().Msg("shutdown requested")
	// Let the response reach the client before the server stops.
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.server.opts.OnShutdown()
	}()
	return &emptypb.Empty{}, nil
}

func snapshotToProto(snap dock.Snapshot) *pb.Taskbar {
	return &pb.Taskbar{
		Version:   snap.Version,
		Entries:   snap.Entries,
		Pending:   int32(snap.Pending),
		Pinned:    snap.Pinned,
		Active:    snap.Active,
		UpdatedAt: timestamppb.Now(),
	}
}

// toStatus maps internal errors to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, dock.ErrStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, hypr.ErrNotRunning):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
