package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/tessera-shell/tessera/internal/dock"
	"github.com/tessera-shell/tessera/internal/icons"
	"github.com/tessera-shell/tessera/internal/models"
	pb "github.com/tessera-shell/tessera/proto"
)

type fakeWindows struct {
	mu      sync.Mutex
	clients []models.Client
	focused []string
	failing bool
}

func (f *fakeWindows) Clients() []models.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Client(nil), f.clients...)
}

func (f *fakeWindows) Client(address string) (models.Client, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.Address == address {
			return c, true
		}
	}
	return models.Client{}, false
}

func (f *fakeWindows) Focus(_ context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("dispatch failed")
	}
	f.focused = append(f.focused, address)
	return nil
}

type fakeMetrics struct {
	m models.Metrics
}

func (f fakeMetrics) Latest() (models.Metrics, bool) { return f.m, true }

type harness struct {
	srv      *Server
	conn     *grpc.ClientConn
	dock     *dock.Dock
	windows  *fakeWindows
	shutdown chan struct{}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	windows := &fakeWindows{clients: []models.Client{
		{Address: "0x1", Class: "firefox", Title: "Firefox", Workspace: models.WorkspaceRef{ID: 1}, PID: 10},
		{Address: "0x2", Class: "kitty", Title: "kitty", Workspace: models.WorkspaceRef{ID: 2}, PID: 11},
	}}

	index := icons.NewIndex([]string{"/icons/firefox.png"})
	lookup := icons.NewLookup(icons.NewResolver(icons.NewCache(), index), nil, nil)

	cfg := models.NewSettings().Dock
	d, err := dock.New(windows, lookup, cfg, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	dockDone := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(dockDone)
	}()
	// Wait for the bootstrap resync so icon statistics are stable.
	_, err = d.Snapshot(ctx)
	require.NoError(t, err)

	h := &harness{dock: d, windows: windows, shutdown: make(chan struct{}, 1)}
	srv, err := New(Options{
		Host:    "127.0.0.1",
		Taskbar: d,
		Windows: windows,
		Icons:   lookup,
		Index:   index,
		Metrics: fakeMetrics{m: models.Metrics{CPUUsage: models.Gauge{Value: 12, Unit: "%", Percent: 12, Available: true}}},
		Info: &models.DaemonInfo{
			InstanceID: "test-instance",
			StartedAt:  time.Now().Add(-time.Minute),
		},
		OnShutdown: func() { h.shutdown <- struct{}{} },
	})
	require.NoError(t, err)
	h.srv = srv

	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.Serve() }()

	conn, err := grpc.NewClient(
		fmt.Sprintf("127.0.0.1:%d", srv.Port()),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	h.conn = conn

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		<-serveDone
		cancel()
		<-dockDone
	})
	return h
}

func callCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGetTaskbar(t *testing.T) {
	h := newHarness(t)
	client := pb.NewDockServiceClient(h.conn)

	tb, err := client.GetTaskbar(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, tb.Entries, 2)
	assert.Equal(t, "0x1", tb.Entries[0].Address)
	assert.Equal(t, "/icons/firefox.png", tb.Entries[0].IconPath)
	assert.Equal(t, "kitty", tb.Entries[1].IconName)
	assert.NotNil(t, tb.UpdatedAt)
}

func TestSnapshotToProtoCarriesPinned(t *testing.T) {
	tb := snapshotToProto(dock.Snapshot{
		Version: 4,
		Pinned:  []models.PinnedApp{{Term: "firefox", Running: true, Focused: true, Address: "0x1", Title: "Firefox"}},
		Active:  "0x1",
	})
	assert.Equal(t, uint64(4), tb.Version)
	require.Len(t, tb.Pinned, 1)
	assert.True(t, tb.Pinned[0].Focused)
	assert.Equal(t, "0x1", tb.Active)
}

func TestWatchTaskbar(t *testing.T) {
	h := newHarness(t)
	client := pb.NewDockServiceClient(h.conn)

	stream, err := client.WatchTaskbar(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	first, err := stream.Recv()
	require.NoError(t, err)

	h.dock.ClientRemoved("0x2")
	for {
		next, err := stream.Recv()
		require.NoError(t, err)
		if next.Version > first.Version && next.Pending == 1 {
			assert.False(t, next.Entries[1].Visible)
			break
		}
	}

	tb, err := client.Reveal(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, tb.Entries, 1)
	assert.Zero(t, tb.Pending)
}

func TestResolveIcon(t *testing.T) {
	h := newHarness(t)
	client := pb.NewDockServiceClient(h.conn)

	list, err := client.ResolveIcon(callCtx(t), &pb.ResolveIconRequest{Classes: []string{"Firefox", "firefox", "gimp"}})
	require.NoError(t, err)
	require.Len(t, list.Icons, 3)
	assert.Equal(t, "/icons/firefox.png", list.Icons[0].Path)
	assert.Equal(t, "/icons/firefox.png", list.Icons[1].Path)
	assert.Empty(t, list.Icons[2].Path)
	assert.Equal(t, "gimp", list.Icons[2].Name)
	assert.Equal(t, int32(1), list.Candidates)
	// firefox was resolved by the dock already; kitty and gimp are misses.
	assert.Equal(t, int32(3), list.Searches)

	_, err = client.ResolveIcon(callCtx(t), &pb.ResolveIconRequest{Classes: []string{" "}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestFocusClient(t *testing.T) {
	h := newHarness(t)
	client := pb.NewDockServiceClient(h.conn)

	_, err := client.FocusClient(callCtx(t), &pb.FocusRequest{Address: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0x2"}, h.windows.focused)

	_, err = client.FocusClient(callCtx(t), &pb.FocusRequest{Address: "0xdead"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.FocusClient(callCtx(t), &pb.FocusRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	h.windows.mu.Lock()
	h.windows.failing = true
	h.windows.mu.Unlock()
	_, err = client.FocusClient(callCtx(t), &pb.FocusRequest{Address: "0x1"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGetMetrics(t *testing.T) {
	h := newHarness(t)
	reply, err := pb.NewBarServiceClient(h.conn).GetMetrics(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	assert.True(t, reply.Ready)
	assert.Equal(t, 12.0, reply.Metrics.CPUUsage.Value)
}

func TestDaemonStatusAndShutdown(t *testing.T) {
	h := newHarness(t)
	client := pb.NewDaemonServiceClient(h.conn)

	st, err := client.GetStatus(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "test-instance", st.InstanceID)
	assert.Equal(t, int32(h.srv.Port()), st.Port)
	assert.Equal(t, int32(2), st.Clients)
	assert.Equal(t, int32(2), st.Entries)
	assert.NotNil(t, st.StartedAt)

	_, err = client.Shutdown(callCtx(t), &emptypb.Empty{})
	require.NoError(t, err)
	select {
	case <-h.shutdown:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown hook not called")
	}
}

func TestTrayState(t *testing.T) {
	h := newHarness(t)
	ts := NewTrayState(h.srv)

	assert.Equal(t, h.srv.Port(), ts.Port())
	windows := ts.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, "Firefox", windows[0].Title)

	require.NoError(t, ts.Focus("0x1"))
	require.NoError(t, ts.Reveal())
	ts.RequestShutdown()
	assert.Len(t, h.shutdown, 1)
}
