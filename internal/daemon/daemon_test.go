package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/tessera-shell/tessera/internal/bar"
	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/hypr"
	"github.com/tessera-shell/tessera/internal/models"
	pb "github.com/tessera-shell/tessera/proto"
)

type harness struct {
	daemon  *Daemon
	conn    *grpc.ClientConn
	apps    string
	cancel  context.CancelFunc
	stopped chan error
}

func fixedSources() *bar.Sources {
	return &bar.Sources{
		CPUPercent: func(context.Context) (float64, error) { return 25, nil },
		Temperatures: func(context.Context) ([]host.TemperatureStat, error) {
			return []host.TemperatureStat{{SensorKey: "coretemp_package_id_0", Temperature: 50}}, nil
		},
	}
}

func startDaemon(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TESSERA_HOME", home)

	iconDir := filepath.Join(home, "icons")
	apps := filepath.Join(home, "applications")
	require.NoError(t, os.MkdirAll(iconDir, 0755))
	require.NoError(t, os.MkdirAll(apps, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(iconDir, "firefox.svg"), []byte("<svg/>"), 0644))

	settings := models.NewSettings()
	settings.Icons.SearchPaths = []string{iconDir}
	settings.Icons.DesktopDirs = []string{apps}
	settings.Bar.PollInterval = 50 * time.Millisecond

	h := &harness{apps: apps, stopped: make(chan error, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	d, err := New(Options{
		Settings:     settings,
		Hypr:         hypr.PathsIn(t.TempDir()),
		Sources:      fixedSources(),
		OnShutdown:   cancel,
		KeepLogLevel: true,
	})
	require.NoError(t, err)
	h.daemon = d

	go func() { h.stopped <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.stopped:
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
	})

	require.Eventually(t, func() bool {
		running, _, err := config.IsDaemonRunning()
		return err == nil && running
	}, 2*time.Second, 10*time.Millisecond)

	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", d.Info().Host, d.Info().Port),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	h.conn = conn
	return h
}

func TestDaemonRegistersAndServes(t *testing.T) {
	h := startDaemon(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	info, err := config.LoadDaemonInfo()
	require.NoError(t, err)
	assert.Equal(t, h.daemon.Info().InstanceID, info.InstanceID)
	assert.Equal(t, os.Getpid(), info.PID)

	status, err := pb.NewDaemonServiceClient(h.conn).GetStatus(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, info.InstanceID, status.InstanceID)
	assert.Equal(t, int32(0), status.Entries)

	icons, err := pb.NewDockServiceClient(h.conn).ResolveIcon(ctx, &pb.ResolveIconRequest{Classes: []string{"Firefox"}})
	require.NoError(t, err)
	require.Len(t, icons.Icons, 1)
	assert.Equal(t, "firefox.svg", filepath.Base(icons.Icons[0].Path))
	assert.Equal(t, int32(1), icons.Candidates)
}

func TestDaemonServesMetrics(t *testing.T) {
	h := startDaemon(t)
	client := pb.NewBarServiceClient(h.conn)

	var reply *pb.MetricsReply
	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r, err := client.GetMetrics(ctx, &emptypb.Empty{})
		if err != nil || !r.Ready {
			return false
		}
		reply = r
		return true
	}, 2*time.Second, 20*time.Millisecond)

	assert.InDelta(t, 25, reply.Metrics.CPUUsage.Value, 0.001)
	assert.True(t, reply.Metrics.CPUTemp.Available)
	assert.False(t, reply.Metrics.PowerDraw.Available)
}

func TestDaemonReloadsDesktopEntries(t *testing.T) {
	h := startDaemon(t)
	client := pb.NewDockServiceClient(h.conn)

	resolve := func() string {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		list, err := client.ResolveIcon(ctx, &pb.ResolveIconRequest{Classes: []string{"myapp"}})
		require.NoError(t, err)
		return list.Icons[0].Name
	}
	assert.Equal(t, "myapp", resolve())

	entry := "[Desktop Entry]\nName=My App\nIcon=my-app-icon\nExec=myapp\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.apps, "myapp.desktop"), []byte(entry), 0644))

	assert.Eventually(t, func() bool {
		return resolve() == "my-app-icon"
	}, 3*time.Second, 50*time.Millisecond)
}

func TestDaemonShutdownUnregisters(t *testing.T) {
	h := startDaemon(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := pb.NewDaemonServiceClient(h.conn).Shutdown(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	select {
	case err := <-h.stopped:
		assert.NoError(t, err)
		h.stopped <- err
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop after Shutdown")
	}

	path, err := config.GlobalDaemonFile()
	require.NoError(t, err)
	assert.False(t, config.FileExists(path))
}

func TestNewRequiresSettings(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
