package hypr

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tessera-shell/tessera/internal/models"
)

// fakeHyprland serves both Hyprland sockets from a temp dir.
type fakeHyprland struct {
	t     *testing.T
	paths Paths

	mu       sync.Mutex
	clients  []models.Client
	active   string
	commands []string
	events   []net.Conn
	accepted chan struct{}
}

func newFakeHyprland(t *testing.T) *fakeHyprland {
	t.Helper()
	f := &fakeHyprland{
		t:        t,
		paths:    PathsIn(t.TempDir()),
		accepted: make(chan struct{}, 16),
	}

	reqLn, err := net.Listen("unix", f.paths.RequestSocket)
	require.NoError(t, err)
	evLn, err := net.Listen("unix", f.paths.EventSocket)
	require.NoError(t, err)
	t.Cleanup(func() {
		reqLn.Close()
		evLn.Close()
		f.mu.Lock()
		for _, c := range f.events {
			c.Close()
		}
		f.mu.Unlock()
	})

	go f.serveRequests(reqLn)
	go f.acceptEvents(evLn)
	return f
}

func (f *fakeHyprland) serveRequests(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go func(conn net.Conn) {
			defer conn.Close()
			buf := make([]byte, 1024)
			n, err := conn.Read(buf)
			if err != nil && err != io.EOF {
				return
			}
			cmd := string(buf[:n])

			f.mu.Lock()
			f.commands = append(f.commands, cmd)
			clients := append([]models.Client(nil), f.clients...)
			active := f.active
			f.mu.Unlock()

			switch {
			case cmd == "j/clients":
				if clients == nil {
					clients = []models.Client{}
				}
				_ = json.NewEncoder(conn).Encode(clients)
			case cmd == "j/activewindow":
				if active == "" {
					_, _ = io.WriteString(conn, "{}")
					return
				}
				_ = json.NewEncoder(conn).Encode(map[string]string{"address": active})
			case strings.HasPrefix(cmd, "dispatch "):
				_, _ = io.WriteString(conn, "ok")
			default:
				_, _ = io.WriteString(conn, "unknown request")
			}
		}(conn)
	}
}

func (f *fakeHyprland) acceptEvents(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		f.events = append(f.events, conn)
		f.mu.Unlock()
		f.accepted <- struct{}{}
	}
}

func (f *fakeHyprland) setActive(addr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = addr
}

func (f *fakeHyprland) setClients(clients ...models.Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = clients
}

// emit writes an event line to the most recent event connection.
func (f *fakeHyprland) emit(line string) {
	f.mu.Lock()
	conn := f.events[len(f.events)-1]
	f.mu.Unlock()
	w := bufio.NewWriter(conn)
	_, err := w.WriteString(line + "\n")
	require.NoError(f.t, err)
	require.NoError(f.t, w.Flush())
}

// dropEvents closes every open event connection.
func (f *fakeHyprland) dropEvents() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.events {
		c.Close()
	}
}

func (f *fakeHyprland) sentCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}
