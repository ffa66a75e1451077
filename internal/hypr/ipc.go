// Package hypr talks to the Hyprland window manager over its IPC sockets and
// keeps the live client list the dock reconciles against.
package hypr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tessera-shell/tessera/internal/models"
)

// ErrNotRunning is returned when no Hyprland instance signature is set.
var ErrNotRunning = errors.New("hyprland is not running (HYPRLAND_INSTANCE_SIGNATURE unset)")

const (
	requestSocketName = ".socket.sock"
	eventSocketName   = ".socket2.sock"

	requestTimeout = 2 * time.Second
)

// Paths locates the two Hyprland sockets.
type Paths struct {
	RequestSocket string
	EventSocket   string
}

// DefaultPaths derives socket paths from the environment. Hyprland >= 0.40
// places them under $XDG_RUNTIME_DIR/hypr, older releases under /tmp/hypr.
func DefaultPaths() (Paths, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return Paths{}, ErrNotRunning
	}

	dir := filepath.Join("/tmp", "hypr", sig)
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		candidate := filepath.Join(runtime, "hypr", sig)
		if _, err := os.Stat(filepath.Join(candidate, requestSocketName)); err == nil {
			dir = candidate
		}
	}
	return PathsIn(dir), nil
}

// PathsIn returns the socket paths inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		RequestSocket: filepath.Join(dir, requestSocketName),
		EventSocket:   filepath.Join(dir, eventSocketName),
	}
}

// Requester issues one-shot commands on the request socket.
type Requester interface {
	Request(ctx context.Context, cmd string) ([]byte, error)
}

// Conn is a Requester backed by the Hyprland request socket. Every request
// opens a fresh connection; Hyprland closes it after replying.
type Conn struct {
	socket string
}

// NewConn returns a Conn for the given request socket path.
func NewConn(socket string) *Conn {
	return &Conn{socket: socket}
}

// Request sends cmd and returns the full reply.
func (c *Conn) Request(ctx context.Context, cmd string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.socket, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if _, err := io.WriteString(conn, cmd); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", cmd, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply to %q: %w", cmd, err)
	}
	return reply, nil
}

// FetchClients returns the current client list (`j/clients`).
func FetchClients(ctx context.Context, r Requester) ([]models.Client, error) {
	reply, err := r.Request(ctx, "j/clients")
	if err != nil {
		return nil, err
	}
	var clients []models.Client
	if err := json.Unmarshal(reply, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}

// FetchActiveWindow returns the address of the focused client
// (`j/activewindow`), or "" when nothing has focus.
func FetchActiveWindow(ctx context.Context, r Requester) (string, error) {
	reply, err := r.Request(ctx, "j/activewindow")
	if err != nil {
		return "", err
	}
	var active struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(reply, &active); err != nil {
		return "", fmt.Errorf("failed to decode active window: %w", err)
	}
	return NormalizeAddress(active.Address), nil
}

// Dispatch runs a dispatcher (`dispatch <name> <arg>`) and checks Hyprland's
// "ok" reply.
func Dispatch(ctx context.Context, r Requester, name, arg string) error {
	cmd := "dispatch " + name
	if arg != "" {
		cmd += " " + arg
	}
	reply, err := r.Request(ctx, cmd)
	if err != nil {
		return err
	}
	if msg := strings.TrimSpace(string(reply)); msg != "ok" {
		return fmt.Errorf("%s %s: %s", name, arg, msg)
	}
	return nil
}

// FocusWindow focuses the client with the given address.
func FocusWindow(ctx context.Context, r Requester, address string) error {
	return Dispatch(ctx, r, "focuswindow", "address:"+NormalizeAddress(address))
}

// NormalizeAddress adds the 0x prefix event payloads omit.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" || strings.HasPrefix(address, "0x") {
		return address
	}
	return "0x" + address
}
