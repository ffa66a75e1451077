package hypr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/logging"
	"github.com/tessera-shell/tessera/internal/models"
)

// ClientEvents is the subscription surface the dock consumes.
type ClientEvents interface {
	OnClientAdded(h func(address string))
	OnClientRemoved(h func(address string))
	OnClientsChanged(h func())
	OnActiveChanged(h func(address string))
}

// Service owns the ClientSet and turns event-socket lines into client
// notifications. Handlers run on the Service's reader goroutine and must not block.
type Service struct {
	paths     Paths
	requester Requester
	clients   *ClientSet
	log       zerolog.Logger

	mu        sync.RWMutex
	onAdded   []func(string)
	onRemoved []func(string)
	onChanged []func()
	onActive  []func(string)
	active    string

	// MaxReconnectInterval caps the backoff between event socket reconnects.
	MaxReconnectInterval time.Duration
}

// NewService creates a Service for the given socket paths.
func NewService(paths Paths) *Service {
	return NewServiceWith(paths, NewConn(paths.RequestSocket))
}

// NewServiceWith creates a Service that issues requests through r.
func NewServiceWith(paths Paths, r Requester) *Service {
	return &Service{
		paths:                paths,
		requester:            r,
		clients:              NewClientSet(),
		log:                  logging.Component("hypr"),
		MaxReconnectInterval: 10 * time.Second,
	}
}

// OnClientAdded registers a handler for newly opened windows.
func (s *Service) OnClientAdded(h func(address string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAdded = append(s.onAdded, h)
}

// OnClientRemoved registers a handler for closed windows.
func (s *Service) OnClientRemoved(h func(address string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRemoved = append(s.onRemoved, h)
}

// OnClientsChanged registers a handler for changes that need a full resync.
func (s *Service) OnClientsChanged(h func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChanged = append(s.onChanged, h)
}

// OnActiveChanged registers a handler for focus changes. The address is ""
// when no window has focus.
func (s *Service) OnActiveChanged(h func(address string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onActive = append(s.onActive, h)
}

// Active returns the address of the focused client.
func (s *Service) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Clients returns the live client list.
func (s *Service) Clients() []models.Client {
	return s.clients.All()
}

// Client looks up a live client by address.
func (s *Service) Client(address string) (models.Client, bool) {
	return s.clients.Get(NormalizeAddress(address))
}

// Refresh re-reads the client list from Hyprland.
func (s *Service) Refresh(ctx context.Context) error {
	clients, err := FetchClients(ctx, s.requester)
	if err != nil {
		return err
	}
	s.clients.Replace(clients)
	return nil
}

// Focus focuses the client with the given address.
func (s *Service) Focus(ctx context.Context, address string) error {
	return FocusWindow(ctx, s.requester, address)
}

// Run reads the event socket until ctx is cancelled, reconnecting with
// exponential backoff whenever the connection drops.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("initial client refresh failed")
	}
	if addr, err := FetchActiveWindow(ctx, s.requester); err == nil {
		s.setActive(addr)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = s.MaxReconnectInterval

	connected := false
	op := func() error {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		conn, err := (&net.Dialer{}).DialContext(ctx, "unix", s.paths.EventSocket)
		if err != nil {
			return fmt.Errorf("failed to connect to event socket: %w", err)
		}
		b.Reset()
		if connected {
			// Events may have been missed while disconnected.
			s.resync(ctx)
		}
		connected = true
		s.log.Info().Str("socket", s.paths.EventSocket).Msg("listening for window events")

		err = s.readEvents(ctx, conn)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.log.Warn().Err(err).Dur("retry_in", wait).Msg("event socket unavailable")
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (s *Service) readEvents(ctx context.Context, conn net.Conn) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		ev, ok := ParseEvent(scanner.Text())
		if !ok {
			continue
		}
		s.HandleEvent(ctx, ev)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("event socket read failed: %w", err)
	}
	return errors.New("event socket closed")
}

// HandleEvent applies one event to the ClientSet and notifies subscribers.
func (s *Service) HandleEvent(ctx context.Context, ev Event) {
	switch ev.Name {
	case EventOpenWindow:
		open, ok := ParseOpenWindow(ev.Data)
		if !ok {
			s.log.Debug().Str("data", ev.Data).Msg("malformed openwindow event")
			return
		}
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn().Err(err).Msg("client refresh failed")
		}
		if _, found := s.clients.Get(open.Address); !found {
			// Not yet listed by j/clients; keep what the event told us.
			s.clients.Upsert(models.Client{
				Address:   open.Address,
				Class:     open.Class,
				Title:     open.Title,
				Workspace: models.WorkspaceRef{ID: workspaceID(open.Workspace), Name: open.Workspace},
				PID:       models.PIDUnresolved,
			})
		}
		s.log.Debug().Str("address", open.Address).Str("class", open.Class).Msg("window opened")
		s.emitAdded(open.Address)

	case EventCloseWindow:
		addr := FirstAddress(ev.Data)
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn().Err(err).Msg("client refresh failed")
		}
		s.log.Debug().Str("address", addr).Msg("window closed")
		s.emitRemoved(addr)

	case EventActiveWindowV2:
		s.setActive(FirstAddress(ev.Data))

	case EventWindowTitle, EventWindowTitleV2, EventMoveWindow, EventMoveWindowV2:
		s.resync(ctx)
	}
}

func (s *Service) resync(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("client refresh failed")
		return
	}
	s.emitChanged()
}

func (s *Service) setActive(addr string) {
	s.mu.Lock()
	if s.active == addr {
		s.mu.Unlock()
		return
	}
	s.active = addr
	handlers := s.onActive
	s.mu.Unlock()
	for _, h := range handlers {
		h(addr)
	}
}

func (s *Service) emitAdded(addr string) {
	s.mu.RLock()
	handlers := s.onAdded
	s.mu.RUnlock()
	for _, h := range handlers {
		h(addr)
	}
}

func (s *Service) emitRemoved(addr string) {
	s.mu.RLock()
	handlers := s.onRemoved
	s.mu.RUnlock()
	for _, h := range handlers {
		h(addr)
	}
}

func (s *Service) emitChanged() {
	s.mu.RLock()
	handlers := s.onChanged
	s.mu.RUnlock()
	for _, h := range handlers {
		h()
	}
}
