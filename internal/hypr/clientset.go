package hypr

import (
	"sync"

	"github.com/tessera-shell/tessera/internal/models"
)

// ClientSet is the live list of open windows as last reported by Hyprland.
// It is written by the Service and read by any goroutine.
type ClientSet struct {
	mu      sync.RWMutex
	clients []models.Client
	index   map[string]int
}

// NewClientSet creates an empty ClientSet.
func NewClientSet() *ClientSet {
	return &ClientSet{index: make(map[string]int)}
}

// Replace swaps in a freshly fetched client list.
func (s *ClientSet) Replace(clients []models.Client) {
	index := make(map[string]int, len(clients))
	for i, c := range clients {
		index[c.Address] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = clients
	s.index = index
}

// Upsert inserts or replaces a single client.
func (s *ClientSet) Upsert(c models.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[c.Address]; ok {
		s.clients[i] = c
		return
	}
	s.index[c.Address] = len(s.clients)
	s.clients = append(s.clients, c)
}

// Get returns the client with the given address.
func (s *ClientSet) Get(address string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[address]
	if !ok {
		return models.Client{}, false
	}
	return s.clients[i], true
}

// All returns a copy of the client list in Hyprland's order.
func (s *ClientSet) All() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Len returns the number of clients.
func (s *ClientSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
