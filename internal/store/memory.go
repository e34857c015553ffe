// internal/store/memory.go
//
// In-memory implementation of the machine registry.
// This is a lightweight layer for ephemeral game instances: the HTTP server
// creates machines on demand and looks them up by ID on each event.
//
// Characteristics:
//   - Stores *machine.Machine keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/pangramlab/pangram/internal/machine"
)

// Registry is the lookup interface for live game instances.
// Implementations may be backed by memory (this package), Redis, etc.
type Registry interface {
	// Save registers or replaces a machine.
	Save(ctx context.Context, m *machine.Machine) error

	// Get retrieves a machine by ID.
	// Returns an error if the machine is not found.
	Get(ctx context.Context, id string) (*machine.Machine, error)
}

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("game not found")

// memory is an in-memory map-based Registry implementation.
type memory struct {
	mu       sync.RWMutex // guards machines map
	machines map[string]*machine.Machine
}

// NewMemoryRegistry constructs a new in-memory Registry.
func NewMemoryRegistry() Registry {
	return &memory{machines: make(map[string]*machine.Machine)}
}

// Save adds or updates the machine in the map.
func (s *memory) Save(_ context.Context, m *machine.Machine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines[m.ID()] = m
	return nil
}

// Get looks up a machine by ID.
func (s *memory) Get(_ context.Context, id string) (*machine.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.machines[id]; ok {
		return m, nil
	}
	return nil, ErrNotFound
}
