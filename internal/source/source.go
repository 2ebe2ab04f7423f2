// Package source provides the entity collections the autolinker indexes.
package source

import (
	"context"
	"sync"

	"github.com/riverfjs/autolink-go/internal/types"
)

// Source is an ordered, refreshable collection of entities.
type Source interface {
	// Refresh reloads the collection. It is called once before each pass.
	Refresh(ctx context.Context) error
	// Entities returns a snapshot in a stable order.
	Entities() []types.Entity
}

// snapshot guards an entity slice shared between Refresh and readers.
type snapshot struct {
	mu       sync.RWMutex
	entities []types.Entity
}

func (s *snapshot) set(entities []types.Entity) {
	s.mu.Lock()
	s.entities = entities
	s.mu.Unlock()
}

func (s *snapshot) get() []types.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Entity(nil), s.entities...)
}

// Static is an in-memory Source. Set replaces its contents; Refresh is a no-op.
type Static struct {
	snapshot
}

// NewStatic creates a Static source holding entities in the given order.
func NewStatic(entities ...types.Entity) *Static {
	s := &Static{}
	s.Set(entities)
	return s
}

// Set replaces the entities.
func (s *Static) Set(entities []types.Entity) {
	s.set(append([]types.Entity(nil), entities...))
}

// Refresh implements Source.
func (s *Static) Refresh(context.Context) error {
	return nil
}

// Entities implements Source.
func (s *Static) Entities() []types.Entity {
	return s.get()
}
