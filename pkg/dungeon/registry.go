package dungeon

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Registry dispatches RoomBuilder/SectorBuilder implementations by their
// archetype/kind key. Thread-safe, mirroring pkg/pcg/registry.go's
// sync.RWMutex-guarded map-of-maps shape — generation itself is
// single-threaded per spec §5, but the registry is populated once at
// startup from potentially concurrent init paths (e.g. plugin-style
// registration from multiple packages' init funcs).
type Registry struct {
	mu       sync.RWMutex
	rooms    map[RoomArchetype]RoomBuilder
	sectors  map[SectorKind]SectorBuilder
	logger   *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = defaultLogger
	}
	return &Registry{
		rooms:   make(map[RoomArchetype]RoomBuilder),
		sectors: make(map[SectorKind]SectorBuilder),
		logger:  logger,
	}
}

// RegisterRoomBuilder registers b under its own Archetype(). Returns an
// error if that archetype is already registered.
func (r *Registry) RegisterRoomBuilder(b RoomBuilder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := b.Archetype()
	if _, exists := r.rooms[at]; exists {
		return fmt.Errorf("dungeon: room archetype %d already registered", at)
	}
	r.rooms[at] = b
	r.logger.WithFields(logrus.Fields{"archetype": at}).Info("registered room builder")
	return nil
}

// RegisterSectorBuilder registers b under its own Kind().
func (r *Registry) RegisterSectorBuilder(b SectorBuilder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := b.Kind()
	if _, exists := r.sectors[kind]; exists {
		return fmt.Errorf("dungeon: sector kind %d already registered", kind)
	}
	r.sectors[kind] = b
	r.logger.WithFields(logrus.Fields{"sector": kind}).Info("registered sector builder")
	return nil
}

// GetRoomBuilder retrieves the builder for archetype, if registered.
func (r *Registry) GetRoomBuilder(archetype RoomArchetype) (RoomBuilder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rooms[archetype]
	if !ok {
		return nil, fmt.Errorf("dungeon: no room builder registered for archetype %d", archetype)
	}
	return b, nil
}

// GetSectorBuilder retrieves the builder for kind, if registered.
func (r *Registry) GetSectorBuilder(kind SectorKind) (SectorBuilder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.sectors[kind]
	if !ok {
		return nil, fmt.Errorf("dungeon: no sector builder registered for kind %d", kind)
	}
	return b, nil
}

// RoomArchetypes returns every registered room archetype in ascending
// order, so callers see the same order on every run even though Go map
// iteration order is randomized. The Level Director's room ladder uses
// its own fixed archetype list and does not call this.
func (r *Registry) RoomArchetypes() []RoomArchetype {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RoomArchetype, 0, len(r.rooms))
	for k := range r.rooms {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
