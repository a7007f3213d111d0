package voxel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goldeneas/vox-sub000/internal/logging"
)

// Registry is the bidirectional Type <-> ID mapping shared by every chunk of
// a world. Reads are safe from concurrent remeshes.
type Registry struct {
	mu     sync.RWMutex
	ids    map[Type]ID
	types  map[ID]Type
	remaps int
	log    logrus.FieldLogger
}

// Entry is one registered pair.
type Entry struct {
	Type Type
	ID   ID
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger routes registry diagnostics (remaps) to l.
func WithLogger(l logrus.FieldLogger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ids:   make(map[Type]ID),
		types: make(map[ID]Type),
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry registers every known type with its declaration index
// as id (air = 0).
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, t := range Types() {
		r.MustRegister(t, ID(t))
	}
	return r
}

// Register maps t to id.
//
// If id is already held by another type the call fails with
// ErrAmbiguousRegistryState and nothing changes; evict the holder first.
// If t was mapped to a different id, that mapping is replaced and a warning
// is logged.
func (r *Registry) Register(t Type, id ID) error {
	if !t.Valid() {
		return fmt.Errorf("register %s: %w", t, ErrUnknownVoxelType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.types[id]; ok && holder != t {
		return fmt.Errorf("register %s as %d: id held by %s: %w", t, id, holder, ErrAmbiguousRegistryState)
	}

	old, had := r.ids[t]
	if had && old == id {
		return nil
	}
	if had {
		delete(r.types, old)
		r.remaps++
		r.log.WithFields(logrus.Fields{
			"voxel":  t.String(),
			"old_id": old,
			"new_id": id,
		}).Warn("voxel type remapped")
	}

	r.ids[t] = id
	r.types[id] = t
	return nil
}

// MustRegister is Register for setup code; it panics on error.
func (r *Registry) MustRegister(t Type, id ID) {
	if err := r.Register(t, id); err != nil {
		panic(err)
	}
}

// Evict removes t and frees its id. It reports whether t was registered.
func (r *Registry) Evict(t Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[t]
	if !ok {
		return false
	}
	delete(r.ids, t)
	delete(r.types, id)
	return true
}

// ID returns the id registered for t.
func (r *Registry) ID(t Type) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// MustID is ID for setup code; never call it on a render path.
func (r *Registry) MustID(t Type) ID {
	id, ok := r.ID(t)
	if !ok {
		panic(fmt.Errorf("voxel %s: %w", t, ErrUnknownVoxelType))
	}
	return id
}

// Type returns the type currently holding id.
func (r *Registry) Type(id ID) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Remaps counts how many registrations replaced an existing id for a type.
func (r *Registry) Remaps() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.remaps
}

// Entries returns every mapping ordered by id.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.ids))
	for t, id := range r.ids {
		out = append(out, Entry{Type: t, ID: id})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
