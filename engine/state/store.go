package state

import (
	"bytes"
	"sync"
)

// StateStore is the host-provided slot the viewer persists its camera record in.
// Implementations must tolerate concurrent use.
type StateStore interface {
	// Get returns the stored bytes.
	//
	// Returns:
	//   - []byte: a copy of the stored bytes
	//   - bool: false if nothing has been stored
	Get() ([]byte, bool)

	// Set replaces the stored bytes.
	//
	// Parameters:
	//   - data: the new contents
	Set(data []byte)
}

// MemoryStore is an in-process StateStore.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

var _ StateStore = &MemoryStore{}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false
	}
	return bytes.Clone(s.data), true
}

func (s *MemoryStore) Set(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(data)
	s.set = true
}

// Registry hands out one StateStore per document and keeps it while any panel holds it.
// The store survives a panel being hidden and shown again; it is dropped when the last panel
// for the document releases it.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*registryEntry
}

type registryEntry struct {
	store *MemoryStore
	refs  int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*registryEntry)}
}

// Acquire returns the store for a document, creating it on first use, and counts one more holder.
//
// Parameters:
//   - key: the document key, typically its path
//
// Returns:
//   - StateStore: the document's store
func (r *Registry) Acquire(key string) StateStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.stores[key]
	if !ok {
		e = &registryEntry{store: NewMemoryStore()}
		r.stores[key] = e
	}
	e.refs++
	return e.store
}

// Release drops one holder of a document's store and forgets the store when none remain.
// Releasing a store that was closed, or replaced since, is a no-op.
//
// Parameters:
//   - key: the document key
//   - store: the store returned by Acquire
func (r *Registry) Release(key string, store StateStore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.stores[key]
	if !ok || StateStore(e.store) != store {
		return
	}
	if e.refs--; e.refs <= 0 {
		delete(r.stores, key)
	}
}

// Close forgets a document's store regardless of holders, as when the document itself is closed.
//
// Parameters:
//   - key: the document key
func (r *Registry) Close(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, key)
}

// Len returns how many documents currently have a store.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
