package ui

import (
	"strconv"
	"sync"

	"selectsearch/internal/host"
)

// Registry tracks which host controls carry a live widget instance and
// which generated identifiers are in use. Keeping this mapping outside the
// host control means attach never stamps instance markers onto host-owned
// objects; identity is the host select pointer.
type Registry struct {
	mu      sync.Mutex
	byHost  map[*host.Select]*SearchSelect
	usedIDs map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHost:  make(map[*host.Select]*SearchSelect),
		usedIDs: make(map[string]struct{}),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Attach.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Lookup returns the live instance attached to sel, if any.
func (r *Registry) Lookup(sel *host.Select) (*SearchSelect, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byHost[sel]
	return w, ok
}

// claimID probes prefix+0, prefix+1, ... and claims the first unused
// identifier, so repeated attach/destroy cycles never collide.
func (r *Registry) claimID(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := 0; ; n++ {
		id := prefix + strconv.Itoa(n)
		if _, taken := r.usedIDs[id]; !taken {
			r.usedIDs[id] = struct{}{}
			return id
		}
	}
}

func (r *Registry) register(sel *host.Select, w *SearchSelect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHost[sel] = w
}

func (r *Registry) unregister(sel *host.Select, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byHost, sel)
	delete(r.usedIDs, id)
}

// Count returns the number of live instances (for testing).
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byHost)
}
