package history

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

// Registry holds one History per design ID.
type Registry struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	maxStates int
	byID      map[string]*History
}

func NewRegistry(clock clockwork.Clock, maxStates int) *Registry {
	return &Registry{clock: clock, maxStates: maxStates, byID: make(map[string]*History)}
}

// For returns the history for id, creating it on first use.
func (r *Registry) For(id string) *History {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.byID[id]
	if !ok {
		h = New(r.clock, r.maxStates)
		r.byID[id] = h
	}
	return h
}

// Lookup returns the history for id without creating one.
func (r *Registry) Lookup(id string) (*History, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byID[id]
	return h, ok
}

func (r *Registry) Forget(id string) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *Registry) Reset() {
	r.mu.Lock()
	r.byID = make(map[string]*History)
	r.mu.Unlock()
}
