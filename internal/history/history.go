// Package history keeps a bounded undo/redo log of building design snapshots.
package history

import (
	"sync"
	"time"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/jonboulle/clockwork"
)

// DefaultMaxStates bounds a history when no limit is given.
const DefaultMaxStates = 50

// Snapshot is one saved design state.
type Snapshot struct {
	State     energy.BuildingDesign `json:"state"`
	Timestamp time.Time             `json:"timestamp"`
}

// History is a linear undo/redo list with a cursor. Saving after an undo
// discards the redo tail; the oldest snapshot is dropped once the limit is hit.
type History struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	maxStates int
	states    []Snapshot
	cursor    int
}

func New(clock clockwork.Clock, maxStates int) *History {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	return &History{clock: clock, maxStates: maxStates, cursor: -1}
}

func (h *History) Save(state energy.BuildingDesign) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < len(h.states)-1 {
		h.states = h.states[:h.cursor+1]
	}
	h.states = append(h.states, Snapshot{State: clone(state), Timestamp: h.clock.Now()})
	if len(h.states) > h.maxStates {
		h.states = h.states[len(h.states)-h.maxStates:]
	}
	h.cursor = len(h.states) - 1
}

// Undo moves the cursor back one step and returns that state.
func (h *History) Undo() (energy.BuildingDesign, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor <= 0 {
		return energy.BuildingDesign{}, false
	}
	h.cursor--
	return clone(h.states[h.cursor].State), true
}

// Redo moves the cursor forward one step and returns that state.
func (h *History) Redo() (energy.BuildingDesign, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.states)-1 {
		return energy.BuildingDesign{}, false
	}
	h.cursor++
	return clone(h.states[h.cursor].State), true
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.states)-1
}

func (h *History) Current() (energy.BuildingDesign, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		return energy.BuildingDesign{}, false
	}
	return clone(h.states[h.cursor].State), true
}

// States returns a copy of every snapshot, oldest first.
func (h *History) States() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Snapshot, len(h.states))
	for i, s := range h.states {
		out[i] = Snapshot{State: clone(s.State), Timestamp: s.Timestamp}
	}
	return out
}

// Compare diffs the snapshots at two positions.
func (h *History) Compare(i, j int) ([]Change, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || j < 0 || i >= len(h.states) || j >= len(h.states) {
		return nil, ErrInvalidIndex
	}
	return Diff(h.states[i].State, h.states[j].State), nil
}

func clone(d energy.BuildingDesign) energy.BuildingDesign {
	if d.Skylight != nil {
		s := *d.Skylight
		d.Skylight = &s
	}
	return d
}
