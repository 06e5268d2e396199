// Package player tracks the play/pause state of each listed record.
//
// Playback itself happens in the browser's audio element; the state here is
// updated optimistically and is what the page renders.
package player

import (
	"errors"
	"sync"
)

// State is the playback state of one row.
type State string

const (
	Paused  State = "paused"
	Playing State = "playing"
)

// Machine is the state of a single row. The zero value is paused.
type Machine struct {
	playing bool
}

// State returns the current state.
func (m *Machine) State() State {
	if m.playing {
		return Playing
	}
	return Paused
}

// Toggle flips between paused and playing and returns the new state.
func (m *Machine) Toggle() State {
	m.playing = !m.playing
	return m.State()
}

// Ended moves a playing row back to paused. It does nothing when paused.
func (m *Machine) Ended() State {
	m.playing = false
	return m.State()
}

// Transition is the outcome of a registry operation. Paused lists rows
// stopped as a side effect, which only happens in exclusive mode.
type Transition struct {
	ID     string   `json:"id"`
	State  State    `json:"state"`
	Paused []string `json:"paused,omitempty"`
}

// ErrUnknownRow is returned when a row's record is not (or no longer) listed.
var ErrUnknownRow = errors.New("unknown player row")

// Registry keeps one Machine per record id. Rows are independent unless the
// registry is exclusive, in which case starting one row pauses the one that
// was playing.
type Registry struct {
	mu        sync.Mutex
	exclusive bool
	known     func(id string) bool
	machines  map[string]*Machine
	active    string
}

// NewRegistry creates a registry; exclusive enables the single-active-row
// mode. known reports whether a record id is listed and is checked under the
// registry lock, so a row forgotten concurrently is never recreated. A nil
// known accepts every id.
func NewRegistry(exclusive bool, known func(id string) bool) *Registry {
	if known == nil {
		known = func(string) bool { return true }
	}
	return &Registry{exclusive: exclusive, known: known, machines: make(map[string]*Machine)}
}

func (r *Registry) machine(id string) *Machine {
	m, ok := r.machines[id]
	if !ok {
		m = &Machine{}
		r.machines[id] = m
	}
	return m
}

// State returns the state of id; unknown ids are paused.
func (r *Registry) State(id string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[id]; ok {
		return m.State()
	}
	return Paused
}

// Toggle flips the row's state.
func (r *Registry) Toggle(id string) (Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known(id) {
		return Transition{}, ErrUnknownRow
	}

	t := Transition{ID: id, State: r.machine(id).Toggle()}
	if !r.exclusive {
		return t, nil
	}
	if t.State == Playing {
		if prev, ok := r.machines[r.active]; ok && r.active != id && prev.State() == Playing {
			prev.Ended()
			t.Paused = []string{r.active}
		}
		r.active = id
	} else if r.active == id {
		r.active = ""
	}
	return t, nil
}

// Ended records that the row reached end of media.
func (r *Registry) Ended(id string) (Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known(id) {
		return Transition{}, ErrUnknownRow
	}
	if r.active == id {
		r.active = ""
	}
	return Transition{ID: id, State: r.machine(id).Ended()}, nil
}

// Forget drops the row, e.g. once its record is deleted.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, id)
	if r.active == id {
		r.active = ""
	}
}

// Reset pauses every row.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines = make(map[string]*Machine)
	r.active = ""
}
