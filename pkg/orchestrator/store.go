package orchestrator

import (
	"sync"
)

// Listener receives the notices a dispatched event produced, with the
// states around that dispatch.
type Listener func(e Event, n Notice, before, after State)

// Store holds the current State of one session and applies events to it one
// at a time.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l for notices of every later dispatch.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch reduces e into the stored state and returns the states around
// the transition. Listeners run after the store is unlocked.
func (s *Store) Dispatch(e Event) (before, after State) {
	s.mu.Lock()
	before = s.state
	after = Reduce(before, e)
	s.state = after
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, n := range after.notices {
		for _, l := range listeners {
			l(e, n, before, after)
		}
	}
	return before, after
}
