package store

import (
	"github.com/tacogips/tmplstore/internal/debug"
)

// Listener is notified with the new state after every dispatch.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store threads state through sequential reducer calls.
// A Store is not safe for concurrent use.
type Store struct {
	reducer   *Reducer
	state     State
	listeners []subscription
	nextID    int
}

// NewStore creates a store. A nil initial state starts from DefaultState.
func NewStore(r *Reducer, initial *State) *Store {
	if r == nil {
		r = defaultReducer
	}
	s := &Store{reducer: r}
	if initial == nil {
		s.state = r.Reduce(nil, nil)
	} else {
		s.state = *initial
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

// Dispatch reduces action into the current state, notifies listeners and
// returns the new snapshot.
func (s *Store) Dispatch(action Action) State {
	if action == nil {
		return s.state
	}

	prev := s.state
	s.state = s.reducer.Reduce(&prev, action)
	debug.Debugw("dispatch",
		"action", action.Type(),
		"templates", s.state.Len(),
		"status", s.state.Status,
	)

	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		l.fn(s.state)
	}
	return s.state
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
