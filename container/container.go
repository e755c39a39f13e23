// Package container implements a minimal synchronous state container:
// a current state, a pure reducer, and a listener registry.
//
// Dispatch runs the reducer and commits the next state before returning, so
// GetState observes the transition synchronously. The container carries no
// effect semantics of its own; the loop package layers those on top.
package container

import "sync"

// Store holds one state value and the reducer that advances it.
// All methods are safe for concurrent use. Listeners are invoked
// synchronously from Dispatch and must not dispatch back into the
// same container.
type Store[S, A any] struct {
	mu        sync.Mutex
	reducer   func(S, A) S
	state     S
	listeners map[int]func()
	nextID    int
}

// New creates a container with the given reducer and initial state.
func New[S, A any](reducer func(S, A) S, initial S) *Store[S, A] {
	return &Store[S, A]{
		reducer:   reducer,
		state:     initial,
		listeners: make(map[int]func()),
	}
}

// GetState returns the most recently committed state.
func (c *Store[S, A]) GetState() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch reduces the current state with action, commits the result, and
// notifies the listeners registered at commit time.
func (c *Store[S, A]) Dispatch(action A) {
	c.mu.Lock()
	c.state = c.reducer(c.state, action)
	notify := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		notify = append(notify, fn)
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
}

// Subscribe registers fn to run after every committed dispatch.
// The returned function removes the registration; calling it more than
// once is harmless.
func (c *Store[S, A]) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// ReplaceReducer swaps the reducer used by subsequent dispatches.
func (c *Store[S, A]) ReplaceReducer(reducer func(S, A) S) {
	c.mu.Lock()
	c.reducer = reducer
	c.mu.Unlock()
}
