// Package state provides the reactive primitive the resource services build
// their cached lists on: a current-value cell with callback subscription.
package state

import "sync"

// Cell holds a current value and notifies subscribers on every change.
// Notification is synchronous and in subscription order, so a subscriber
// always observes an optimistic update before the network resolution that
// follows it. Callbacks run under the cell's lock and must not call back
// into the cell.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewCell creates a Cell holding the given initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set publishes a new value to all subscribers.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.notify()
}

// Update applies f to the current value under the lock and publishes the
// result. It returns the published value.
func (c *Cell[T]) Update(f func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = f(c.value)
	c.notify()
	return c.value
}

// Subscribe registers fn to be called on every subsequent publish.
// The returned cancel function removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Cell[T]) notify() {
	for i := 0; i < c.next; i++ {
		if fn, ok := c.subs[i]; ok {
			fn(c.value)
		}
	}
}
