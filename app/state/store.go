// Package state provides an observable value holder.
//
// A Store holds one snapshot. Writers replace the snapshot wholesale and every
// subscriber is then called synchronously, in subscription order, with the new
// value. Stored values are treated as immutable: callers that hand out slices
// must copy them first.
package state

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Store is a concurrency-safe observable snapshot of T.
type Store[T any] struct {
	// writeMu serialises Set/Update together with their broadcast so
	// subscribers observe snapshots in commit order.
	writeMu sync.Mutex

	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber[T]
}

// New returns a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current snapshot.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the snapshot and notifies subscribers.
// Subscribers must not write to the same store.
func (s *Store[T]) Set(v T) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.value = v
	subs := append([]subscriber[T](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Update computes the next snapshot from the current one and stores it.
func (s *Store[T]) Update(fn func(T) T) T {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	subs := append([]subscriber[T](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn for future changes and returns a function that
// removes it. The current value is not replayed.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers reports how many subscribers are registered.
func (s *Store[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Derive returns a store whose value is always fn applied to src's latest value.
func Derive[T, U any](src *Store[T], fn func(T) U) *Store[U] {
	derived := New(fn(src.Get()))
	src.Subscribe(func(v T) { derived.Set(fn(v)) })
	return derived
}
