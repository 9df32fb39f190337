package state

import "sync"

// ExternalStore is the subscribe/snapshot pair a render loop syncs against.
// It passes straight through to its source and holds no state of its own.
type ExternalStore[T any] struct {
	source Observable[T]
}

// Bridge adapts an observable container to an ExternalStore.
func Bridge[T any](source Observable[T]) ExternalStore[T] {
	return ExternalStore[T]{source: source}
}

// Subscribe registers onStoreChange with the source and returns a func that
// removes exactly that registration. The returned func is safe to call more
// than once. onStoreChange receives no payload; callers read Snapshot.
func (s ExternalStore[T]) Subscribe(onStoreChange func()) func() {
	if s.source == nil || onStoreChange == nil {
		return func() {}
	}
	unsub := s.source.Subscribe(onStoreChange)
	if unsub == nil {
		return func() {}
	}
	var once sync.Once
	return func() {
		once.Do(unsub)
	}
}

// Snapshot returns the source's current value.
// Repeated calls without an intervening change return the same value.
func (s ExternalStore[T]) Snapshot() T {
	if s.source == nil {
		var zero T
		return zero
	}
	return s.source.Get()
}

// Source returns the bridged container.
func (s ExternalStore[T]) Source() Observable[T] {
	return s.source
}
