package runtime

import (
	"sync"

	"github.com/odvcencio/furry-viewmodels/state"
)

// ExternalStore is a store owned outside the widget tree.
// state.Bridge returns one for any observable container.
type ExternalStore[T any] interface {
	Subscribe(onStoreChange func()) func()
	Snapshot() T
}

// StoreSync keeps a widget in step with an external store.
//
// Reads within one render pass share a single snapshot. Store notifications
// request a new pass only when the snapshot moved away from the value last
// rendered.
type StoreSync[T any] struct {
	store ExternalStore[T]

	mu         sync.Mutex
	invalidate func()
	unsub      func()
	value      T
	hasValue   bool
	pass       uint64
	// reading counts Reads waiting on the store; missed records a
	// notification that arrived while the first value was in flight.
	reading int
	missed  bool
}

// SyncExternalStore creates a StoreSync for store. It does nothing until
// Attach is called, but Read works immediately.
func SyncExternalStore[T any](store ExternalStore[T]) *StoreSync[T] {
	return &StoreSync[T]{store: store}
}

// Attach subscribes to the store. invalidate is called whenever the store
// changes to a value different from the last one read. Attaching again
// replaces the previous subscription.
func (s *StoreSync[T]) Attach(invalidate func()) {
	if s == nil || s.store == nil {
		return
	}
	s.Detach()
	s.mu.Lock()
	s.invalidate = invalidate
	s.mu.Unlock()

	unsub := s.store.Subscribe(s.onStoreChange)

	s.mu.Lock()
	s.unsub = unsub
	s.mu.Unlock()

	// The store may have moved between the last read and the subscription.
	s.onStoreChange()
}

// Detach removes the store subscription. Safe to call more than once.
func (s *StoreSync[T]) Detach() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsub := s.unsub
	s.unsub = nil
	s.invalidate = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Attached reports whether the store subscription is live.
func (s *StoreSync[T]) Attached() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsub != nil
}

// Read returns the store snapshot for the render pass in ctx. The first read
// of a pass is reused by later reads of the same pass. A zero pass always
// reads through.
func (s *StoreSync[T]) Read(ctx RenderContext) T {
	if s == nil || s.store == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	if ctx.Pass != 0 && s.hasValue && s.pass == ctx.Pass {
		v := s.value
		s.mu.Unlock()
		return v
	}
	s.reading++
	s.mu.Unlock()

	v := s.store.Snapshot()

	s.mu.Lock()
	s.reading--
	s.value = v
	s.hasValue = true
	s.pass = ctx.Pass
	missed := s.missed
	s.missed = false
	if missed {
		s.pass = 0
	}
	invalidate := s.invalidate
	s.mu.Unlock()

	if missed && invalidate != nil {
		invalidate()
	}
	return v
}

// Current returns the store's snapshot without touching the pass cache.
func (s *StoreSync[T]) Current() T {
	if s == nil || s.store == nil {
		var zero T
		return zero
	}
	return s.store.Snapshot()
}

func (s *StoreSync[T]) onStoreChange() {
	s.mu.Lock()
	invalidate := s.invalidate
	last := s.value
	hasValue := s.hasValue
	if invalidate != nil && !hasValue && s.reading > 0 {
		// The first read may already hold the old value. Let it request
		// another pass once it stores what it read.
		s.missed = true
	}
	s.mu.Unlock()
	if invalidate == nil || !hasValue {
		return
	}
	if state.Same(s.store.Snapshot(), last) {
		return
	}
	// Force the next read to go to the store even within the same pass.
	s.mu.Lock()
	s.pass = 0
	s.mu.Unlock()
	invalidate()
}
