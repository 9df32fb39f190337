// Package state provides observable state containers and the glue that lets
// a render loop read them: identity memoization of derived values and a
// subscribe/snapshot bridge.
package state

import (
	"sync"
	"sync/atomic"
)

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// EqualSame compares values with Same.
func EqualSame[T any](a, b T) bool {
	return Same(a, b)
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

type subscriber struct {
	fn        func()
	scheduler Scheduler
	active    atomic.Bool
}

func (s *subscriber) deliver() {
	if s.active.Load() {
		s.fn()
	}
}

// Signal holds a value and notifies subscribers after it changes.
// Listeners are notified in subscription order, after the new value is
// visible to Get.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  []*subscriber
	equal EqualFunc[T]
}

// NewSignal creates a new signal with an initial value. It has no equality
// check, so every Set notifies; use SetEqualFunc to suppress repeats.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	value := s.value
	s.mu.Unlock()
	return value
}

// Set replaces the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	subs := append([]*subscriber(nil), s.subs...)
	s.mu.Unlock()

	notify(subs)
	return true
}

// Update replaces the value using fn.
// fn runs outside the signal lock; Update is not atomic across goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Subscribe registers a listener for change notifications.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
// The returned func removes the listener; it is safe to call more than once
// and from inside a notification.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	sub := &subscriber{fn: fn, scheduler: scheduler}
	sub.active.Store(true)
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		if !sub.active.CompareAndSwap(true, false) {
			return
		}
		s.mu.Lock()
		for i, candidate := range s.subs {
			if candidate == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

// Listeners returns the number of registered listeners.
func (s *Signal[T]) Listeners() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	n := len(s.subs)
	s.mu.Unlock()
	return n
}

func notify(subs []*subscriber) {
	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		if sub.scheduler == nil {
			sub.fn()
			continue
		}
		sub.scheduler.Schedule(sub.deliver)
	}
}
