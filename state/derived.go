package state

import "sync"

// slot is a single-entry cache keyed by input identity.
type slot[I, O any] struct {
	mu     sync.Mutex
	ready  bool
	input  I
	output O
}

func (s *slot[I, O]) load(input I) (O, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready && Same(s.input, input) {
		return s.output, true
	}
	var zero O
	return zero, false
}

func (s *slot[I, O]) store(input I, output O) {
	s.mu.Lock()
	s.input = input
	s.output = output
	s.ready = true
	s.mu.Unlock()
}

// Derived memoizes a pure function on the identity of its most recent input.
//
// Only one entry is kept: calling with the same input again returns the
// cached output, any other input recomputes and replaces it. Inputs are
// compared with Same, so an immutable state value that is replaced on every
// change is the intended key. fn must be pure.
//
// Create one Derived per logical derivation and reuse it across renders.
type Derived[I, O any] struct {
	fn   func(I) O
	slot slot[I, O]
}

// NewDerived wraps fn with single-slot memoization. It panics if fn is nil.
func NewDerived[I, O any](fn func(I) O) *Derived[I, O] {
	if fn == nil {
		panic("state: NewDerived with nil func")
	}
	return &Derived[I, O]{fn: fn}
}

// Memo wraps fn with single-slot memoization and returns the memoized func.
func Memo[I, O any](fn func(I) O) func(I) O {
	return NewDerived(fn).Call
}

// Call returns fn(input), reusing the previous result when input is the
// same as the previous input.
// A panic in fn propagates and leaves the cache unchanged.
func (d *Derived[I, O]) Call(input I) O {
	if d == nil {
		var zero O
		return zero
	}
	if output, ok := d.slot.load(input); ok {
		return output
	}
	output := d.fn(input)
	d.slot.store(input, output)
	return output
}

// Func returns Call as a plain function value.
func (d *Derived[I, O]) Func() func(I) O {
	return d.Call
}

// Fallible memoizes a function that can fail.
// Errors are returned to the caller and never cached.
type Fallible[I, O any] struct {
	fn   func(I) (O, error)
	slot slot[I, O]
}

// NewFallible wraps fn with single-slot memoization of successful results.
// It panics if fn is nil.
func NewFallible[I, O any](fn func(I) (O, error)) *Fallible[I, O] {
	if fn == nil {
		panic("state: NewFallible with nil func")
	}
	return &Fallible[I, O]{fn: fn}
}

// Call returns fn(input), reusing the last successful result for the same input.
func (f *Fallible[I, O]) Call(input I) (O, error) {
	if f == nil {
		var zero O
		return zero, nil
	}
	if output, ok := f.slot.load(input); ok {
		return output, nil
	}
	output, err := f.fn(input)
	if err != nil {
		return output, err
	}
	f.slot.store(input, output)
	return output, nil
}
