package state

// Computed is a read-only view of a source through a memoized derivation.
// It relays the source's notifications and derives lazily on Get, so a
// derived value can itself be bridged or observed. It keeps no state beyond
// the derivation's cache slot.
type Computed[S, O any] struct {
	source  Observable[S]
	derived *Derived[S, O]
}

// NewComputed creates a view of source through derived.
func NewComputed[S, O any](source Observable[S], derived *Derived[S, O]) *Computed[S, O] {
	return &Computed[S, O]{source: source, derived: derived}
}

// NewComputedFunc creates a view of source through a new derivation of fn.
func NewComputedFunc[S, O any](source Observable[S], fn func(S) O) *Computed[S, O] {
	return NewComputed(source, NewDerived(fn))
}

// Get returns the derived value for the source's current state.
func (c *Computed[S, O]) Get() O {
	if c == nil || c.source == nil {
		var zero O
		return zero
	}
	return Select(c.source, c.derived)
}

// Subscribe registers a listener for source changes.
func (c *Computed[S, O]) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return Bridge(c.source).Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler when the
// source supports one. If scheduler is nil, callbacks run synchronously.
func (c *Computed[S, O]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if c == nil || c.source == nil || fn == nil {
		return func() {}
	}
	if sched, ok := c.source.(schedulable); ok && scheduler != nil {
		return sched.SubscribeWithScheduler(scheduler, fn)
	}
	return c.Subscribe(fn)
}
