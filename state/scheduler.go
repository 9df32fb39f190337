package state

import "sync"

// Scheduler dispatches subscription callbacks.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using the wrapped function.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// DirectScheduler runs callbacks immediately in the caller goroutine.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// Queue batches callbacks until the owner flushes them, usually once per
// turn of the render loop.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues a callback for later flushing.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	n := len(q.pending)
	q.mu.Unlock()
	return n
}

// Flush runs queued callbacks in order and returns the count.
// Callbacks scheduled while flushing run in the same call.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	total := 0
	for {
		q.mu.Lock()
		pending := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(pending) == 0 {
			return total
		}
		for _, fn := range pending {
			fn()
		}
		total += len(pending)
	}
}
