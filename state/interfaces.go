package state

// Observable is a container holding one current value.
// Get must be synchronous and side-effect free. Listeners carry no payload:
// a notified listener calls Get to read the new value.
type Observable[T any] interface {
	Subscribable
	Get() T
}

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Observable[T]
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}
