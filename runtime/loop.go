package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/furry-viewmodels/state"
)

// wakeup posts one message to the app loop and suppresses repeats until the
// loop acknowledges it.
type wakeup struct {
	post    func(Message) bool
	msg     Message
	pending atomic.Bool
}

func (w *wakeup) fire() {
	if w.post == nil || !w.pending.CompareAndSwap(false, true) {
		return
	}
	if !w.post(w.msg) {
		w.pending.Store(false)
	}
}

func (w *wakeup) ack() {
	w.pending.Store(false)
}

// Invalidator requests render passes. Requests made before the loop has
// handled the previous InvalidateMsg collapse into it.
type Invalidator struct {
	wake wakeup
}

// NewInvalidator creates an invalidator wired to a post function.
func NewInvalidator(post func(Message) bool) *Invalidator {
	i := &Invalidator{}
	i.wake.post = post
	i.wake.msg = InvalidateMsg{}
	return i
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i == nil {
		return
	}
	i.wake.fire()
}

// Schedule runs fn and requests a render pass, so listeners subscribed with
// this scheduler always repaint after they run.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) resetPending() {
	if i == nil {
		return
	}
	i.wake.ack()
}

// QueueScheduler defers store listeners to the app loop: callbacks are
// queued and a single QueueFlushMsg wakes the loop to run them.
type QueueScheduler struct {
	queue *state.Queue
	wake  wakeup
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	s := &QueueScheduler{queue: queue}
	s.wake.post = post
	s.wake.msg = QueueFlushMsg{}
	return s
}

// Schedule enqueues fn and wakes the loop.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.fire()
}

func (s *QueueScheduler) resetPending() {
	if s == nil {
		return
	}
	s.wake.ack()
}

// QueueFlushPolicy configures which messages flush the app's state queue.
// A QueueFlushMsg always flushes.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes after every message.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes after every message except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only after TickMsg.
	FlushOnTick
	// FlushManual flushes only after QueueFlushMsg.
	FlushManual
)

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, isTick := msg.(TickMsg)
	switch policy {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !isTick
	case FlushOnTick:
		return isTick
	default:
		return true
	}
}
