package state

import "sync"

type schedulable interface {
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Subscriptions collects unsubscribe callbacks so an owner can release all of
// them at once, typically on unmount.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
	sched  Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	return scheduler
}

// Add tracks an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Len returns the number of tracked callbacks.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	n := len(s.unsubs)
	s.mu.Unlock()
	return n
}

// Subscribe registers a synchronous listener and tracks the unsubscribe.
func (s *Subscriptions) Subscribe(sub Subscribable, fn func()) {
	s.SubscribeWithScheduler(sub, nil, fn)
}

// Observe registers a listener using the default scheduler.
func (s *Subscriptions) Observe(sub Subscribable, fn func()) {
	if s == nil {
		return
	}
	s.SubscribeWithScheduler(sub, s.Scheduler(), fn)
}

// SubscribeWithScheduler registers a listener using a scheduler and tracks it.
// Sources that cannot schedule fall back to synchronous delivery.
func (s *Subscriptions) SubscribeWithScheduler(sub Subscribable, scheduler Scheduler, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	var unsub func()
	if sched, ok := sub.(schedulable); ok && scheduler != nil {
		unsub = sched.SubscribeWithScheduler(scheduler, fn)
	} else {
		unsub = sub.Subscribe(fn)
	}
	s.Add(unsub)
}

// Clear unsubscribes all tracked callbacks.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}
