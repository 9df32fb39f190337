package state

import "testing"

type counter struct {
	Count int
}

func TestSignal_SetAndSubscribe(t *testing.T) {
	sig := NewSignal(1)
	calls := 0

	unsub := sig.Subscribe(func() {
		calls++
	})

	if calls != 0 {
		t.Fatalf("expected no calls before set, got %d", calls)
	}
	if !sig.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call after set, got %d", calls)
	}

	unsub()
	sig.Set(3)
	if calls != 1 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
}

func TestSignal_DefaultNotifiesOnIdenticalSet(t *testing.T) {
	value := &counter{}
	sig := NewSignal(value)
	calls := 0
	sig.Subscribe(func() { calls++ })
	if !sig.Set(value) {
		t.Fatalf("expected set without an equal func to report change")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestSignal_SetEqualFunc(t *testing.T) {
	sig := NewSignal(5)
	sig.SetEqualFunc(EqualComparable[int])

	if sig.Set(5) {
		t.Fatalf("expected set of equal value to report no change")
	}
	if !sig.Set(6) {
		t.Fatalf("expected set of new value to report change")
	}
}

func TestSignal_EqualSame(t *testing.T) {
	first := &counter{}
	sig := NewSignal(first)
	sig.SetEqualFunc(EqualSame[*counter])

	if sig.Set(first) {
		t.Fatalf("expected same pointer to report no change")
	}
	if !sig.Set(&counter{}) {
		t.Fatalf("expected new pointer with equal contents to report change")
	}
}

func TestSignal_Update(t *testing.T) {
	sig := NewSignal(1)
	sig.SetEqualFunc(EqualComparable[int])

	if !sig.Update(func(v int) int { return v + 1 }) {
		t.Fatalf("expected update to report change")
	}
	if sig.Get() != 2 {
		t.Fatalf("expected updated value 2, got %d", sig.Get())
	}
	if sig.Update(func(v int) int { return v }) {
		t.Fatalf("expected update of equal value to report no change")
	}
	if sig.Update(nil) {
		t.Fatalf("expected nil update to report no change")
	}
}

func TestSignal_SubscribeWithScheduler(t *testing.T) {
	sig := NewSignal(1)
	queue := NewQueue()
	calls := 0

	sig.SubscribeWithScheduler(queue, func() {
		calls++
	})

	if !sig.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if calls != 0 {
		t.Fatalf("expected callback to be queued, got %d", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}
}

func TestSignal_QueuedCallbackDroppedAfterUnsubscribe(t *testing.T) {
	sig := NewSignal(1)
	queue := NewQueue()
	calls := 0

	unsub := sig.SubscribeWithScheduler(queue, func() {
		calls++
	})
	sig.Set(2)
	unsub()
	queue.Flush()
	if calls != 0 {
		t.Fatalf("expected queued callback to be skipped after unsubscribe, got %d", calls)
	}
}

func TestSignal_ValueVisibleDuringNotify(t *testing.T) {
	sig := NewSignal(counter{Count: 0})
	var seen []int

	sig.Subscribe(func() {
		seen = append(seen, sig.Get().Count)
	})
	sig.Set(counter{Count: 1})

	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("expected listener to observe count 1, got %v", seen)
	}
}

func TestSignal_IdempotentUnsubscribe(t *testing.T) {
	sig := NewSignal(0)
	calls := 0

	unsub := sig.Subscribe(func() { calls++ })
	unsub()
	unsub()
	if n := sig.Listeners(); n != 0 {
		t.Fatalf("expected no listeners, got %d", n)
	}
	sig.Set(1)
	if calls != 0 {
		t.Fatalf("expected no calls after double unsubscribe, got %d", calls)
	}
}

func TestSignal_FanOut(t *testing.T) {
	sig := NewSignal(0)
	counts := make([]int, 3)
	unsubs := make([]func(), 3)
	for i := range counts {
		unsubs[i] = sig.Subscribe(func() { counts[i]++ })
	}

	sig.Set(1)
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("expected subscriber %d notified once, got %d", i, c)
		}
	}

	unsubs[1]()
	sig.Set(2)
	if counts[0] != 2 || counts[1] != 1 || counts[2] != 2 {
		t.Fatalf("unexpected counts after unsubscribing one: %v", counts)
	}
}

func TestSignal_UnsubscribeDuringNotify(t *testing.T) {
	sig := NewSignal(0)
	var order []string
	var unsubSelf, unsubLater func()

	sig.Subscribe(func() { order = append(order, "first") })
	unsubSelf = sig.Subscribe(func() {
		order = append(order, "self")
		unsubSelf()
		unsubLater()
	})
	unsubLater = sig.Subscribe(func() { order = append(order, "later") })
	sig.Subscribe(func() { order = append(order, "last") })

	sig.Set(1)
	want := []string{"first", "self", "last"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}

	order = nil
	sig.Set(2)
	if len(order) != 2 || order[0] != "first" || order[1] != "last" {
		t.Fatalf("expected only remaining listeners, got %v", order)
	}
}

func TestSignal_SubscribeDuringNotify(t *testing.T) {
	sig := NewSignal(0)
	late := 0
	sig.Subscribe(func() {
		sig.Subscribe(func() { late++ })
	})

	sig.Set(1)
	if late != 0 {
		t.Fatalf("expected listener added during notify to wait for the next change, got %d", late)
	}
	sig.Set(2)
	if late != 1 {
		t.Fatalf("expected late listener notified once, got %d", late)
	}
}
