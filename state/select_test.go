package state

import "testing"

type board struct {
	Items []int
}

func TestSelect_RecomputesOnSnapshotChange(t *testing.T) {
	model := NewSignal(&board{Items: []int{1, 2}})
	calls := 0
	count := NewDerived(func(b *board) int {
		calls++
		return len(b.Items)
	})

	if got := Select[*board](model, count); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := Select[*board](model, count); got != 2 || calls != 1 {
		t.Fatalf("expected cached 2 with 1 call, got %d with %d calls", got, calls)
	}

	model.Set(&board{Items: []int{1, 2, 3}})
	if got := Select[*board](model, count); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls after change, got %d", calls)
	}
}

func TestSelect_SharedDerivationAcrossSources(t *testing.T) {
	shared := &board{Items: []int{1}}
	a := NewSignal(shared)
	b := NewSignal(shared)
	calls := 0
	count := NewDerived(func(b *board) int {
		calls++
		return len(b.Items)
	})

	Select[*board](a, count)
	Select[*board](b, count)
	if calls != 1 {
		t.Fatalf("expected identical snapshots from two sources to share the slot, got %d calls", calls)
	}
}

func TestComputed_GetAndSubscribe(t *testing.T) {
	model := NewSignal(&board{Items: []int{1}})
	calls := 0
	total := NewComputedFunc[*board](model, func(b *board) int {
		calls++
		sum := 0
		for _, v := range b.Items {
			sum += v
		}
		return sum
	})

	notified := 0
	unsub := total.Subscribe(func() { notified++ })

	if got := total.Get(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	total.Get()
	if calls != 1 {
		t.Fatalf("expected lazy derivation once, got %d", calls)
	}

	model.Set(&board{Items: []int{1, 2}})
	if notified != 1 {
		t.Fatalf("expected relayed notification, got %d", notified)
	}
	if got := total.Get(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	unsub()
	unsub()
	model.Set(&board{})
	if notified != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", notified)
	}
}

func TestComputed_Scheduler(t *testing.T) {
	model := NewSignal(&board{})
	queue := NewQueue()
	view := NewComputedFunc[*board](model, func(b *board) int { return len(b.Items) })

	calls := 0
	view.SubscribeWithScheduler(queue, func() { calls++ })
	model.Set(&board{Items: []int{1}})
	if calls != 0 {
		t.Fatalf("expected queued notification, got %d", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 flushed callback, got %d", flushed)
	}
	if got := view.Get(); got != 1 {
		t.Fatalf("expected 1 after flush, got %d", got)
	}
}

func TestComputed_Chained(t *testing.T) {
	model := NewSignal(&board{Items: []int{3, 4}})
	items := NewComputedFunc[*board](model, func(b *board) []int { return b.Items })
	calls := 0
	length := NewComputedFunc[[]int](items, func(v []int) int {
		calls++
		return len(v)
	})

	length.Get()
	model.Set(&board{Items: model.Get().Items})
	if got := length.Get(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if calls != 1 {
		t.Fatalf("expected downstream derivation to skip unchanged slice, got %d calls", calls)
	}
}
