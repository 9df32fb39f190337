package state

// Select reads the current snapshot of source and feeds it through derived.
// derived recomputes only when the snapshot is not the Same as the one it
// saw on its previous call.
func Select[S, O any](source Observable[S], derived *Derived[S, O]) O {
	return derived.Call(Bridge(source).Snapshot())
}
