package widgets

import (
	"github.com/odvcencio/furry-viewmodels/runtime"
	"github.com/odvcencio/furry-viewmodels/state"
)

type storeAttachment interface {
	Attach(invalidate func())
	Detach()
}

// Component is a base widget with bound services, subscriptions and
// external stores.
//
// Stores registered with UseStore are subscribed while the component is
// mounted. A store change invalidates the component and requests a render
// pass from the app.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions

	stores  []storeAttachment
	mounted bool
}

// Bind attaches app services to the component.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
}

// Unbind releases app services and subscriptions.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Mount subscribes every store registered with UseStore.
func (c *Component) Mount() {
	c.mounted = true
	for _, store := range c.stores {
		store.Attach(c.Invalidate)
	}
}

// Unmount unsubscribes every store registered with UseStore.
func (c *Component) Unmount() {
	c.mounted = false
	for _, store := range c.stores {
		store.Detach()
	}
}

// Mounted reports whether the component is mounted.
func (c *Component) Mounted() bool {
	return c.mounted
}

// Invalidate marks the component dirty and requests a render pass.
func (c *Component) Invalidate() {
	c.Base.Invalidate()
	c.Services.Invalidate()
}

// Observe registers a subscription using the default scheduler.
func (c *Component) Observe(sub state.Subscribable, fn func()) {
	c.Subs.Observe(sub, fn)
}

// UseStore ties an external store to the component's lifecycle and returns
// the handle to read it with during Render.
func UseStore[T any](c *Component, store runtime.ExternalStore[T]) *runtime.StoreSync[T] {
	sync := runtime.SyncExternalStore(store)
	c.stores = append(c.stores, sync)
	if c.mounted {
		sync.Attach(c.Invalidate)
	}
	return sync
}
