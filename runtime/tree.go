package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
// Store subscriptions are attached in Mount and released in Unmount.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when removed.
type Unbindable interface {
	Unbind()
}

// MountTree calls Mount on widgets that implement Lifecycle, parents first.
func MountTree(root Widget) {
	walkPreOrder(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree calls Unmount on widgets that implement Lifecycle, children first.
func UnmountTree(root Widget) {
	walkPostOrder(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

// BindTree calls Bind on widgets that implement Bindable.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	walkPreOrder(root, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	})
}

// UnbindTree calls Unbind on widgets that implement Unbindable.
func UnbindTree(root Widget) {
	walkPostOrder(root, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

func walkPreOrder(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	fn(w)
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walkPreOrder(child, fn)
		}
	}
}

func walkPostOrder(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walkPostOrder(child, fn)
		}
	}
	fn(w)
}
