package widgets

import (
	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/runtime"
	"github.com/odvcencio/furry-viewmodels/scroll"
	"github.com/odvcencio/furry-viewmodels/state"
	"github.com/odvcencio/furry-viewmodels/terminal"
)

// DerivedList renders rows derived from an external store and keeps a
// keyboard selection over them.
//
// The row slice is produced by a memoized derivation of the snapshot.
// Keep the derivation pure: it runs again only when the snapshot changes
// identity.
type DerivedList[S, T any] struct {
	Component
	store         *runtime.StoreSync[S]
	items         *state.Derived[S, []T]
	format        func(item T) string
	selected      int
	window        scroll.Window
	scrollbar     *scroll.Scrollbar
	onSelect      func(index int, item T)
	style         backend.Style
	selectedStyle backend.Style
}

// NewDerivedList creates a list over items(snapshot), one row per item.
func NewDerivedList[S, T any](store runtime.ExternalStore[S], items func(S) []T, format func(T) string) *DerivedList[S, T] {
	return NewDerivedListWith(store, state.NewDerived(items), format)
}

// NewDerivedListWith creates a list over an existing derivation.
func NewDerivedListWith[S, T any](store runtime.ExternalStore[S], items *state.Derived[S, []T], format func(T) string) *DerivedList[S, T] {
	list := &DerivedList[S, T]{
		items:         items,
		format:        format,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().With(backend.AttrReverse),
	}
	list.store = UseStore(&list.Component, store)
	return list
}

// OnSelect registers a handler called when Enter is pressed on a row.
func (l *DerivedList[S, T]) OnSelect(fn func(index int, item T)) {
	l.onSelect = fn
}

// ShowScrollbar draws bar in the rightmost column whenever rows overflow.
// A nil bar hides it.
func (l *DerivedList[S, T]) ShowScrollbar(bar *scroll.Scrollbar) {
	l.scrollbar = bar
	l.Invalidate()
}

// Offset returns the first visible row.
func (l *DerivedList[S, T]) Offset() int {
	return l.window.Offset()
}

// SetStyles sets the row and selected-row styles.
func (l *DerivedList[S, T]) SetStyles(style, selected backend.Style) {
	l.style = style
	l.selectedStyle = selected
	l.Invalidate()
}

// Items returns the rows for the store's current snapshot.
func (l *DerivedList[S, T]) Items() []T {
	return l.items.Call(l.store.Current())
}

// Measure returns the desired size.
func (l *DerivedList[S, T]) Measure(constraints runtime.Constraints) runtime.Size {
	height := min(len(l.Items()), constraints.MaxHeight)
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

// Render draws the visible rows.
func (l *DerivedList[S, T]) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if ctx.Buffer == nil || bounds.Empty() {
		return
	}
	items := l.items.Call(l.store.Read(ctx))
	ctx.Buffer.Fill(bounds, ' ', l.style)
	l.selected = clampIndex(l.selected, len(items))
	l.window.SetView(bounds.Height)
	l.window.SetTotal(len(items))
	l.window.Follow(l.selected)

	rows := bounds
	if l.scrollbar != nil && l.window.Overflows() && bounds.Width > 1 {
		rows.Width--
		l.scrollbar.Draw(ctx.Buffer, runtime.Rect{X: rows.X + rows.Width, Y: rows.Y, Width: 1, Height: rows.Height}, &l.window)
	}
	start, end := l.window.Visible()
	for index := start; index < end; index++ {
		style := l.style
		if index == l.selected {
			style = l.selectedStyle
		}
		writeLine(ctx.Buffer, rows.Row(index-start), l.formatItem(items[index]), AlignLeft, style)
	}
	l.ClearInvalidation()
}

// HandleMessage moves the selection and reports Enter to OnSelect.
// The mouse wheel moves the selection and a left click selects the row
// under the pointer.
func (l *DerivedList[S, T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.KeyMsg:
		return l.handleKey(m)
	case runtime.MouseMsg:
		return l.handleMouse(m)
	}
	return runtime.Unhandled()
}

func (l *DerivedList[S, T]) handleMouse(m runtime.MouseMsg) runtime.HandleResult {
	if !l.bounds.Contains(m.X, m.Y) || m.Action != terminal.MousePress {
		return runtime.Unhandled()
	}
	count := len(l.Items())
	if count == 0 {
		return runtime.Unhandled()
	}
	switch m.Button {
	case terminal.MouseWheelUp:
		l.SetSelected(l.selected - 1)
	case terminal.MouseWheelDown:
		l.SetSelected(l.selected + 1)
	case terminal.MouseLeft:
		index := l.window.Offset() + m.Y - l.bounds.Y
		if index >= count {
			return runtime.Unhandled()
		}
		l.SetSelected(index)
		l.Services.Logger().Debug("list row clicked", "index", index)
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func (l *DerivedList[S, T]) handleKey(key runtime.KeyMsg) runtime.HandleResult {
	items := l.Items()
	if len(items) == 0 {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyUp:
		l.SetSelected(l.selected - 1)
	case terminal.KeyDown:
		l.SetSelected(l.selected + 1)
	case terminal.KeyPageUp:
		l.SetSelected(l.selected - max(l.bounds.Height, 1))
	case terminal.KeyPageDown:
		l.SetSelected(l.selected + max(l.bounds.Height, 1))
	case terminal.KeyHome:
		l.SetSelected(0)
	case terminal.KeyEnd:
		l.SetSelected(len(items) - 1)
	case terminal.KeyEnter:
		index := clampIndex(l.selected, len(items))
		l.Services.Logger().Debug("list row chosen", "index", index)
		if l.onSelect != nil {
			l.onSelect(index, items[index])
		}
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

// SetSelected moves the selection, clamped to the current rows.
func (l *DerivedList[S, T]) SetSelected(index int) {
	l.selected = clampIndex(index, len(l.Items()))
	l.Invalidate()
}

// SelectedIndex returns the current selection index.
func (l *DerivedList[S, T]) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the selected row, if any.
func (l *DerivedList[S, T]) SelectedItem() (T, bool) {
	var zero T
	items := l.Items()
	if l.selected < 0 || l.selected >= len(items) {
		return zero, false
	}
	return items[l.selected], true
}

func (l *DerivedList[S, T]) formatItem(item T) string {
	if l.format == nil {
		return ""
	}
	return l.format(item)
}

func clampIndex(index, count int) int {
	if count == 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
