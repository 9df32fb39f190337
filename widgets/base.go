// Package widgets provides widgets that render values derived from external
// stores.
package widgets

import (
	"sync/atomic"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/runtime"
)

// Alignment controls horizontal placement of a line of text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
// Invalidate may be called from any goroutine; store listeners do.
type Base struct {
	bounds      runtime.Rect
	focused     bool
	needsRender atomic.Bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b == nil {
		return
	}
	if b.bounds != bounds {
		b.bounds = bounds
		b.needsRender.Store(true)
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	if b == nil {
		return
	}
	b.focused = true
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	if b == nil {
		return
	}
	b.focused = false
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	if b == nil {
		return false
	}
	return b.focused
}

// Invalidate marks the widget as needing a render pass.
func (b *Base) Invalidate() {
	if b == nil {
		return
	}
	b.needsRender.Store(true)
}

// NeedsRender reports whether the widget needs to re-render.
func (b *Base) NeedsRender() bool {
	if b == nil {
		return false
	}
	return b.needsRender.Load()
}

// ClearInvalidation clears the render-needed flag.
func (b *Base) ClearInvalidation() {
	if b == nil {
		return
	}
	b.needsRender.Store(false)
}

// truncateString shortens s to maxWidth columns, ending in "..." when cut.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// writeLine draws text on the first row of bounds, clearing the rest of it.
func writeLine(buf *runtime.Buffer, bounds runtime.Rect, text string, align Alignment, style backend.Style) {
	if buf == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	row := bounds.Row(0)
	buf.Fill(row, ' ', style)
	text = truncateString(text, row.Width)
	x := row.X
	switch gap := row.Width - runewidth.StringWidth(text); align {
	case AlignCenter:
		x += gap / 2
	case AlignRight:
		x += gap
	}
	buf.SetString(x, row.Y, text, style)
}
