// Package scroll provides a row window and scrollbar for list widgets.
package scroll

import (
	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/runtime"
)

// Window tracks which rows of a list are visible.
type Window struct {
	total  int
	view   int
	offset int
}

// SetTotal updates the number of rows and clamps the offset.
func (w *Window) SetTotal(total int) {
	w.total = max(total, 0)
	w.clamp()
}

// SetView updates the number of visible rows and clamps the offset.
func (w *Window) SetView(view int) {
	w.view = max(view, 0)
	w.clamp()
}

// Total returns the number of rows.
func (w *Window) Total() int {
	return w.total
}

// Offset returns the first visible row.
func (w *Window) Offset() int {
	return w.offset
}

// MaxOffset returns the largest valid offset.
func (w *Window) MaxOffset() int {
	return max(w.total-w.view, 0)
}

// ScrollTo sets the offset, clamped to the valid range.
func (w *Window) ScrollTo(offset int) {
	w.offset = offset
	w.clamp()
}

// ScrollBy moves the offset by delta rows.
func (w *Window) ScrollBy(delta int) {
	w.ScrollTo(w.offset + delta)
}

// Follow scrolls the minimum distance that makes index visible.
func (w *Window) Follow(index int) {
	if w.view == 0 {
		return
	}
	if index < w.offset {
		w.offset = index
	}
	if index >= w.offset+w.view {
		w.offset = index - w.view + 1
	}
	w.clamp()
}

// Visible returns the half-open row range [start, end) on screen.
func (w *Window) Visible() (start, end int) {
	return w.offset, min(w.offset+w.view, w.total)
}

// Overflows reports whether some rows are hidden.
func (w *Window) Overflows() bool {
	return w.total > w.view
}

func (w *Window) clamp() {
	w.offset = min(max(w.offset, 0), w.MaxOffset())
}

// Scrollbar draws a vertical scrollbar for a Window.
type Scrollbar struct {
	Track        backend.Style
	Thumb        backend.Style
	MinThumbSize int
	Chars        ScrollbarChars
}

// ScrollbarChars defines characters used to render the scrollbar.
type ScrollbarChars struct {
	Track rune
	Thumb rune
}

// DefaultScrollbarChars returns ASCII defaults.
func DefaultScrollbarChars() ScrollbarChars {
	return ScrollbarChars{Track: '|', Thumb: '#'}
}

// DefaultScrollbar returns a scrollbar with ASCII chars and default styles.
func DefaultScrollbar() Scrollbar {
	return Scrollbar{
		Track:        backend.DefaultStyle().With(backend.AttrDim),
		Thumb:        backend.DefaultStyle(),
		MinThumbSize: 1,
		Chars:        DefaultScrollbarChars(),
	}
}

// Thumb returns the thumb position and length for a track of the given
// height. The thumb fills the track when nothing is hidden.
func (s Scrollbar) Thumb(w *Window, height int) (pos, length int) {
	if height <= 0 {
		return 0, 0
	}
	if !w.Overflows() {
		return 0, height
	}
	length = height * w.view / w.total
	length = min(max(length, s.MinThumbSize, 1), height)
	if maxOffset := w.MaxOffset(); maxOffset > 0 {
		pos = (height - length) * w.offset / maxOffset
	}
	return pos, length
}

// Draw renders the scrollbar in the single column bounds.
func (s Scrollbar) Draw(buf *runtime.Buffer, bounds runtime.Rect, w *Window) {
	if buf == nil || bounds.Empty() {
		return
	}
	pos, length := s.Thumb(w, bounds.Height)
	for y := 0; y < bounds.Height; y++ {
		ch, style := s.Chars.Track, s.Track
		if y >= pos && y < pos+length {
			ch, style = s.Chars.Thumb, s.Thumb
		}
		buf.Set(bounds.X, bounds.Y+y, ch, style)
	}
}
