package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/runtime"
	"github.com/odvcencio/furry-viewmodels/state"
)

// DerivedLabel is a single line of text computed from an external store.
// The text derivation is memoized on the store's snapshot, so passes that
// see an unchanged snapshot reuse the previous text.
type DerivedLabel[S any] struct {
	Component
	store     *runtime.StoreSync[S]
	text      *state.Derived[S, string]
	style     backend.Style
	alignment Alignment
}

// NewDerivedLabel creates a label showing fn applied to the store snapshot.
func NewDerivedLabel[S any](store runtime.ExternalStore[S], fn func(S) string) *DerivedLabel[S] {
	return NewDerivedLabelWith(store, state.NewDerived(fn))
}

// NewDerivedLabelWith creates a label over an existing derivation, letting
// several widgets share one memoized computation.
func NewDerivedLabelWith[S any](store runtime.ExternalStore[S], text *state.Derived[S, string]) *DerivedLabel[S] {
	label := &DerivedLabel[S]{
		text:  text,
		style: backend.DefaultStyle(),
	}
	label.store = UseStore(&label.Component, store)
	return label
}

// Text returns the label text for the store's current snapshot.
func (l *DerivedLabel[S]) Text() string {
	return l.text.Call(l.store.Current())
}

// SetStyle sets the label style.
func (l *DerivedLabel[S]) SetStyle(style backend.Style) {
	l.style = style
	l.Invalidate()
}

// SetAlignment sets text alignment.
func (l *DerivedLabel[S]) SetAlignment(align Alignment) {
	l.alignment = align
	l.Invalidate()
}

// Measure returns the size needed for the label.
func (l *DerivedLabel[S]) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.Text()),
		Height: 1,
	})
}

// Render draws the label.
func (l *DerivedLabel[S]) Render(ctx runtime.RenderContext) {
	text := l.text.Call(l.store.Read(ctx))
	writeLine(ctx.Buffer, l.bounds, text, l.alignment, l.style)
	l.ClearInvalidation()
}
