// Package backend defines the terminal surface the runtime draws to.
package backend

import "github.com/odvcencio/furry-viewmodels/terminal"

// Backend is a terminal device the runtime renders cells into.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	HideCursor()
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	// PollEvent blocks until an input event is available.
	// It returns nil once the backend has been finalized.
	PollEvent() terminal.Event
}

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Color is a terminal palette index. ColorDefault leaves the terminal default.
type Color int32

// ColorDefault keeps the terminal's own color.
const ColorDefault Color = -1

// Palette colors.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// AttrMask is a set of text attributes.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style describes how a cell is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attrs      AttrMask
}

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns s with the foreground color replaced.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns s with the background color replaced.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// With returns s with attrs added.
func (s Style) With(attrs AttrMask) Style {
	s.Attrs |= attrs
	return s
}

// Has reports whether all attrs are set.
func (s Style) Has(attrs AttrMask) bool {
	return s.Attrs&attrs == attrs
}

// RowWriter is implemented by backends that accept a run of cells in one call.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}

// RectWriter is implemented by backends that accept a block of cells in one
// call. cells is row-major with width*height entries.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}
