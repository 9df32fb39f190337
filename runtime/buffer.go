package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-viewmodels/backend"
)

// Cell represents a single character cell in the buffer.
// A Rune of 0 marks the trailing half of a wide character.
type Cell = backend.Cell

// Buffer is the grid widgets render into during a pass. It records which
// cells changed so the app only flushes those to the backend.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirtyStamp []uint32
	dirtyGen   uint32
	dirtyAll   bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, keeping overlapping content.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if b.cells != nil && w == b.width && h == b.height {
		return
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	for y := 0; y < min(h, b.height); y++ {
		copy(cells[y*w:y*w+min(w, b.width)], b.cells[y*b.width:])
	}
	b.cells = cells
	b.width = w
	b.height = h
	b.dirtyStamp = make([]uint32, w*h)
	b.dirtyGen = 1
	b.MarkAllDirty()
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune at (x, y). Out of bounds writes are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	b.setCell(x, y, Cell{Rune: r, Style: s})
}

func (b *Buffer) setCell(x, y int, cell Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markCellDirty(x, y, idx)
}

// SetString writes s starting at (x, y) and returns the columns used.
// Wide runes take two columns; a wide rune that would be split at the right
// edge is dropped.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > b.width {
			break
		}
		b.setCell(col, y, Cell{Rune: r, Style: style})
		if w == 2 {
			b.setCell(col+1, y, Cell{Rune: 0, Style: style})
		}
		col += w
	}
	return col - x
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clipped := r.Intersection(Rect{Width: b.width, Height: b.height})
	cell := Cell{Rune: ch, Style: s}
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			b.setCell(x, y, cell)
		}
	}
}

// Clear blanks the whole buffer with the default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{Width: b.width, Height: b.height}, ' ', backend.DefaultStyle())
}

// DrawBox draws a single-line border around r.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	b.Set(r.X, r.Y, '┌', s)
	b.Set(right, r.Y, '┐', s)
	b.Set(r.X, bottom, '└', s)
	b.Set(right, bottom, '┘', s)
	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, bottom, '─', s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(right, y, '│', s)
	}
}

// Text returns row y as a string, without the trailing halves of wide runes.
func (b *Buffer) Text(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range b.cells[y*b.width : (y+1)*b.width] {
		if cell.Rune != 0 {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// Cells returns the underlying row-major cell slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

func (b *Buffer) markCellDirty(x, y, idx int) {
	if b.dirtyAll || b.dirtyStamp[idx] == b.dirtyGen {
		return
	}
	b.dirtyStamp[idx] = b.dirtyGen
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	x0 := min(b.dirtyRect.X, x)
	y0 := min(b.dirtyRect.Y, y)
	x1 := max(b.dirtyRect.X+b.dirtyRect.Width, x+1)
	y1 := max(b.dirtyRect.Y+b.dirtyRect.Height, y+1)
	b.dirtyRect = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkAllDirty forces the next flush to redraw every cell.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{Width: b.width, Height: b.height}
}

// ClearDirty resets dirty tracking after a flush.
func (b *Buffer) ClearDirty() {
	b.dirtyAll = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
	b.dirtyGen++
	if b.dirtyGen == 0 {
		clear(b.dirtyStamp)
		b.dirtyGen = 1
	}
}

// IsDirty reports whether any cell changed since the last flush.
func (b *Buffer) IsDirty() bool {
	return b.dirtyAll || b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of changed cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtySpan calls fn for each contiguous run of changed cells per row.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	if !b.IsDirty() {
		return
	}
	if b.dirtyAll {
		for y := 0; y < b.height; y++ {
			fn(y, 0, b.width)
		}
		return
	}
	rect := b.dirtyRect
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		row := y * b.width
		x := rect.X
		for x < rect.X+rect.Width {
			if b.dirtyStamp[row+x] != b.dirtyGen {
				x++
				continue
			}
			start := x
			for x < rect.X+rect.Width && b.dirtyStamp[row+x] == b.dirtyGen {
				x++
			}
			fn(y, start, x)
		}
	}
}
