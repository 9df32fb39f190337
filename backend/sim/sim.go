// Package sim provides an in-memory backend for headless runs and tests.
package sim

import (
	"strings"
	"sync"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/terminal"
)

const eventBuffer = 256

// Backend is a terminal that draws into memory and reads injected events.
// All methods are safe for concurrent use.
type Backend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []backend.Cell
	shows  int
	closed bool
	events chan terminal.Event
}

// New creates a simulated terminal of the given size.
func New(width, height int) *Backend {
	b := &Backend{events: make(chan terminal.Event, eventBuffer)}
	b.resize(width, height)
	return b
}

// Init prepares the backend.
func (b *Backend) Init() error {
	return nil
}

// Fini closes the event stream. PollEvent returns nil afterwards.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

// Size returns the terminal size.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// HideCursor is a no-op.
func (b *Backend) HideCursor() {}

// SetContent stores one cell. Combining runes are dropped.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = backend.Cell{Rune: mainc, Style: style}
}

// SetRow writes a run of cells starting at (x, y).
func (b *Backend) SetRow(y, x int, cells []backend.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return
	}
	for i, cell := range cells {
		if cx := x + i; cx >= 0 && cx < b.width && cell.Rune != 0 {
			b.cells[y*b.width+cx] = cell
		}
	}
}

// Show counts a presented frame.
func (b *Backend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// Shows returns the number of presented frames.
func (b *Backend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// PollEvent blocks until an event is injected or the backend is finalized.
func (b *Backend) PollEvent() terminal.Event {
	ev, ok := <-b.events
	if !ok {
		return nil
	}
	return ev
}

// Inject queues an input event. It reports false once the backend is
// finalized or the queue is full.
func (b *Backend) Inject(ev terminal.Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || ev == nil {
		return false
	}
	select {
	case b.events <- ev:
		return true
	default:
		return false
	}
}

// InjectKey queues a non-rune key press.
func (b *Backend) InjectKey(key terminal.Key) bool {
	return b.Inject(terminal.KeyEvent{Key: key})
}

// InjectRune queues a rune key press.
func (b *Backend) InjectRune(r rune) bool {
	return b.Inject(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
}

// InjectString queues one key press per rune of s.
func (b *Backend) InjectString(s string) bool {
	for _, r := range s {
		if !b.InjectRune(r) {
			return false
		}
	}
	return true
}

// InjectPaste queues a bracketed paste.
func (b *Backend) InjectPaste(text string) bool {
	return b.Inject(terminal.PasteEvent{Text: text})
}

// Resize changes the terminal size and queues a resize event.
func (b *Backend) Resize(width, height int) bool {
	b.mu.Lock()
	b.resize(width, height)
	b.mu.Unlock()
	return b.Inject(terminal.ResizeEvent{Width: width, Height: height})
}

func (b *Backend) resize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
	b.cells = make([]backend.Cell, b.width*b.height)
	for i := range b.cells {
		b.cells[i] = backend.Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
}

// CaptureRow returns row y with trailing spaces removed.
func (b *Backend) CaptureRow(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.row(y)
}

func (b *Backend) row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range b.cells[y*b.width : (y+1)*b.width] {
		if cell.Rune != 0 {
			sb.WriteRune(cell.Rune)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Capture returns every row joined by newlines.
func (b *Backend) Capture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.row(y)
	}
	return strings.Join(rows, "\n")
}

// ContainsText reports whether text appears on a single row.
func (b *Backend) ContainsText(text string) bool {
	x, _ := b.FindText(text)
	return x >= 0
}

// FindText returns the cell position of text, or (-1, -1).
func (b *Backend) FindText(text string) (x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := 0; y < b.height; y++ {
		row := []rune(b.row(y))
		needle := []rune(text)
		for i := 0; i+len(needle) <= len(row); i++ {
			if string(row[i:i+len(needle)]) == text {
				return i, y
			}
		}
	}
	return -1, -1
}
