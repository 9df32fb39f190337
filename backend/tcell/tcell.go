// Package tcell implements backend.Backend on top of tcell.
package tcell

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/terminal"
)

// Backend draws to a tcell screen.
type Backend struct {
	screen  tcell.Screen
	buttons tcell.ButtonMask
	paste   *strings.Builder
}

// New creates a backend for the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing tcell screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the terminal.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	b.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal size.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// SetContent draws one cell.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, convertStyle(style))
}

// SetRow draws a run of cells starting at (startX, y).
// Trailing halves of wide runes are skipped; tcell draws those itself.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		if cell.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, cell.Rune, nil, convertStyle(cell.Style))
	}
}

// SetRect draws a row-major block of cells.
func (b *Backend) SetRect(x, y, width, height int, cells []backend.Cell) {
	if width <= 0 || height <= 0 || len(cells) < width*height {
		return
	}
	for row := 0; row < height; row++ {
		b.SetRow(y+row, x, cells[row*width:(row+1)*width])
	}
}

// Show flushes pending changes to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// PollEvent waits for the next input event.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := b.translate(ev); out != nil {
			return out
		}
	}
}

func (b *Backend) translate(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			b.paste = &strings.Builder{}
			return nil
		}
		if b.paste == nil {
			return nil
		}
		text := b.paste.String()
		b.paste = nil
		return terminal.PasteEvent{Text: text}
	case *tcell.EventKey:
		key := convertKey(e.Key(), e.Rune(), e.Modifiers())
		if b.paste != nil {
			switch key.Key {
			case terminal.KeyRune:
				b.paste.WriteRune(key.Rune)
			case terminal.KeyEnter:
				b.paste.WriteRune('\n')
			case terminal.KeyTab:
				b.paste.WriteRune('\t')
			}
			return nil
		}
		return key
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		buttons := e.Buttons()
		button, action := convertMouse(b.buttons, buttons)
		b.buttons = buttons
		mods := e.Modifiers()
		return terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: button,
			Action: action,
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
	}
	return nil
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyCtrlC:      terminal.KeyCtrlC,
	tcell.KeyCtrlL:      terminal.KeyCtrlL,
}

func convertKey(key tcell.Key, r rune, mods tcell.ModMask) terminal.KeyEvent {
	out := terminal.KeyEvent{
		Key:   terminal.KeyUnknown,
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	if key == tcell.KeyRune {
		out.Key = terminal.KeyRune
		out.Rune = r
		return out
	}
	if mapped, ok := keyMap[key]; ok {
		out.Key = mapped
	}
	return out
}

func convertMouse(prev, next tcell.ButtonMask) (terminal.MouseButton, terminal.MouseAction) {
	switch {
	case next&tcell.WheelUp != 0:
		return terminal.MouseWheelUp, terminal.MousePress
	case next&tcell.WheelDown != 0:
		return terminal.MouseWheelDown, terminal.MousePress
	}
	button := func(mask tcell.ButtonMask) terminal.MouseButton {
		switch {
		case mask&tcell.Button1 != 0:
			return terminal.MouseLeft
		case mask&tcell.Button3 != 0:
			return terminal.MouseMiddle
		case mask&tcell.Button2 != 0:
			return terminal.MouseRight
		}
		return terminal.MouseNone
	}
	switch {
	case next != tcell.ButtonNone && next != prev:
		return button(next), terminal.MousePress
	case next == tcell.ButtonNone && prev != tcell.ButtonNone:
		return button(prev), terminal.MouseRelease
	}
	return button(next), terminal.MouseMove
}

func convertColor(c backend.Color) tcell.Color {
	if c < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

func convertStyle(s backend.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))
	if s.Has(backend.AttrBold) {
		style = style.Bold(true)
	}
	if s.Has(backend.AttrDim) {
		style = style.Dim(true)
	}
	if s.Has(backend.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Has(backend.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Has(backend.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}
