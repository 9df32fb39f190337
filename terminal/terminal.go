// Package terminal defines backend-neutral input events.
package terminal

// Event is an input event produced by a backend.
type Event interface {
	isEvent()
}

// Key identifies a non-rune key. KeyRune means the event carries a rune.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyBacktab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyCtrlC
	KeyCtrlL
	KeyUnknown
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// MouseEvent is a mouse input event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) isEvent() {}

// PasteEvent carries text from bracketed paste.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}
