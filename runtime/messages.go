package runtime

import (
	"time"

	"github.com/odvcencio/furry-viewmodels/terminal"
)

// Message represents an event flowing into the app loop.
// Messages come from terminal input, timers, store notifications or
// background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// PasteMsg carries pasted text.
type PasteMsg struct {
	Text string
}

func (PasteMsg) isMessage() {}

// TickMsg is sent on each frame tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg triggers a state queue flush in the update loop.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// messageFromEvent converts a backend event into a message.
func messageFromEvent(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{
			X:      e.X,
			Y:      e.Y,
			Button: e.Button,
			Action: e.Action,
			Alt:    e.Alt,
			Ctrl:   e.Ctrl,
			Shift:  e.Shift,
		}
	case terminal.PasteEvent:
		return PasteMsg{Text: e.Text}
	}
	return nil
}
