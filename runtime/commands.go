package runtime

import (
	"context"
	"time"
)

// Command is an intent emitted by a widget and handled by the app.
type Command interface {
	Command()
}

// PostFunc sends a message into the app.
// It returns false when the message queue is full.
type PostFunc func(Message) bool

// Quit signals the application should exit.
type Quit struct{}

func (Quit) Command() {}

// Refresh requests a full redraw.
type Refresh struct{}

func (Refresh) Command() {}

// SendMsg posts a message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps a message in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// Effect runs work in a background goroutine.
// Use the provided context for cancellation and PostFunc to emit messages.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// PushOverlay requests an overlay layer be pushed.
type PushOverlay struct {
	Widget Widget
	Modal  bool
}

func (PushOverlay) Command() {}

// PopOverlay requests the top overlay be dismissed.
type PopOverlay struct{}

func (PopOverlay) Command() {}

// After returns an effect that posts msg once delay has elapsed.
// A non-positive delay posts immediately.
func After(delay time.Duration, msg Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if msg == nil || post == nil {
			return
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		post(msg)
	}}
}

// Every returns an effect that calls fn on a fixed interval and posts the
// result. A nil result is skipped.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if interval <= 0 || fn == nil || post == nil {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if msg := fn(now); msg != nil {
					post(msg)
				}
			}
		}
	}}
}
