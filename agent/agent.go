// Package agent drives an app headlessly for automated tests and scripts.
// It runs the app over a simulated terminal, injects input and reads back
// both the drawn text and the widget tree.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/odvcencio/furry-viewmodels/backend/sim"
	"github.com/odvcencio/furry-viewmodels/runtime"
	"github.com/odvcencio/furry-viewmodels/terminal"
)

// Common errors returned by Agent methods.
var (
	ErrNotRunning = errors.New("app is not running")
	ErrRunning    = errors.New("app is already running")
	ErrTimeout    = errors.New("operation timed out")
)

// Config configures an Agent.
type Config struct {
	// Root is the widget tree to run.
	Root runtime.Widget

	// Width and Height set the terminal dimensions (default 80x24).
	Width, Height int

	// TickRate is passed to the app. Zero disables ticks.
	TickRate time.Duration

	// Timeout bounds every wait. Default is 2s.
	Timeout time.Duration

	// Logger is passed to the app.
	Logger *slog.Logger
}

// Agent runs one app over a simulated terminal.
type Agent struct {
	mu      sync.Mutex
	app     *runtime.App
	sim     *sim.Backend
	timeout time.Duration
	cancel  context.CancelFunc
	done    chan error
}

// New creates an agent. Call Start to run the app.
func New(cfg Config) *Agent {
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	backend := sim.New(width, height)
	return &Agent{
		sim:     backend,
		timeout: timeout,
		app: runtime.NewApp(runtime.AppConfig{
			Backend:  backend,
			Root:     cfg.Root,
			TickRate: cfg.TickRate,
			Logger:   cfg.Logger,
		}),
	}
}

// App returns the driven app.
func (a *Agent) App() *runtime.App {
	return a.app
}

// Backend returns the simulated terminal.
func (a *Agent) Backend() *sim.Backend {
	return a.sim
}

// Start runs the app in the background and waits for the first frame.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.done != nil {
		a.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	a.cancel = cancel
	a.done = done
	a.mu.Unlock()

	go func() { done <- a.app.Run(ctx) }()
	return a.waitUntil(func() bool { return a.sim.Shows() > 0 }, "first frame")
}

// Stop cancels the app and waits for it to exit.
func (a *Agent) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if done == nil {
		return ErrNotRunning
	}
	cancel()
	return a.wait(done)
}

// Wait blocks until the app exits on its own, for example after a Quit
// command.
func (a *Agent) Wait() error {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done == nil {
		return ErrNotRunning
	}
	err := a.wait(done)
	if !errors.Is(err, ErrTimeout) {
		a.mu.Lock()
		a.cancel, a.done = nil, nil
		a.mu.Unlock()
	}
	return err
}

func (a *Agent) wait(done chan error) error {
	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-time.After(a.timeout):
		return fmt.Errorf("waiting for exit: %w", ErrTimeout)
	}
}

// Press sends a rune key press.
func (a *Agent) Press(r rune) {
	a.sim.InjectRune(r)
}

// PressKey sends a non-rune key press.
func (a *Agent) PressKey(key terminal.Key) {
	a.sim.InjectKey(key)
}

// Type sends one key press per rune of text.
func (a *Agent) Type(text string) {
	a.sim.InjectString(text)
}

// Paste sends a bracketed paste.
func (a *Agent) Paste(text string) {
	a.sim.InjectPaste(text)
}

// Resize changes the terminal size.
func (a *Agent) Resize(width, height int) {
	a.sim.Resize(width, height)
}

// WaitForText waits until text is drawn on screen.
func (a *Agent) WaitForText(text string) error {
	return a.waitUntil(func() bool { return a.sim.ContainsText(text) }, fmt.Sprintf("text %q", text))
}

// WaitForNoText waits until text is no longer on screen.
func (a *Agent) WaitForNoText(text string) error {
	return a.waitUntil(func() bool { return !a.sim.ContainsText(text) }, fmt.Sprintf("text %q to clear", text))
}

func (a *Agent) waitUntil(cond func() bool, what string) error {
	deadline := time.Now().Add(a.timeout)
	for !cond() {
		if time.Now().After(deadline) {
			return fmt.Errorf("waiting for %s: %w\n%s", what, ErrTimeout, a.sim.Capture())
		}
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

// ContainsText checks if the given text appears on screen.
func (a *Agent) ContainsText(text string) bool {
	return a.sim.ContainsText(text)
}

// FindText returns the position of text on screen, or (-1, -1) if not found.
func (a *Agent) FindText(text string) (x, y int) {
	return a.sim.FindText(text)
}

// CaptureText returns the raw text content of the screen.
func (a *Agent) CaptureText() string {
	return a.sim.Capture()
}

// Snapshot captures the screen and widget tree. The tree is read on the
// app loop, so the snapshot never observes a half-finished update.
func (a *Agent) Snapshot() (Snapshot, error) {
	a.mu.Lock()
	running := a.done != nil
	a.mu.Unlock()
	if !running {
		return Snapshot{}, ErrNotRunning
	}

	result := make(chan Snapshot, 1)
	a.app.StateScheduler().Schedule(func() {
		result <- collect(a.app.Screen())
	})
	select {
	case snap := <-result:
		snap.Text = a.sim.Capture()
		return snap, nil
	case <-time.After(a.timeout):
		return Snapshot{}, fmt.Errorf("snapshot: %w", ErrTimeout)
	}
}

// FindByType returns the widgets whose type name contains name.
func (s Snapshot) FindByType(name string) []WidgetInfo {
	var out []WidgetInfo
	walkInfo(s.Widgets, func(w WidgetInfo) {
		if strings.Contains(w.Type, name) {
			out = append(out, w)
		}
	})
	return out
}

// FindByText returns the first widget whose text contains text.
func (s Snapshot) FindByText(text string) (WidgetInfo, bool) {
	var found WidgetInfo
	ok := false
	walkInfo(s.Widgets, func(w WidgetInfo) {
		if !ok && w.Text != "" && strings.Contains(w.Text, text) {
			found, ok = w, true
		}
	})
	return found, ok
}

func walkInfo(widgets []WidgetInfo, fn func(WidgetInfo)) {
	for _, w := range widgets {
		fn(w)
		walkInfo(w.Children, fn)
	}
}
