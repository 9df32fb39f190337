package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/state"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("backend is required")

var discardLogger = slog.New(slog.DiscardHandler)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
	// Logger receives runtime diagnostics. The terminal owns stdout, so the
	// default discards everything.
	Logger *slog.Logger
}

// App runs a widget tree against a terminal backend.
//
// Widgets read external stores during render passes and request new passes
// through the Invalidator when a store changes. Store listeners scheduled
// with StateScheduler run on the app loop between messages.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator
	logger         *slog.Logger
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	running bool
	dirty   bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
		logger:         logger,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	return a.screen
}

// StateQueue returns the app's state queue.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler that runs callbacks on the app loop.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.pendingMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	a.pendingMu.Unlock()
	a.runEffect(effect)
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop, dropping it when the loop is full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		a.logger.Debug("message dropped", "type", fmt.Sprintf("%T", msg))
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.pendingMu.Lock()
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	a.pendingMu.Unlock()
	defer func() {
		taskCancel()
		a.pendingMu.Lock()
		a.taskCtx = nil
		a.taskCancel = nil
		a.pendingMu.Unlock()
	}()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.logger.Info("app started", "width", w, "height", h, "tick", a.tickRate)
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	defer a.screen.SetRoot(nil)

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running = true

	a.startPendingEffects()

	go a.pollEvents(taskCtx)

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.render()
	a.dirty = false

	for a.running {
		var msg Message
		select {
		case <-ctx.Done():
			a.running = false
			a.cancelTasks()
		case msg = <-a.messages:
		case now := <-ticks:
			msg = TickMsg{Time: now}
		}
		if !a.running {
			continue
		}
		a.step(msg)
		if a.dirty {
			a.render()
			a.dirty = false
		}
	}

	a.logger.Info("app stopped", "frames", a.screen.Pass())
	return ctx.Err()
}

// step applies one message: update, queue flush, invalidation bookkeeping.
func (a *App) step(msg Message) {
	if msg == nil {
		return
	}
	if a.update(a, msg) {
		a.dirty = true
	}
	if a.flushQueueIfNeeded(msg) {
		a.dirty = true
	}
	if _, ok := msg.(InvalidateMsg); ok {
		a.invalidator.resetPending()
	}
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		a.cancelTasks()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.runEffect(c)
		return false
	case PushOverlay, PopOverlay:
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents(ctx context.Context) {
	for ctx.Err() == nil {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		if msg := messageFromEvent(ev); msg != nil {
			a.Post(msg)
		}
	}
}

func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		a.flush(buf)
		buf.ClearDirty()
	}
	a.backend.Show()
	a.logger.Debug("render", "pass", a.screen.Pass())
}

func (a *App) flush(buf *Buffer) {
	w, h := buf.Size()
	cells := buf.Cells()
	full := buf.DirtyCount() > w*h/2
	if rect, ok := a.backend.(backend.RectWriter); ok && full {
		rect.SetRect(0, 0, w, h, cells)
		return
	}
	rows, hasRows := a.backend.(backend.RowWriter)
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		row := cells[y*w : (y+1)*w]
		if hasRows {
			rows.SetRow(y, startX, row[startX:endX])
			return
		}
		for x := startX; x < endX; x++ {
			if row[x].Rune != 0 {
				a.backend.SetContent(x, y, row[x].Rune, nil, row[x].Style)
			}
		}
	})
}

func (a *App) taskContext() context.Context {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	if a.taskCtx != nil {
		return a.taskCtx
	}
	return context.Background()
}

func (a *App) cancelTasks() {
	a.pendingMu.Lock()
	cancel := a.taskCancel
	a.pendingMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) runEffect(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	go effect.Run(a.taskContext(), a.tryPost)
}

func (a *App) startPendingEffects() {
	a.pendingMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.pendingMu.Unlock()
	for _, effect := range effects {
		a.runEffect(effect)
	}
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a.stateQueue == nil || !shouldFlushQueue(a.flushPolicy, msg) {
		return false
	}
	a.queueScheduler.resetPending()
	return a.stateQueue.Flush() > 0
}
