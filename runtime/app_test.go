package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/odvcencio/furry-viewmodels/backend"
	"github.com/odvcencio/furry-viewmodels/backend/sim"
	"github.com/odvcencio/furry-viewmodels/state"
)

type failingBackend struct {
	*sim.Backend
	err error
}

func (b failingBackend) Init() error { return b.err }

// counterView reads a counter store and bumps it on '+'.
type counterView struct {
	sig      *state.Signal[*countState]
	sync     *StoreSync[*countState]
	services Services
}

func newCounterView(sig *state.Signal[*countState]) *counterView {
	return &counterView{
		sig:  sig,
		sync: SyncExternalStore[*countState](state.Bridge[*countState](sig)),
	}
}

func (v *counterView) Measure(c Constraints) Size { return c.MaxSize() }
func (v *counterView) Layout(bounds Rect)         {}
func (v *counterView) Bind(services Services)     { v.services = services }
func (v *counterView) Mount()                     { v.sync.Attach(v.services.Invalidate) }
func (v *counterView) Unmount()                   { v.sync.Detach() }

func (v *counterView) Render(ctx RenderContext) {
	s := v.sync.Read(ctx)
	ctx.Buffer.SetString(0, 0, "count="+string(rune('0'+s.Count)), backend.DefaultStyle())
}

func (v *counterView) HandleMessage(msg Message) HandleResult {
	k, ok := msg.(KeyMsg)
	if !ok {
		return Unhandled()
	}
	switch k.Rune {
	case '+':
		v.sig.Update(func(s *countState) *countState { return &countState{Count: s.Count + 1} })
		return Unhandled()
	case 'q':
		return WithCommand(Quit{})
	}
	return Unhandled()
}

func TestApp_RunRendersStoreChanges(t *testing.T) {
	be := sim.New(10, 2)
	sig := state.NewSignal(&countState{})
	view := newCounterView(sig)
	app := NewApp(AppConfig{Backend: be, Root: view})

	be.InjectString("++")

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for be.CaptureRow(0) != "count=2" {
		select {
		case <-deadline:
			t.Fatalf("expected count=2 on screen, got %q", be.CaptureRow(0))
		case <-time.After(5 * time.Millisecond):
		}
	}
	be.InjectRune('q')

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected app to quit")
	}
	if sig.Listeners() != 0 {
		t.Fatalf("expected store listener to be released, got %d", sig.Listeners())
	}
}

func TestApp_RunRequiresBackend(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
}

func TestApp_RunWrapsInitError(t *testing.T) {
	be := failingBackend{Backend: sim.New(1, 1), err: errors.New("no tty")}
	err := NewApp(AppConfig{Backend: be}).Run(context.Background())
	if err == nil || !errors.Is(err, be.err) {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app := NewApp(AppConfig{Backend: sim.New(4, 1)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected app to stop")
	}
}

func TestApp_HandleCommand_SendMsg(t *testing.T) {
	app := NewApp(AppConfig{})
	msg := ResizeMsg{Width: 10, Height: 5}
	if app.handleCommand(SendMsg{Message: msg}) {
		t.Fatalf("expected SendMsg to not force render")
	}
	select {
	case got := <-app.messages:
		if got != msg {
			t.Fatalf("expected %+v, got %+v", msg, got)
		}
	default:
		t.Fatal("expected message to be posted")
	}
}

type markCommand struct{}

func (markCommand) Command() {}

func TestApp_HandleCommand_Custom(t *testing.T) {
	var seen []Command
	app := NewApp(AppConfig{CommandHandler: func(cmd Command) bool {
		seen = append(seen, cmd)
		return true
	}})
	if !app.ExecuteCommand(markCommand{}) {
		t.Fatalf("expected custom handler result")
	}
	if len(seen) != 1 {
		t.Fatalf("expected 1 custom command, got %d", len(seen))
	}
}

func TestApp_SpawnWaitsForRun(t *testing.T) {
	app := NewApp(AppConfig{})
	ran := make(chan struct{}, 1)
	app.Spawn(Effect{Run: func(ctx context.Context, post PostFunc) {
		ran <- struct{}{}
	}})

	select {
	case <-ran:
		t.Fatal("expected pending effect to wait for start")
	default:
	}

	app.taskCtx = context.Background()
	app.startPendingEffects()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expected pending effect to run")
	}
}

func TestApp_TryPostDropsWhenFull(t *testing.T) {
	app := NewApp(AppConfig{MessageBuffer: 1})
	if !app.TryPost(TickMsg{}) {
		t.Fatalf("expected first post to succeed")
	}
	if app.TryPost(TickMsg{}) {
		t.Fatalf("expected second post to be dropped")
	}
}

func TestApp_StepFlushesStateQueue(t *testing.T) {
	app := NewApp(AppConfig{FlushPolicy: FlushManual})
	app.update = func(*App, Message) bool { return false }
	calls := 0
	app.StateScheduler().Schedule(func() { calls++ })

	app.step(TickMsg{})
	if calls != 0 {
		t.Fatalf("expected manual policy to wait, got %d", calls)
	}
	app.step(QueueFlushMsg{})
	if calls != 1 {
		t.Fatalf("expected flush on QueueFlushMsg, got %d", calls)
	}
	if !app.dirty {
		t.Fatalf("expected flushed callbacks to mark the app dirty")
	}
}
