package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/odvcencio/furry-viewmodels/backend/sim"
)

func TestServices_ZeroValueIsInert(t *testing.T) {
	var svc Services
	if svc.Scheduler() != nil {
		t.Fatalf("expected nil scheduler")
	}
	if svc.Logger() == nil {
		t.Fatalf("expected a discarding logger")
	}
	svc.Invalidate()
	svc.Every(time.Millisecond, func(time.Time) {
		t.Fatalf("expected unbound Every to do nothing")
	})
}

func TestServices_LoggerIsAppLogger(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	app := NewApp(AppConfig{Logger: logger})
	app.Services().Logger().Info("from widget")
	if !strings.Contains(out.String(), "from widget") {
		t.Fatalf("expected app logger output, got %q", out.String())
	}
}

func TestServices_EveryRunsOnLoop(t *testing.T) {
	app := NewApp(AppConfig{Backend: sim.New(4, 1)})
	var calls atomic.Int32
	var offLoop atomic.Bool
	app.Services().Every(2*time.Millisecond, func(time.Time) {
		if !app.running {
			offLoop.Store(true)
		}
		calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected 3 calls, got %d", calls.Load())
		case <-time.After(2 * time.Millisecond):
		}
	}
	cancel()
	<-done
	if offLoop.Load() {
		t.Fatalf("expected callbacks to run inside the loop")
	}
}

func TestApp_RefreshMarksBufferDirty(t *testing.T) {
	app := NewApp(AppConfig{})
	app.screen = NewScreen(3, 1)
	app.screen.Buffer().ClearDirty()
	if !app.ExecuteCommand(Refresh{}) {
		t.Fatalf("expected refresh to be handled")
	}
	if !app.screen.Buffer().IsDirty() {
		t.Fatalf("expected refresh to mark the buffer dirty")
	}
}
