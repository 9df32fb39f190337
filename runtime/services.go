package runtime

import (
	"log/slog"
	"time"

	"github.com/odvcencio/furry-viewmodels/state"
)

// Services is the handle bound widgets use to reach their app. The zero
// value belongs to no app and every method on it does nothing.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Scheduler returns a scheduler that runs callbacks on the app loop, or nil
// when unbound.
func (s Services) Scheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return s.app.StateScheduler()
}

// Invalidate requests a render pass. Store listeners call it from any
// goroutine.
func (s Services) Invalidate() {
	if s.app == nil {
		return
	}
	s.app.Invalidate()
}

// Every calls fn on the app loop once per interval until the app stops.
// fn may mutate stores directly; the resulting notifications are handled
// like any other update on the loop.
func (s Services) Every(interval time.Duration, fn func(now time.Time)) {
	if s.app == nil || fn == nil {
		return
	}
	sched := s.app.StateScheduler()
	s.app.Spawn(Every(interval, func(now time.Time) Message {
		sched.Schedule(func() { fn(now) })
		return nil
	}))
}

// Logger returns the app logger, or a discarding logger when unbound.
func (s Services) Logger() *slog.Logger {
	if s.app == nil {
		return discardLogger
	}
	return s.app.logger
}
