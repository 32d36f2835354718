package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vibe/internal/actions"
	"vibe/internal/config"
	"vibe/internal/hotkeys"
	"vibe/internal/testutil"
)

// NOTE: Tests in this package override package-level function variables
// (runtimeEventsEmitFn, runtimeLogger, desktopNotifyFn, configWatchFn).
// Do not use t.Parallel().

type emittedEvent struct {
	name    string
	payload any
}

type runtimeStub struct {
	mu      sync.Mutex
	events  []emittedEvent
	notices []string
}

func (s *runtimeStub) eventsNamed(name string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []any
	for _, e := range s.events {
		if e.name == name {
			out = append(out, e.payload)
		}
	}
	return out
}

func (s *runtimeStub) notifications() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}

type slogRuntimeLogger struct{}

func (slogRuntimeLogger) Warningf(_ context.Context, message string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(message, args...))
}

func (slogRuntimeLogger) Infof(_ context.Context, message string, args ...interface{}) {
	slog.Info(fmt.Sprintf(message, args...))
}

func (slogRuntimeLogger) Errorf(_ context.Context, message string, args ...interface{}) {
	slog.Error(fmt.Sprintf(message, args...))
}

// stubRuntime replaces the Wails runtime seams for the duration of t.
func stubRuntime(t *testing.T) *runtimeStub {
	t.Helper()
	stub := &runtimeStub{}

	origEmit := runtimeEventsEmitFn
	origLogger := runtimeLogger
	origNotify := desktopNotifyFn
	origWatch := configWatchFn
	t.Cleanup(func() {
		runtimeEventsEmitFn = origEmit
		runtimeLogger = origLogger
		desktopNotifyFn = origNotify
		configWatchFn = origWatch
	})

	runtimeEventsEmitFn = func(_ context.Context, name string, data ...interface{}) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		stub.mu.Lock()
		stub.events = append(stub.events, emittedEvent{name: name, payload: payload})
		stub.mu.Unlock()
	}
	runtimeLogger = slogRuntimeLogger{}
	desktopNotifyFn = func(title, message string) error {
		stub.mu.Lock()
		stub.notices = append(stub.notices, title+": "+message)
		stub.mu.Unlock()
		return nil
	}
	configWatchFn = func(ctx context.Context, _ string, _ func(config.Config)) error {
		<-ctx.Done()
		return nil
	}
	return stub
}

func useTempConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vibe", "config.yaml")
	t.Setenv(config.PathEnv, path)
	return path
}

// newTestApp returns an App over a FakeHost with a runtime context and a
// config path that Save accepts.
func newTestApp(t *testing.T) (*App, *hotkeys.FakeHost) {
	t.Helper()
	host := hotkeys.NewFakeHost()
	app := newAppWithHost(host)
	app.setRuntimeContext(context.Background())
	app.configPath = useTempConfigPath(t)
	app.setConfigSnapshot(config.DefaultConfig())
	return app, host
}

func testWaitForSubscribers(t *testing.T, bus *actions.Bus, want int) {
	t.Helper()
	testutil.WaitFor(t, time.Second, "bus subscriber count", func() bool { return bus.Len() == want })
}
