package workerutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var fastOpts = RecoveryOptions{
	InitialBackoff: time.Millisecond,
	MaxBackoff:     2 * time.Millisecond,
}

func TestRunWithPanicRecoveryNormalExitRunsOnce(t *testing.T) {
	var wg sync.WaitGroup
	var runs atomic.Int32

	RunWithPanicRecovery(context.Background(), "once", &wg, func(context.Context) {
		runs.Add(1)
	}, fastOpts)
	wg.Wait()

	if got := runs.Load(); got != 1 {
		t.Fatalf("runs = %d, want 1", got)
	}
}

func TestRunWithPanicRecoveryRestartsAfterPanic(t *testing.T) {
	var wg sync.WaitGroup
	var runs atomic.Int32
	var panics atomic.Int32

	opts := fastOpts
	opts.OnPanic = func(worker string, attempt int) {
		if worker != "flaky" {
			t.Errorf("worker = %q, want flaky", worker)
		}
		panics.Add(1)
	}

	RunWithPanicRecovery(context.Background(), "flaky", &wg, func(context.Context) {
		if runs.Add(1) < 3 {
			panic("transient")
		}
	}, opts)
	wg.Wait()

	if got := runs.Load(); got != 3 {
		t.Fatalf("runs = %d, want 3", got)
	}
	if got := panics.Load(); got != 2 {
		t.Fatalf("OnPanic calls = %d, want 2", got)
	}
}

func TestRunWithPanicRecoveryCallsOnFatal(t *testing.T) {
	var wg sync.WaitGroup
	var runs atomic.Int32
	fatal := make(chan int, 1)

	opts := fastOpts
	opts.MaxRetries = 3
	opts.OnFatal = func(_ string, maxRetries int) { fatal <- maxRetries }

	RunWithPanicRecovery(context.Background(), "broken", &wg, func(context.Context) {
		runs.Add(1)
		panic("always")
	}, opts)
	wg.Wait()

	if got := runs.Load(); got != 3 {
		t.Fatalf("runs = %d, want 3", got)
	}
	select {
	case got := <-fatal:
		if got != 3 {
			t.Fatalf("OnFatal maxRetries = %d, want 3", got)
		}
	default:
		t.Fatal("OnFatal was not called")
	}
}

func TestRunWithPanicRecoveryStopsOnShutdown(t *testing.T) {
	var wg sync.WaitGroup
	var runs atomic.Int32

	opts := fastOpts
	opts.IsShutdown = func() bool { return true }

	RunWithPanicRecovery(context.Background(), "teardown", &wg, func(context.Context) {
		runs.Add(1)
		panic("during shutdown")
	}, opts)
	wg.Wait()

	if got := runs.Load(); got != 1 {
		t.Fatalf("runs = %d, want 1", got)
	}
}

func TestRunWithPanicRecoveryStopsWhenContextCancelled(t *testing.T) {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	RunWithPanicRecovery(ctx, "blocking", &wg, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	}, fastOpts)

	<-started
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		name    string
		current time.Duration
		max     time.Duration
		want    time.Duration
	}{
		{"doubles", 100 * time.Millisecond, time.Second, 200 * time.Millisecond},
		{"caps", 800 * time.Millisecond, time.Second, time.Second},
		{"zero resets", 0, time.Second, defaultInitialBackoff},
		{"overflow caps", time.Duration(1 << 62), time.Duration(1<<63 - 1), time.Duration(1<<63 - 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextBackoff(tt.current, tt.max); got != tt.want {
				t.Fatalf("nextBackoff(%v, %v) = %v, want %v", tt.current, tt.max, got, tt.want)
			}
		})
	}
}

func TestWithDefaultsClampsMaxBackoff(t *testing.T) {
	opts := RecoveryOptions{InitialBackoff: time.Second, MaxBackoff: time.Millisecond}.withDefaults()
	if opts.MaxBackoff != time.Second {
		t.Fatalf("MaxBackoff = %v, want %v", opts.MaxBackoff, time.Second)
	}
	if opts.MaxRetries != defaultMaxRetries {
		t.Fatalf("MaxRetries = %v, want %v", opts.MaxRetries, defaultMaxRetries)
	}
}
