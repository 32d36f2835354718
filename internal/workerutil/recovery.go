// Package workerutil supervises long-running background goroutines such as
// shortcut listeners and the config file watcher.
package workerutil

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

const (
	defaultInitialBackoff = 100 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	defaultMaxRetries     = 10
)

// RecoveryOptions configures RunWithPanicRecovery. Zero values select the
// defaults (100ms initial backoff, 5s cap, 10 attempts). MaxRetries of 1 runs
// the worker once without restarts.
type RecoveryOptions struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxRetries     int

	// OnPanic runs after each recovered panic that will be followed by a restart.
	OnPanic func(worker string, attempt int)
	// OnFatal runs once the retry budget is exhausted.
	OnFatal func(worker string, maxRetries int)
	// IsShutdown suppresses restarts while the application is tearing down.
	IsShutdown func() bool
}

func (opts RecoveryOptions) withDefaults() RecoveryOptions {
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		slog.Warn("[DEBUG-PANIC] MaxBackoff below InitialBackoff, clamping",
			"initialBackoff", opts.InitialBackoff,
			"maxBackoff", opts.MaxBackoff,
		)
		opts.MaxBackoff = opts.InitialBackoff
	}
	return opts
}

// RunWithPanicRecovery starts fn on a goroutine tracked by wg. A panic inside
// fn is logged and fn is restarted with exponential backoff until it returns
// normally, ctx is cancelled, IsShutdown reports true, or MaxRetries is spent.
func RunWithPanicRecovery(
	ctx context.Context,
	name string,
	wg *sync.WaitGroup,
	fn func(ctx context.Context),
	opts RecoveryOptions,
) {
	opts = opts.withDefaults()
	wg.Go(func() {
		supervise(ctx, name, fn, opts)
	})
}

func supervise(ctx context.Context, name string, fn func(ctx context.Context), opts RecoveryOptions) {
	delay := opts.InitialBackoff

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if !runOnce(ctx, name, fn) || ctx.Err() != nil {
			return
		}
		if opts.IsShutdown != nil && opts.IsShutdown() {
			slog.Info("[DEBUG-PANIC] shutdown in progress, not restarting worker", "worker", name)
			return
		}
		if attempt == opts.MaxRetries {
			break
		}

		slog.Warn("[DEBUG-PANIC] restarting worker after panic",
			"worker", name,
			"restartDelay", delay,
			"attempt", attempt,
		)
		if opts.OnPanic != nil {
			opts.OnPanic(name, attempt)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = nextBackoff(delay, opts.MaxBackoff)
	}

	slog.Error("[DEBUG-PANIC] worker exceeded max retries, giving up",
		"worker", name,
		"maxRetries", opts.MaxRetries,
	)
	if opts.OnFatal != nil {
		opts.OnFatal(name, opts.MaxRetries)
	}
}

// runOnce reports whether fn panicked.
func runOnce(ctx context.Context, name string, fn func(ctx context.Context)) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[DEBUG-PANIC] background worker recovered from panic",
				"worker", name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			panicked = true
		}
	}()
	fn(ctx)
	return false
}

// nextBackoff doubles current up to maxBackoff, guarding against overflow.
func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	if current <= 0 {
		return defaultInitialBackoff
	}
	next := current * 2
	if next > maxBackoff || next < current {
		return maxBackoff
	}
	return next
}
