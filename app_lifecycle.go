package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"vibe/internal/config"
	"vibe/internal/hotkeys"
)

type appRuntimeLogger interface {
	Warningf(context.Context, string, ...interface{})
	Infof(context.Context, string, ...interface{})
	Errorf(context.Context, string, ...interface{})
}

type wailsRuntimeLogger struct{}

func formatRuntimeLogMessage(message string, args ...interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

func (wailsRuntimeLogger) Warningf(ctx context.Context, message string, args ...interface{}) {
	if ctx == nil {
		slog.Warn(formatRuntimeLogMessage(message, args...))
		return
	}
	runtime.LogWarningf(ctx, message, args...)
}

func (wailsRuntimeLogger) Infof(ctx context.Context, message string, args ...interface{}) {
	if ctx == nil {
		slog.Info(formatRuntimeLogMessage(message, args...))
		return
	}
	runtime.LogInfof(ctx, message, args...)
}

func (wailsRuntimeLogger) Errorf(ctx context.Context, message string, args ...interface{}) {
	if ctx == nil {
		slog.Error(formatRuntimeLogMessage(message, args...))
		return
	}
	runtime.LogErrorf(ctx, message, args...)
}

var (
	runtimeEventsEmitFn                  = runtime.EventsEmit
	runtimeLogger       appRuntimeLogger = wailsRuntimeLogger{}
	configWatchFn                        = config.Watch
	desktopNotifyFn                      = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}
)

const (
	shutdownWaitTimeout = 10 * time.Second
	notificationTitle   = "vibe"
)

func (a *App) addPendingConfigLoadWarning(message string) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return
	}
	a.startupWarnMu.Lock()
	a.configLoadWarnings = append(a.configLoadWarnings, trimmed)
	a.startupWarnMu.Unlock()
}

func (a *App) consumePendingConfigLoadWarning() string {
	a.startupWarnMu.Lock()
	defer a.startupWarnMu.Unlock()
	if len(a.configLoadWarnings) == 0 {
		return ""
	}
	message := strings.Join(a.configLoadWarnings, "\n")
	a.configLoadWarnings = nil
	return message
}

func (a *App) startup(ctx context.Context) {
	a.setRuntimeContext(ctx)

	a.configPath = config.DefaultPath()
	for _, message := range config.ConsumeDefaultPathWarnings() {
		a.addPendingConfigLoadWarning(message)
	}

	cfg, err := config.EnsureFile(a.configPath)
	if err != nil {
		// Config load/parse failures are non-fatal. Continue startup with
		// defaults and surface a warning to the user.
		cfg = config.DefaultConfig()
		a.addPendingConfigLoadWarning(
			"Failed to load config file at startup. Running with defaults. Error: " + err.Error(),
		)
		runtimeLogger.Warningf(ctx, "failed to load config from %s: %v", a.configPath, err)
	}
	a.setConfigSnapshot(cfg)

	a.actionSub = a.actions.SubscribeContext(ctx, a.forwardActionEvent)
	a.bgCtx, a.bgCancel = context.WithCancel(ctx)

	a.configureRecordingHotkeys(ctx, cfg)
	a.setConfigWatching(cfg.WatchConfig)
	a.flushPendingConfigLoadWarnings()
}

// configureRecordingHotkeys applies the persisted hotkey section. No window
// is focused yet, so failures may also raise a desktop notification.
func (a *App) configureRecordingHotkeys(ctx context.Context, cfg config.Config) {
	if !cfg.Hotkeys.Enabled {
		slog.Debug("[HOTKEY] recording hotkeys disabled, skipping")
		return
	}
	if err := a.applyHotkeyConfig(ctx, cfg.Hotkeys); err != nil {
		runtimeLogger.Warningf(ctx, "recording hotkey registration failed: %v", err)
		if cfg.NotifyOnHotkeyFailure {
			if notifyErr := desktopNotifyFn(notificationTitle, err.Error()); notifyErr != nil {
				slog.Warn("[HOTKEY] desktop notification failed", "error", notifyErr)
			}
		}
		return
	}
	runtimeLogger.Infof(ctx, "recording hotkeys registered: start=%q stop=%q",
		cfg.Hotkeys.StartRecording, cfg.Hotkeys.StopRecording)
}

// applyHotkeyConfig registers cfg and reports bind failures to the frontend.
func (a *App) applyHotkeyConfig(ctx context.Context, cfg hotkeys.Config) error {
	manager, err := a.requireHotkeys()
	if err != nil {
		return err
	}
	if err := manager.RegisterHotkeys(ctx, cfg); err != nil {
		a.emitRegistrationFailure(err)
		return err
	}
	return nil
}

func (a *App) shutdown(_ context.Context) {
	logCtx := a.runtimeContext()
	a.shuttingDown.Store(true)

	a.setConfigWatching(false)
	if a.bgCancel != nil {
		a.bgCancel()
	}
	if !waitWithTimeout(a.bgWG.Wait, shutdownWaitTimeout) {
		runtimeLogger.Warningf(logCtx, "timed out waiting for background workers during shutdown")
	}

	if a.hotkeys != nil {
		if err := a.hotkeys.UnregisterHotkeys(context.Background()); err != nil {
			runtimeLogger.Warningf(logCtx, "hotkeys unregister failed: %v", err)
		}
		a.hotkeys.Dispose()
	}
	a.actionSub.Close()
	if closer, ok := a.hotkeyHost.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			runtimeLogger.Warningf(logCtx, "hotkey host close failed: %v", err)
		}
	}
}

func waitWithTimeout(waitFn func(), timeout time.Duration) bool {
	// Best effort timeout guard for shutdown paths. The waiting goroutine may
	// outlive timeout when waitFn blocks indefinitely, but this function is only
	// used during process shutdown where eventual completion is expected.
	done := make(chan struct{})
	go func() {
		waitFn()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
