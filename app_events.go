package main

import (
	"context"
	"errors"
	"log/slog"

	"vibe/internal/actions"
	"vibe/internal/hotkeys"
)

const (
	eventHotkeyAction             = "hotkey:action"
	eventHotkeyRegistrationFailed = "hotkey:registration-failed"
	eventConfigUpdated            = "config:updated"
	eventConfigLoadFailed         = "config:load-failed"
	eventWorkerPanic              = "app:worker-panic"
)

type hotkeyRegistrationFailedEvent struct {
	Error           string `json:"error"`
	NeedsPermission bool   `json:"needsPermission"`
}

// emitRuntimeEvent emits via the app context and delegates to emitRuntimeEventWithContext.
func (a *App) emitRuntimeEvent(name string, payload any) {
	a.emitRuntimeEventWithContext(a.runtimeContext(), name, payload)
}

// emitRuntimeEventWithContext emits a runtime event only when ctx is non-nil.
// Prefer this helper for best-effort contexts that may not be initialized yet.
func (a *App) emitRuntimeEventWithContext(ctx context.Context, name string, payload any) {
	if ctx == nil {
		slog.Warn("[EVENT] runtime event dropped because app context is nil", "event", name)
		return
	}
	runtimeEventsEmitFn(ctx, name, payload)
}

// forwardActionEvent relays bus events to the webview.
func (a *App) forwardActionEvent(e actions.Event) {
	slog.Debug("[EVENT] forwarding hotkey action", "action", e.Action, "shortcut", e.Shortcut, "id", e.ID)
	a.emitRuntimeEvent(eventHotkeyAction, e)
}

// emitRegistrationFailure reports bind failures so the frontend can show the
// message and, when needed, a permission prompt. Other errors are not emitted.
func (a *App) emitRegistrationFailure(err error) bool {
	var bindErr *hotkeys.BindError
	if !errors.As(err, &bindErr) {
		return false
	}
	a.emitRuntimeEvent(eventHotkeyRegistrationFailed, hotkeyRegistrationFailedEvent{
		Error:           err.Error(),
		NeedsPermission: bindErr.NeedsPermission,
	})
	return true
}
